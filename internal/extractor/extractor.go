/*
此文件实现上传文档到纯文本的转换，属于打分核心之外的I/O层。

支持PDF/DOCX/TXT三种格式：配置了Tika服务器时PDF和DOCX都走Tika，
否则退回本地Eino PDF解析器(仅PDF)。格式由文件扩展名判定。
*/

package extractor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"cv-match-go/internal/config"
	"cv-match-go/internal/logger"
	"cv-match-go/internal/types"
)

// ErrUnsupportedFormat 文件格式不受支持
var ErrUnsupportedFormat = errors.New("不支持的文件格式")

// TextExtractor 上传文档的文本提取器
type TextExtractor struct {
	tika    *TikaExtractor    // 可选，配置了Tika服务器时使用
	einoPDF *EinoPDFExtractor // Tika缺席时的本地PDF回退
}

// New 按配置创建文本提取器
// Tika服务器未配置时初始化本地Eino PDF解析器
func New(ctx context.Context, cfg *config.TikaConfig) (*TextExtractor, error) {
	e := &TextExtractor{}

	if cfg != nil && cfg.ServerURL != "" {
		e.tika = NewTikaExtractor(cfg.ServerURL, cfg.TimeoutSeconds)
		logger.Info().Str("server_url", cfg.ServerURL).Msg("使用Tika文档解析器")
		return e, nil
	}

	einoPDF, err := NewEinoPDFExtractor(ctx)
	if err != nil {
		return nil, fmt.Errorf("初始化本地PDF解析器失败: %w", err)
	}
	e.einoPDF = einoPDF
	logger.Info().Msg("未配置Tika服务器，使用本地Eino PDF解析器")
	return e, nil
}

// Extract 从上传内容提取纯文本，格式由文件名扩展名判定
func (e *TextExtractor) Extract(ctx context.Context, reader io.Reader, filename string) (*types.Document, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".pdf":
		text, err := e.extractPDF(ctx, reader)
		if err != nil {
			return nil, err
		}
		return &types.Document{Text: text, Format: types.FormatPDF}, nil

	case ".docx":
		if e.tika == nil {
			return nil, fmt.Errorf("%w: 本地模式不支持DOCX(%s)，需要配置Tika服务器", ErrUnsupportedFormat, filename)
		}
		text, err := e.tika.ExtractText(ctx, reader)
		if err != nil {
			return nil, fmt.Errorf("提取DOCX文本失败: %w", err)
		}
		return &types.Document{Text: text, Format: types.FormatDOCX}, nil

	case ".txt":
		data, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("读取文本文件失败: %w", err)
		}
		return &types.Document{Text: string(data), Format: types.FormatTXT}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func (e *TextExtractor) extractPDF(ctx context.Context, reader io.Reader) (string, error) {
	if e.tika != nil {
		text, err := e.tika.ExtractText(ctx, reader)
		if err != nil {
			return "", fmt.Errorf("Tika提取PDF文本失败: %w", err)
		}
		return text, nil
	}

	text, err := e.einoPDF.ExtractText(ctx, reader)
	if err != nil {
		return "", fmt.Errorf("本地提取PDF文本失败: %w", err)
	}
	return text, nil
}
