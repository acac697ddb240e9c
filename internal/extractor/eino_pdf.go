package extractor

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoparser "github.com/cloudwego/eino/components/document/parser"
)

// EinoPDFExtractor 基于Eino PDF Parser的本地PDF文本提取器
// 不依赖外部服务，作为Tika缺席时的回退
type EinoPDFExtractor struct {
	parser *pdf.PDFParser
}

// NewEinoPDFExtractor 初始化本地PDF解析器
// ToPages置false以获取整个文档的连续文本
func NewEinoPDFExtractor(ctx context.Context) (*EinoPDFExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: false,
	})
	if err != nil {
		return nil, fmt.Errorf("创建Eino PDF解析器失败: %w", err)
	}
	return &EinoPDFExtractor{parser: p}, nil
}

// ExtractText 从PDF内容中提取纯文本
func (e *EinoPDFExtractor) ExtractText(ctx context.Context, reader io.Reader) (string, error) {
	docs, err := e.parser.Parse(ctx, reader,
		einoparser.WithURI("resume.pdf"),
	)
	if err != nil {
		return "", fmt.Errorf("eino PDF解析失败: %w", err)
	}
	if len(docs) == 0 {
		return "", fmt.Errorf("eino PDF解析无结果")
	}

	// ToPages为false时通常只有一个文档，多个时拼接
	var sb strings.Builder
	for i, doc := range docs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(doc.Content)
	}
	return sb.String(), nil
}
