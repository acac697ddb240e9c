package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TikaExtractor 基于Apache Tika服务器的文档文本提取器
// Tika的/tika端点对PDF和DOCX都适用
type TikaExtractor struct {
	serverURL string
	client    *http.Client
}

// NewTikaExtractor 创建Tika提取器，timeoutSeconds<=0时使用默认30秒
func NewTikaExtractor(serverURL string, timeoutSeconds int) *TikaExtractor {
	timeout := 30 * time.Second
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}
	return &TikaExtractor{
		serverURL: serverURL,
		client:    &http.Client{Timeout: timeout},
	}
}

// ExtractText 把文档内容PUT到Tika服务器，返回纯文本
func (t *TikaExtractor) ExtractText(ctx context.Context, reader io.Reader) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("读取文档内容失败: %w", err)
	}

	url := fmt.Sprintf("%s/tika", t.serverURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("创建Tika请求失败: %w", err)
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("请求Tika服务器失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tika服务器返回错误状态码: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("读取Tika响应失败: %w", err)
	}

	return string(body), nil
}
