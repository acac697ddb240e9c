package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"cv-match-go/internal/config"
	"cv-match-go/internal/logger"
)

// DefaultEmbeddingModel 配置的模型不可用时回退使用的公开模型
// 回退属于文档化的降级行为，记录日志但不作为错误上抛
const DefaultEmbeddingModel = "text-embedding-v3"

// AliyunEmbedder 基于OpenAI兼容HTTP接口的嵌入器实现
type AliyunEmbedder struct {
	apiKey     string
	model      string
	dimensions int
	baseURL    string
	httpClient *http.Client
}

// NewAliyunEmbedder 创建嵌入器
// 模型名为空时回退到默认公开模型并记录警告
func NewAliyunEmbedder(apiKey string, embeddingCfg config.EmbeddingConfig) (*AliyunEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API密钥不能为空")
	}

	model := embeddingCfg.Model
	if model == "" {
		logger.Warn().
			Str("fallback_model", DefaultEmbeddingModel).
			Msg("未配置嵌入模型，回退到默认公开模型")
		model = DefaultEmbeddingModel
	}
	dimensions := embeddingCfg.Dimensions
	if dimensions == 0 {
		dimensions = 1024
	}
	baseURL := embeddingCfg.BaseURL
	if baseURL == "" {
		baseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/embeddings"
	}

	return &AliyunEmbedder{
		apiKey:     apiKey,
		model:      model,
		dimensions: dimensions,
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}, nil
}

// GetDimensions 返回嵌入向量的维度
func (a *AliyunEmbedder) GetDimensions() int {
	return a.dimensions
}

// embeddingRequest OpenAI兼容的嵌入请求体
type embeddingRequest struct {
	Input      interface{} `json:"input"` // string 或 []string
	Model      string      `json:"model"`
	Dimensions int         `json:"dimensions,omitempty"`
}

// embeddingResponse OpenAI兼容的嵌入响应体
type embeddingResponse struct {
	Object string               `json:"object"`
	Data   []embeddingDataEntry `json:"data"`
	Model  string               `json:"model"`
	Error  *embeddingAPIError   `json:"error,omitempty"`
}

type embeddingDataEntry struct {
	Object    string    `json:"object"`
	Embedding []float64 `json:"embedding"`
	Index     int       `json:"index"`
}

// embeddingAPIError HTTP状态200但业务失败时的错误对象
type embeddingAPIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// EmbedStrings 将文本批量转换为向量
func (a *AliyunEmbedder) EmbedStrings(ctx context.Context, texts []string) ([][]float64, error) {
	var input interface{}
	if len(texts) == 1 {
		input = texts[0]
	} else {
		input = texts
	}

	reqBody := embeddingRequest{
		Input: input,
		Model: a.model,
	}
	if a.dimensions > 0 && a.dimensions != 1024 {
		reqBody.Dimensions = a.dimensions
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("序列化嵌入请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送嵌入请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应体失败: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr embeddingAPIError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("嵌入API调用失败, 状态码: %d, 类型: %s, 错误: %s", resp.StatusCode, apiErr.Type, apiErr.Message)
		}
		return nil, fmt.Errorf("嵌入API调用失败, 状态码: %d, 响应: %s", resp.StatusCode, string(body))
	}

	var embResp embeddingResponse
	if err := json.Unmarshal(body, &embResp); err != nil {
		return nil, fmt.Errorf("解析嵌入响应失败: %w", err)
	}
	if embResp.Error != nil && embResp.Error.Message != "" {
		return nil, fmt.Errorf("嵌入API返回错误: 类型: %s, 错误: %s", embResp.Error.Type, embResp.Error.Message)
	}
	if len(embResp.Data) == 0 {
		return nil, fmt.Errorf("嵌入响应不包含向量数据")
	}

	embeddings := make([][]float64, len(embResp.Data))
	for _, item := range embResp.Data {
		if item.Index < 0 || item.Index >= len(embeddings) {
			return nil, fmt.Errorf("嵌入数据索引%d超出范围", item.Index)
		}
		embeddings[item.Index] = item.Embedding
	}

	return embeddings, nil
}
