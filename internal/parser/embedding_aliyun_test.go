package parser

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-match-go/internal/config"
)

func TestNewAliyunEmbedderRequiresAPIKey(t *testing.T) {
	_, err := NewAliyunEmbedder("", config.EmbeddingConfig{})
	assert.Error(t, err, "缺少API密钥应报错")
}

func TestNewAliyunEmbedderModelFallback(t *testing.T) {
	embedder, err := NewAliyunEmbedder("test-key", config.EmbeddingConfig{})
	require.NoError(t, err)

	// 未配置模型时回退到默认公开模型，属于降级而非错误
	assert.Equal(t, DefaultEmbeddingModel, embedder.model)
	assert.Equal(t, 1024, embedder.GetDimensions())
}

func TestAliyunEmbedderEmbedStrings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		resp := map[string]interface{}{
			"object": "list",
			"data": []map[string]interface{}{
				{"object": "embedding", "embedding": []float64{0, 1, 0}, "index": 1},
				{"object": "embedding", "embedding": []float64{1, 0, 0}, "index": 0},
			},
			"model": "text-embedding-v3",
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	embedder, err := NewAliyunEmbedder("test-key", config.EmbeddingConfig{
		BaseURL: server.URL,
		Model:   "text-embedding-v3",
	})
	require.NoError(t, err)

	vectors, err := embedder.EmbedStrings(context.Background(), []string{"hello", "world"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)

	// 响应按index字段归位，与请求文本一一对应
	assert.Equal(t, []float64{1, 0, 0}, vectors[0])
	assert.Equal(t, []float64{0, 1, 0}, vectors[1])
}

func TestAliyunEmbedderAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"message": "rate limit exceeded",
			"type":    "rate_limit_error",
		})
	}))
	defer server.Close()

	embedder, err := NewAliyunEmbedder("test-key", config.EmbeddingConfig{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = embedder.EmbedStrings(context.Background(), []string{"hello"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit exceeded")
}
