/*
此文件定义文本向量化接口和向量相似度计算。
引擎在进程生命周期内只持有一个嵌入器实例，多个并发打分调用共享只读使用。
*/

package parser

import (
	"context"
	"math"
)

// TextEmbedder 文本向量化接口
type TextEmbedder interface {
	// EmbedStrings 将一批文本转换为定长向量表示
	EmbedStrings(ctx context.Context, texts []string) ([][]float64, error)
}

// CosineSimilarity 计算两个向量的余弦相似度，取值约在[-1, 1]
// 任一向量为零向量或维度不一致时返回0
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
