/*
此文件定义打分引擎的入口。

引擎在进程启动时构造一次，持有唯一的嵌入器实例；
单次调用无状态，可被多个请求并发只读使用。
对任意UTF-8输入引擎都不会panic：空文本产生确定的低分，
模型传输错误以error上抛，由调用层处理。
*/

package scorer

import (
	"context"
	"fmt"
	"strings"

	"cv-match-go/internal/parser"
	"cv-match-go/internal/types"
)

// 权重表的键名，未知键被忽略，缺失键回退默认值
const (
	WeightSemantic   = "semantic"
	WeightSkills     = "skills"
	WeightExperience = "experience"
)

// DefaultWeights 文档化的默认打分权重
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		WeightSemantic:   0.5,
		WeightSkills:     0.3,
		WeightExperience: 0.2,
	}
}

// Engine 简历匹配打分引擎
type Engine struct {
	embedder parser.TextEmbedder
	defaults map[string]float64
}

// EngineOption 引擎配置选项
type EngineOption func(*Engine)

// WithDefaultWeights 覆盖引擎的默认权重
// 三个权重之和应不超过1，否则总分可能超出[0,100]
func WithDefaultWeights(weights map[string]float64) EngineOption {
	return func(e *Engine) {
		merged := DefaultWeights()
		for _, key := range []string{WeightSemantic, WeightSkills, WeightExperience} {
			if v, ok := weights[key]; ok {
				merged[key] = v
			}
		}
		e.defaults = merged
	}
}

// NewEngine 创建打分引擎，embedder在引擎生命周期内共享
func NewEngine(embedder parser.TextEmbedder, options ...EngineOption) *Engine {
	engine := &Engine{
		embedder: embedder,
		defaults: DefaultWeights(),
	}
	for _, opt := range options {
		opt(engine)
	}
	return engine
}

// similarity 计算两段文本的语义相似度
// 任一侧为空白文本时不调用模型，直接视为近零匹配
func (e *Engine) similarity(ctx context.Context, textA, textB string) (float64, error) {
	if strings.TrimSpace(textA) == "" || strings.TrimSpace(textB) == "" {
		return 0, nil
	}

	vectors, err := e.embedder.EmbedStrings(ctx, []string{textA, textB})
	if err != nil {
		return 0, err
	}
	if len(vectors) != 2 {
		return 0, fmt.Errorf("嵌入返回向量数量异常: 期望2个, 实际%d个", len(vectors))
	}
	return parser.CosineSimilarity(vectors[0], vectors[1]), nil
}

// ExtractSkills 提取文本中命中技能词表的技能
func (e *Engine) ExtractSkills(text string) []string {
	return parser.ExtractSkills(text)
}

// ExtractCandidateInfo 启发式提取候选人信息，所有字段可选
func (e *Engine) ExtractCandidateInfo(text string) *types.CandidateInfo {
	return parser.ExtractCandidateInfo(text)
}
