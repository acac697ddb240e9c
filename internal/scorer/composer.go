package scorer

import (
	"context"
	"fmt"
	"math"

	"cv-match-go/internal/constants"
	"cv-match-go/internal/parser"
	"cv-match-go/internal/types"
)

// Score 计算简历对JD的加权匹配分
//
// 步骤：全文语义相似度 → 简历切分章节 → skills/experience章节
// 超过最小长度时单独对JD打分，否则退回全文分 → 各分量钳位到
// 非负(无关文本的余弦相似度可能为负，不允许以负贡献进入总分)
// → 按权重加权求和。weights中未知键被忽略，缺失键取默认值。
// 所有返回值为百分比并四舍五入到两位小数。
func (e *Engine) Score(ctx context.Context, resumeText, jobText string, weights map[string]float64) (*types.ScoreBreakdown, error) {
	merged := e.resolveWeights(weights)

	// 1. 全文语义匹配
	overallScore, err := e.similarity(ctx, resumeText, jobText)
	if err != nil {
		return nil, fmt.Errorf("计算全文相似度失败: %w", err)
	}

	// 2. 章节切分
	sections := parser.SegmentSections(resumeText)

	// 3. 技能章节分：章节过短时退回全文分
	skillScore := overallScore
	if len(sections.Skills) > constants.MinSectionLength {
		skillScore, err = e.similarity(ctx, sections.Skills, jobText)
		if err != nil {
			return nil, fmt.Errorf("计算技能章节相似度失败: %w", err)
		}
	}

	// 4. 经历章节分：同上
	experienceScore := overallScore
	if len(sections.Experience) > constants.MinSectionLength {
		experienceScore, err = e.similarity(ctx, sections.Experience, jobText)
		if err != nil {
			return nil, fmt.Errorf("计算经历章节相似度失败: %w", err)
		}
	}

	// 5. 钳位到非负
	overallScore = math.Max(0, overallScore)
	skillScore = math.Max(0, skillScore)
	experienceScore = math.Max(0, experienceScore)

	// 6. 加权合成
	totalScore := overallScore*merged[WeightSemantic] +
		skillScore*merged[WeightSkills] +
		experienceScore*merged[WeightExperience]

	// 7. 转换为百分比
	return &types.ScoreBreakdown{
		TotalScore:      round2(totalScore * 100),
		SemanticMatch:   round2(overallScore * 100),
		SkillsMatch:     round2(skillScore * 100),
		ExperienceMatch: round2(experienceScore * 100),
	}, nil
}

// resolveWeights 合并调用方权重和默认权重
func (e *Engine) resolveWeights(weights map[string]float64) map[string]float64 {
	merged := make(map[string]float64, len(e.defaults))
	for k, v := range e.defaults {
		merged[k] = v
	}
	for _, key := range []string{WeightSemantic, WeightSkills, WeightExperience} {
		if v, ok := weights[key]; ok {
			merged[key] = v
		}
	}
	return merged
}

// round2 四舍五入保留两位小数
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
