package scorer

import (
	"sort"

	"cv-match-go/internal/parser"
	"cv-match-go/internal/types"
)

// Analyze 对(简历, JD)文本对做技能差距分析并生成面试问题
//
// missing = JD技能集 − 简历技能集，matching = 两者交集。
// 底层是集合运算，枚举顺序无语义；为了输出稳定全部按字典序排列。
// 结果完全由输入文本确定性推导，不依赖模型调用。
func (e *Engine) Analyze(resumeText, jobText string) *types.AnalysisResult {
	cvSkills := parser.ExtractSkills(resumeText)
	jdSkills := parser.ExtractSkills(jobText)

	matching, missing := diffSkillSets(cvSkills, jdSkills)

	return &types.AnalysisResult{
		CVSkills:  orEmpty(cvSkills),
		JDSkills:  orEmpty(jdSkills),
		Matching:  orEmpty(matching),
		Missing:   orEmpty(missing),
		Questions: GenerateQuestions(missing),
	}
}

// orEmpty 把nil切片归一为空切片，JSON序列化输出[]而非null
func orEmpty(skills []string) []string {
	if skills == nil {
		return []string{}
	}
	return skills
}

// diffSkillSets 求JD技能相对简历技能的交集和差集，输出按字典序
func diffSkillSets(cvSkills, jdSkills []string) (matching, missing []string) {
	cvSet := make(map[string]struct{}, len(cvSkills))
	for _, skill := range cvSkills {
		cvSet[skill] = struct{}{}
	}

	for _, skill := range jdSkills {
		if _, ok := cvSet[skill]; ok {
			matching = append(matching, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	sort.Strings(matching)
	sort.Strings(missing)
	return matching, missing
}
