package scorer

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeConcreteScenario(t *testing.T) {
	engine := newTestEngine()

	resumeText := "Experience: Built systems in Python and Go. Skills: Python, Go, Docker."
	jobText := "Looking for a Python, Go, Kubernetes engineer."

	result := engine.Analyze(resumeText, jobText)
	require.NotNil(t, result)

	assert.ElementsMatch(t, []string{"kubernetes"}, result.Missing)
	assert.ElementsMatch(t, []string{"python", "go"}, result.Matching)

	// kubernetes属于cloud分类，应产出部署/容器化方向的问题
	found := false
	for _, q := range result.Questions {
		if strings.Contains(q, "deployment and containerization") {
			found = true
		}
	}
	assert.True(t, found, "缺失kubernetes时应产出cloud分类的问题: %v", result.Questions)
}

// matching ∪ missing == JD技能集，且两者不相交
func TestAnalyzePartitionProperty(t *testing.T) {
	engine := newTestEngine()

	resumeText := "Skills: python react mysql communication"
	jobText := "Need python react aws docker postgresql leadership and agile experience"

	result := engine.Analyze(resumeText, jobText)

	union := append([]string{}, result.Matching...)
	union = append(union, result.Missing...)
	assert.ElementsMatch(t, result.JDSkills, union, "matching与missing的并集应等于JD技能集")

	missingSet := make(map[string]struct{})
	for _, skill := range result.Missing {
		missingSet[skill] = struct{}{}
	}
	for _, skill := range result.Matching {
		_, clash := missingSet[skill]
		assert.False(t, clash, "matching和missing不应有交集: %s", skill)
	}
}

func TestAnalyzeQuestionCountBounds(t *testing.T) {
	engine := newTestEngine()

	cases := []struct {
		name       string
		resumeText string
		jobText    string
	}{
		{"无缺失", "python go docker", "python go"},
		{"少量缺失", "python", "python kubernetes"},
		{"大量缺失", "communication", "python java react angular pandas aws azure mysql mongodb leadership scrum"},
		{"双方无技能", "plain text", "more plain text"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := engine.Analyze(tc.resumeText, tc.jobText)
			assert.GreaterOrEqual(t, len(result.Questions), 1, "至少一条问题")
			assert.LessOrEqual(t, len(result.Questions), 4, "问题上限4条")
		})
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	engine := newTestEngine()

	resumeText := "Skills: python mysql"
	jobText := "python java react aws mongodb leadership"

	first := engine.Analyze(resumeText, jobText)
	second := engine.Analyze(resumeText, jobText)

	assert.Equal(t, first, second, "同一输入应产生完全相同的分析结果")
}

// 无命中技能时各字段序列化为[]而非null
func TestAnalyzeEmptySkillFieldsSerializeAsArrays(t *testing.T) {
	engine := newTestEngine()

	result := engine.Analyze("no relevant terms here", "none here either")

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "null")
	assert.Contains(t, string(data), `"cv_skills":[]`)
	assert.Contains(t, string(data), `"missing":[]`)
}

func TestDiffSkillSets(t *testing.T) {
	matching, missing := diffSkillSets(
		[]string{"go", "python", "docker"},
		[]string{"python", "kubernetes", "go"},
	)

	assert.Equal(t, []string{"go", "python"}, matching, "交集应按字典序")
	assert.Equal(t, []string{"kubernetes"}, missing)
}

func TestDiffSkillSetsEmptySides(t *testing.T) {
	matching, missing := diffSkillSets(nil, []string{"aws"})
	assert.Empty(t, matching)
	assert.Equal(t, []string{"aws"}, missing)

	matching, missing = diffSkillSets([]string{"aws"}, nil)
	assert.Empty(t, matching)
	assert.Empty(t, missing)
}
