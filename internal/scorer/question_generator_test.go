package scorer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateQuestionsNoMissing(t *testing.T) {
	questions := GenerateQuestions(nil)

	require.Len(t, questions, 2)
	assert.Equal(t, questionBehavioral, questions[0], "首条恒为行为面问题")
	assert.Equal(t, questionStrongFit, questions[1], "无缺失时追加优势追问")
}

func TestGenerateQuestionsCloudCategory(t *testing.T) {
	questions := GenerateQuestions([]string{"kubernetes"})

	require.GreaterOrEqual(t, len(questions), 3)
	assert.Equal(t, questionBehavioral, questions[0])
	assert.Equal(t, questionCloud, questions[1])
	// 只命中一个分类，不足3条时兜底点名缺失技能
	assert.Contains(t, questions[2], "Kubernetes", "兜底问题应点名首个缺失技能的标题格式")
}

func TestGenerateQuestionsLanguageInterpolation(t *testing.T) {
	questions := GenerateQuestions([]string{"go", "rust", "scala"})

	require.GreaterOrEqual(t, len(questions), 2)
	assert.Contains(t, questions[1], "We use go, rust.", "languages模板只代入前两个缺失技能")
	assert.NotContains(t, questions[1], "scala")
}

func TestGenerateQuestionsTwoCategoriesInOrder(t *testing.T) {
	// cloud在词表中先于soft，即使输入顺序相反
	questions := GenerateQuestions([]string{"aws", "leadership"})

	require.GreaterOrEqual(t, len(questions), 3)
	assert.Equal(t, questionCloud, questions[1])
	assert.Equal(t, questionSoft, questions[2])
}

func TestGenerateQuestionsCap(t *testing.T) {
	// 行为面 + languages + web 已满3条不触发兜底，后续分类被截断
	questions := GenerateQuestions([]string{"aws", "java", "leadership", "pandas", "python", "react"})

	assert.Len(t, questions, 3, "前两个分类加首条共3条，不触发兜底")
	assert.Contains(t, questions[1], "We use java, python.")
	assert.Contains(t, questions[2], "react")
}

func TestGenerateQuestionsNeverExceedsFour(t *testing.T) {
	inputs := [][]string{
		nil,
		{"kubernetes"},
		{"python"},
		{"python", "react"},
		{"python", "react", "aws", "leadership", "pandas", "mysql"},
	}
	for _, missing := range inputs {
		questions := GenerateQuestions(missing)
		assert.GreaterOrEqual(t, len(questions), 2)
		assert.LessOrEqual(t, len(questions), 4)
	}
}

// db分类没有问题模板：占用分类名额但不产出，保留兜底补位
func TestGenerateQuestionsDatabaseCategoryProducesNoTemplate(t *testing.T) {
	questions := GenerateQuestions([]string{"mongodb", "mysql"})

	require.Len(t, questions, 2)
	assert.Equal(t, questionBehavioral, questions[0])
	assert.Contains(t, questions[1], "Mongodb is a requirement", "db无模板时仅剩兜底问题")
	for _, q := range questions {
		assert.False(t, strings.Contains(q, "mysql"), "mysql不应出现在问题正文中")
	}
}
