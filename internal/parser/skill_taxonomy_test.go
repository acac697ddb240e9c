package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSkillsWholeWordOnly(t *testing.T) {
	// "go"不应命中"google"，"r"不应命中"rust"内部
	skills := ExtractSkills("I searched google for golang tutorials")
	assert.NotContains(t, skills, "go", "整词匹配不应命中google内部的go")

	skills = ExtractSkills("We write services in Go and deploy with Docker.")
	assert.Contains(t, skills, "go")
	assert.Contains(t, skills, "docker")
}

func TestExtractSkillsSpecialCharacters(t *testing.T) {
	skills := ExtractSkills("Strong C++ and C# background")
	assert.Contains(t, skills, "c++", "c++应按字面匹配而非正则语法")
	assert.Contains(t, skills, "c#")
}

func TestExtractSkillsCaseInsensitive(t *testing.T) {
	skills := ExtractSkills("PYTHON, Kubernetes, TensorFlow")
	assert.Contains(t, skills, "python")
	assert.Contains(t, skills, "kubernetes")
	assert.Contains(t, skills, "tensorflow")
}

func TestExtractSkillsMultiWordTerms(t *testing.T) {
	skills := ExtractSkills("Experienced with Power BI dashboards and problem solving.")
	assert.Contains(t, skills, "power bi")
	assert.Contains(t, skills, "problem solving")
}

func TestExtractSkillsDeterministicAndSorted(t *testing.T) {
	text := "Python, Go, Docker, MySQL, React"
	first := ExtractSkills(text)
	second := ExtractSkills(text)
	assert.Equal(t, first, second, "同一输入的结果应稳定")
	assert.IsNonDecreasing(t, first, "输出应按字典序排列")
}

// 对稳定输入重复套用提取应得到同一集合
func TestExtractSkillsIdempotent(t *testing.T) {
	text := "python go docker kubernetes"
	once := ExtractSkills(text)
	again := ExtractSkills(strings.Join(once, " "))
	assert.ElementsMatch(t, once, again, "对提取结果再次提取应得到同一集合")
}

func TestExtractSkillsEmptyText(t *testing.T) {
	assert.Empty(t, ExtractSkills(""))
	assert.Empty(t, ExtractSkills("   \n\t  "))
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, "languages", CategoryOf("python"))
	assert.Equal(t, "cloud", CategoryOf("kubernetes"))
	assert.Equal(t, "db", CategoryOf("redis"))
	assert.Equal(t, "soft", CategoryOf("leadership"))
	assert.Equal(t, "", CategoryOf("cobol"), "词表外的词应返回空串")
	assert.Equal(t, "languages", CategoryOf("Python"), "分类反查应大小写不敏感")
}

func TestCategoriesInOrder(t *testing.T) {
	assert.Equal(t, []string{"languages", "web", "data", "cloud", "db", "soft"}, CategoriesInOrder(),
		"分类顺序应等于词表声明顺序")
}
