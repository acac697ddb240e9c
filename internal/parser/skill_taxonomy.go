package parser

import (
	"regexp"
	"sort"
	"strings"
)

// skillCategory 技能分类及其词表
type skillCategory struct {
	Name   string
	Skills []string
}

// skillTaxonomy 静态技能分类词表，进程内只读
// 切片顺序即分类的声明顺序，问题生成等处依赖该顺序保证确定性
var skillTaxonomy = []skillCategory{
	{Name: "languages", Skills: []string{
		"python", "java", "javascript", "c++", "c#", "ruby", "php",
		"swift", "go", "rust", "typescript", "sql", "r", "matlab",
	}},
	{Name: "web", Skills: []string{
		"react", "angular", "vue", "node", "flask", "django", "spring",
		"asp.net", "html", "css", "bootstrap", "jquery", "tailwind",
	}},
	{Name: "data", Skills: []string{
		"pandas", "numpy", "scikit-learn", "tensorflow", "pytorch",
		"keras", "hadoop", "spark", "tableau", "power bi", "excel",
	}},
	{Name: "cloud", Skills: []string{
		"aws", "azure", "gcp", "docker", "kubernetes", "jenkins",
		"terraform", "ansible", "circleci", "git",
	}},
	{Name: "db", Skills: []string{
		"mysql", "postgresql", "mongodb", "oracle", "redis",
		"cassandra", "elasticsearch", "dynamodb",
	}},
	{Name: "soft", Skills: []string{
		"communication", "leadership", "teamwork", "agile", "scrum",
		"problem solving", "time management", "presentation",
	}},
}

var (
	// skillPatterns 每个技能词预编译的整词匹配正则
	// 特殊字符(如 c++)用 QuoteMeta 按字面处理
	skillPatterns map[string]*regexp.Regexp

	// skillToCategory 技能词到分类名的反查表
	skillToCategory map[string]string
)

func init() {
	skillPatterns = make(map[string]*regexp.Regexp)
	skillToCategory = make(map[string]string)
	for _, cat := range skillTaxonomy {
		for _, skill := range cat.Skills {
			skillPatterns[skill] = regexp.MustCompile(`\b` + regexp.QuoteMeta(skill) + `\b`)
			skillToCategory[skill] = cat.Name
		}
	}
}

// ExtractSkills 从文本中提取词表内命中的技能词
//
// 命中规则为大小写不敏感的整词匹配，避免 "go" 匹配进 "google" 这类误报。
// 返回结果按字典序排列，语义上仍是一个集合。
func ExtractSkills(text string) []string {
	lowerText := strings.ToLower(text)

	var found []string
	for skill, pattern := range skillPatterns {
		if pattern.MatchString(lowerText) {
			found = append(found, skill)
		}
	}

	sort.Strings(found)
	return found
}

// CategoryOf 返回技能词所属的分类名；词表外的词返回空串
func CategoryOf(skill string) string {
	return skillToCategory[strings.ToLower(skill)]
}

// CategoriesInOrder 按声明顺序返回所有分类名
func CategoriesInOrder() []string {
	names := make([]string, 0, len(skillTaxonomy))
	for _, cat := range skillTaxonomy {
		names = append(names, cat.Name)
	}
	return names
}
