package scorer

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"cv-match-go/internal/constants"
	"cv-match-go/internal/parser"
)

// 固定问题模板
const (
	questionBehavioral = "Describe a challenging technical problem you solved recently and how you approached it."
	questionStrongFit  = "Your profile is a strong match. Which of the required skills do you consider your strongest asset and why?"
	questionData       = "Can you explain your workflow for data processing and model validation?"
	questionCloud      = "How do you handle deployment and containerization in your previous projects?"
	questionSoft       = "Give an example of a time you had to lead a team or resolve a conflict."
)

var titleCaser = cases.Title(language.English)

// GenerateQuestions 基于缺失技能生成确定性的面试问题列表
//
// 固定模板引擎，不做自由文本生成。规则：
//  1. 恒定首条行为面问题；
//  2. 无缺失技能时追加一条优势追问；
//  3. 否则把缺失技能按分类分组，按词表声明顺序取前两个分类，
//     每个分类追加一条固定模板问题（languages/web会代入至多
//     两个实际缺失的技能名；db分类没有模板，占位但不产出）；
//  4. 不足3条时追加一条点名最高优先缺失技能的问题；
//  5. 上限4条。
//
// 输入missing应已按字典序排列，保证分类内取词和"最高优先"的确定性。
func GenerateQuestions(missing []string) []string {
	questions := []string{questionBehavioral}

	if len(missing) == 0 {
		questions = append(questions, questionStrongFit)
		return capQuestions(questions)
	}

	// 按分类分组缺失技能
	byCategory := make(map[string][]string)
	for _, skill := range missing {
		if cat := parser.CategoryOf(skill); cat != "" {
			byCategory[cat] = append(byCategory[cat], skill)
		}
	}

	// 按词表声明顺序取前两个有缺失的分类
	picked := 0
	for _, cat := range parser.CategoriesInOrder() {
		if picked >= 2 {
			break
		}
		catMissing, ok := byCategory[cat]
		if !ok {
			continue
		}
		picked++

		switch cat {
		case "languages":
			questions = append(questions, fmt.Sprintf(
				"We use %s. How would you adapt to a new language quickly?",
				joinFirstTwo(catMissing)))
		case "web":
			questions = append(questions, fmt.Sprintf(
				"Our stack involves modern web frameworks like %s. What is your experience with component-based architecture?",
				joinFirstTwo(catMissing)))
		case "data":
			questions = append(questions, questionData)
		case "cloud":
			questions = append(questions, questionCloud)
		case "soft":
			questions = append(questions, questionSoft)
		}
	}

	// 兜底：问题不足3条时点名第一个缺失技能
	if len(questions) < 3 {
		questions = append(questions, fmt.Sprintf(
			"I noticed %s is a requirement. Can you relate any parallel experience that would help you pick this up?",
			titleCaser.String(missing[0])))
	}

	return capQuestions(questions)
}

// joinFirstTwo 取至多前两个技能名，逗号连接
func joinFirstTwo(skills []string) string {
	if len(skills) > 2 {
		skills = skills[:2]
	}
	return strings.Join(skills, ", ")
}

// capQuestions 截断到问题数量上限
func capQuestions(questions []string) []string {
	if len(questions) > constants.MaxQuestions {
		return questions[:constants.MaxQuestions]
	}
	return questions
}
