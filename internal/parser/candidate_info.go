package parser

import (
	"regexp"
	"sort"
	"strings"

	"cv-match-go/internal/types"
)

var (
	// emailPattern 第一个形似RFC的邮箱命中即采纳
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// phonePattern 常见电话格式: (123) 456-7890, 123-456-7890, +86 138 0013 8000等
	// 可选国家码 + 可选括号区号 + 空格/点/连字符分隔
	phonePattern = regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
)

// degreeVocabulary 学历关键词表，大小写不敏感整词扫描
var degreeVocabulary = []string{
	"B.Tech", "B.E.", "B.Sc", "BCA", "B.A.",
	"M.Tech", "M.E.", "M.Sc", "MCA", "M.B.A.", "MBA", "M.A.",
	"Ph.D", "Doctorate", "Bachelor", "Master", "Diploma",
}

var degreePatterns = func() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(degreeVocabulary))
	for _, degree := range degreeVocabulary {
		patterns[degree] = regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(degree)) + `\b`)
	}
	return patterns
}()

// ExtractCandidateInfo 从简历文本启发式提取候选人联系方式、学历和姓名
//
// 每个字段独立尽力而为：某个字段匹配失败不影响其余字段，
// 缺失字段以零值表示，调用方必须把所有字段视为可选。
// 对任何UTF-8输入都不会出错。
func ExtractCandidateInfo(text string) *types.CandidateInfo {
	info := &types.CandidateInfo{}
	if text == "" {
		return info
	}

	// 1. 邮箱：第一个命中
	if match := emailPattern.FindString(text); match != "" {
		info.Email = match
	}

	// 2. 电话：第一个形似电话的命中
	if match := phonePattern.FindString(text); match != "" {
		info.Phone = strings.TrimSpace(match)
	}

	// 3. 学历：扫描固定关键词表，去重后收集全部命中
	lowerText := strings.ToLower(text)
	degreeSet := make(map[string]struct{})
	for degree, pattern := range degreePatterns {
		if pattern.MatchString(lowerText) {
			degreeSet[degree] = struct{}{}
		}
	}
	if len(degreeSet) > 0 {
		for degree := range degreeSet {
			info.Education = append(info.Education, degree)
		}
		sort.Strings(info.Education)
	}

	// 4. 姓名：第一条非空行；若字段数>=5或包含resume/curriculum则退回第二行
	info.Name = extractName(text)

	return info
}

// extractName 低置信度的姓名启发式，允许返回空串
func extractName(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) == 0 {
		return ""
	}

	first := lines[0]
	lowerFirst := strings.ToLower(first)
	if len(strings.Fields(first)) < 5 &&
		!strings.Contains(lowerFirst, "resume") &&
		!strings.Contains(lowerFirst, "curriculum") {
		return first
	}
	if len(lines) > 1 {
		return lines[1]
	}
	return ""
}
