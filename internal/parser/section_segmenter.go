package parser

import (
	"sort"
	"strings"

	"cv-match-go/internal/types"
)

// 各章节的锚点关键词，按首次出现位置定位章节起点
var sectionAnchors = map[string][]string{
	"experience": {"experience", "work history", "employment"},
	"education":  {"education", "academic", "qualifications"},
	"skills":     {"skills", "technologies", "competencies"},
}

// anchorHit 记录一个章节锚点的命中位置
type anchorHit struct {
	offset  int
	section string
}

// lowerASCII 仅小写ASCII字母，其余字符原样保留
// 锚点关键词全部为ASCII；strings.ToLower对部分Unicode字符
// 会改变字节长度，命中偏移就无法用于切片原文
func lowerASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

// SegmentSections 按关键词锚点把简历文本启发式切分为章节
//
// 每组锚点取 strings.Index 结果的最大值作为该章节起点，
// 即同组内靠后出现的同义词会覆盖靠前的命中——这是对版式的
// 粗粒度猜测，非线性排版的简历可能切分失准，属于接受的行为。
// 章节按起点排序后首尾相接切片；第一个锚点之前的内容归入 Other；
// 完全没有命中锚点时整篇文本归入 Other。
// 大小写折叠按字节长度不变的方式进行，命中偏移始终是原文的合法切点。
func SegmentSections(text string) types.SectionMap {
	result := types.SectionMap{}
	lowerText := lowerASCII(text)

	var hits []anchorHit
	for section, anchors := range sectionAnchors {
		idx := -1
		for _, anchor := range anchors {
			if pos := strings.Index(lowerText, anchor); pos > idx {
				idx = pos
			}
		}
		if idx >= 0 {
			hits = append(hits, anchorHit{offset: idx, section: section})
		}
	}

	if len(hits) == 0 {
		result.Other = text
		return result
	}

	// 按起点排序，同偏移时按章节名保证确定性
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].offset != hits[j].offset {
			return hits[i].offset < hits[j].offset
		}
		return hits[i].section < hits[j].section
	})

	result.Other = text[:hits[0].offset]

	for i, hit := range hits {
		end := len(text)
		if i < len(hits)-1 {
			end = hits[i+1].offset
		}
		span := text[hit.offset:end]
		switch hit.section {
		case "experience":
			result.Experience = span
		case "education":
			result.Education = span
		case "skills":
			result.Skills = span
		}
	}

	return result
}
