package types

// SourceFormat 文档的来源格式
type SourceFormat string

const (
	// FormatPDF PDF文档
	FormatPDF SourceFormat = "pdf"
	// FormatDOCX Word文档
	FormatDOCX SourceFormat = "docx"
	// FormatTXT 纯文本
	FormatTXT SourceFormat = "txt"
)

// Document 表示一份已提取为纯文本的文档
// 提取完成后内容不可变，核心引擎不负责持久化
type Document struct {
	Text   string       `json:"text"`
	Format SourceFormat `json:"format"`
}

// SectionMap 简历按关键词锚点切分后的各章节文本
// 各字段为原文的连续子串，互不重叠且按文档顺序排列；
// 未识别出任何锚点时全部文本落入 Other
type SectionMap struct {
	Experience string `json:"experience"`
	Education  string `json:"education"`
	Skills     string `json:"skills"`
	Other      string `json:"other"`
}

// ScoreBreakdown 打分结果，所有数值均为百分比并保留两位小数
type ScoreBreakdown struct {
	// TotalScore 加权总分，范围 [0, 100]
	TotalScore float64 `json:"total_score"`
	// SemanticMatch 全文语义匹配分
	SemanticMatch float64 `json:"semantic_match"`
	// SkillsMatch 技能章节匹配分
	SkillsMatch float64 `json:"skills_match"`
	// ExperienceMatch 经历章节匹配分
	ExperienceMatch float64 `json:"experience_match"`
}

// AnalysisResult 简历与JD的技能差距分析结果
// 全部字段由(简历, JD)文本对确定性推导，不携带持久化身份
type AnalysisResult struct {
	// CVSkills 简历中命中的技能词
	CVSkills []string `json:"cv_skills"`
	// JDSkills JD中命中的技能词
	JDSkills []string `json:"jd_skills"`
	// Matching 双方共有的技能
	Matching []string `json:"matching"`
	// Missing JD要求但简历缺失的技能
	Missing []string `json:"missing"`
	// Questions 生成的面试问题，1~4条
	Questions []string `json:"questions"`
}

// CandidateInfo 从简历文本中启发式提取的候选人信息
// 每个字段都是尽力而为的结果，调用方必须容忍缺失
type CandidateInfo struct {
	Name      string   `json:"name,omitempty"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Education []string `json:"education,omitempty"`
}
