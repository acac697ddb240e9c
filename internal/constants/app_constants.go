package constants

import "time"

// 候选人处理状态
const (
	CandidateStatusNew         = "NEW"
	CandidateStatusShortlisted = "SHORTLISTED"
	CandidateStatusRejected    = "REJECTED"
)

// 岗位状态
const (
	JobStatusActive = "ACTIVE"
	JobStatusClosed = "CLOSED"
)

// Redis Key 常量
// 统一命名规范: cvmatch:{module}:{entity}[:{id}]
const (
	// KeyResumeMD5Set 简历原始文本MD5去重集合 (SET)
	// 格式: cvmatch:resume:dedup_set:{jobID}
	KeyResumeMD5Set = "cvmatch:resume:dedup_set:%s"

	// DefaultMD5Expire MD5去重记录的默认过期时间
	DefaultMD5Expire = 30 * 24 * time.Hour
)

// 打分相关常量
const (
	// MinSectionLength 章节参与独立打分的最小长度(字符数)
	// 低于该长度的章节退回使用全文相似度
	MinSectionLength = 20

	// MaxQuestions 生成面试问题的数量上限
	MaxQuestions = 4
)
