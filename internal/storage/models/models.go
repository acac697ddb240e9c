package models

import (
	"time"

	"gorm.io/datatypes"
)

// Job 岗位信息表
type Job struct {
	JobID       string         `gorm:"type:char(36);primaryKey"`
	Title       string         `gorm:"type:varchar(255);not null"`
	Description string         `gorm:"type:text;not null"`
	Status      string         `gorm:"type:varchar(50);default:'ACTIVE';index:idx_jobs_status"`
	WeightsJSON datatypes.JSON `gorm:"type:json"` // 岗位级打分权重覆盖，可为空
	CreatedAt   time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt   time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (Job) TableName() string {
	return "jobs"
}

// Candidate 候选人表，一条记录对应一次简历投递及其打分快照
type Candidate struct {
	CandidateID      string         `gorm:"type:char(36);primaryKey"`
	JobID            string         `gorm:"type:char(36);not null;index:idx_candidates_job_id"`
	Name             string         `gorm:"type:varchar(255)"`
	Email            string         `gorm:"type:varchar(255)"`
	Phone            string         `gorm:"type:varchar(50)"`
	EducationJSON    datatypes.JSON `gorm:"type:json"` // 启发式提取的学历关键词列表
	OriginalFilename string         `gorm:"type:varchar(255)"`
	FileObjectKey    string         `gorm:"type:varchar(1024)"` // MinIO对象键，未启用对象存储时为空
	RawTextMD5       string         `gorm:"type:char(32);index:idx_candidates_raw_text_md5"`
	ResumeText       string         `gorm:"type:mediumtext"`
	Status           string         `gorm:"type:varchar(50);default:'NEW';index:idx_candidates_status"`
	Notes            string         `gorm:"type:text"`

	// 打分快照
	TotalScore      float64        `gorm:"index:idx_candidates_total_score"`
	SemanticMatch   float64        `gorm:""`
	SkillsMatch     float64        `gorm:""`
	ExperienceMatch float64        `gorm:""`
	AnalysisJSON    datatypes.JSON `gorm:"type:json"` // 完整的差距分析结果

	CreatedAt time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`

	Job *Job `gorm:"foreignKey:JobID;references:JobID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Candidate) TableName() string {
	return "candidates"
}
