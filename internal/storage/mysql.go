package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"cv-match-go/internal/config"
	"cv-match-go/internal/storage/models"
)

// ErrRecordNotFound 查询对象不存在
var ErrRecordNotFound = gorm.ErrRecordNotFound

// MySQL MySQL存储适配器
type MySQL struct {
	db *gorm.DB
}

// NewMySQL 建立MySQL连接并完成表结构迁移
func NewMySQL(cfg *config.MySQLConfig) (*MySQL, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MySQL配置不能为空")
	}

	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(parseGormLogLevel(cfg.LogLevel)),
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN()), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层连接池失败: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifeMins > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifeMins) * time.Minute)
	}

	if err := db.AutoMigrate(&models.Job{}, &models.Candidate{}); err != nil {
		return nil, fmt.Errorf("迁移表结构失败: %w", err)
	}

	return &MySQL{db: db}, nil
}

func parseGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// DB 暴露底层gorm实例
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

// Close 关闭连接池
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateJob 新建岗位
func (m *MySQL) CreateJob(ctx context.Context, job *models.Job) error {
	if err := m.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("创建岗位失败: %w", err)
	}
	return nil
}

// GetJob 按ID查询岗位
func (m *MySQL) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	var job models.Job
	err := m.db.WithContext(ctx).First(&job, "job_id = ?", jobID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("查询岗位失败: %w", err)
	}
	return &job, nil
}

// ListJobs 按创建时间倒序列出全部岗位
func (m *MySQL) ListJobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	if err := m.db.WithContext(ctx).Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("查询岗位列表失败: %w", err)
	}
	return jobs, nil
}

// DeleteJob 删除岗位及其全部候选人
func (m *MySQL) DeleteJob(ctx context.Context, jobID string) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Candidate{}, "job_id = ?", jobID).Error; err != nil {
			return fmt.Errorf("删除岗位候选人失败: %w", err)
		}
		result := tx.Delete(&models.Job{}, "job_id = ?", jobID)
		if result.Error != nil {
			return fmt.Errorf("删除岗位失败: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrRecordNotFound
		}
		return nil
	})
}

// CreateCandidate 保存候选人及其打分快照
func (m *MySQL) CreateCandidate(ctx context.Context, candidate *models.Candidate) error {
	if err := m.db.WithContext(ctx).Create(candidate).Error; err != nil {
		return fmt.Errorf("创建候选人失败: %w", err)
	}
	return nil
}

// GetCandidate 按ID查询候选人
func (m *MySQL) GetCandidate(ctx context.Context, candidateID string) (*models.Candidate, error) {
	var candidate models.Candidate
	err := m.db.WithContext(ctx).First(&candidate, "candidate_id = ?", candidateID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("查询候选人失败: %w", err)
	}
	return &candidate, nil
}

// ListCandidatesByJob 列出岗位下全部候选人，按总分倒序(排名)
func (m *MySQL) ListCandidatesByJob(ctx context.Context, jobID string) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := m.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("total_score DESC").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("查询候选人列表失败: %w", err)
	}
	return candidates, nil
}

// UpdateCandidateStatus 更新候选人处理状态
func (m *MySQL) UpdateCandidateStatus(ctx context.Context, candidateID, status string) error {
	result := m.db.WithContext(ctx).
		Model(&models.Candidate{}).
		Where("candidate_id = ?", candidateID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("更新候选人状态失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// UpdateCandidateNotes 更新候选人备注
func (m *MySQL) UpdateCandidateNotes(ctx context.Context, candidateID, notes string) error {
	result := m.db.WithContext(ctx).
		Model(&models.Candidate{}).
		Where("candidate_id = ?", candidateID).
		Update("notes", notes)
	if result.Error != nil {
		return fmt.Errorf("更新候选人备注失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// DeleteCandidate 删除候选人
func (m *MySQL) DeleteCandidate(ctx context.Context, candidateID string) error {
	result := m.db.WithContext(ctx).Delete(&models.Candidate{}, "candidate_id = ?", candidateID)
	if result.Error != nil {
		return fmt.Errorf("删除候选人失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
