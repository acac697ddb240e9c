package storage

import (
	"context"
	"fmt"

	"cv-match-go/internal/config"
	"cv-match-go/internal/logger"
)

// Storage 聚合全部存储适配器
// MySQL为必备；Redis和MinIO按配置可选，缺席时相应能力降级：
// 没有Redis时跳过简历去重，没有MinIO时不保留原始文件
type Storage struct {
	MySQL *MySQL
	Redis *Redis
	MinIO *MinIO
}

// NewStorage 按配置初始化存储层
func NewStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	s := &Storage{}

	mysqlAdapter, err := NewMySQL(&cfg.MySQL)
	if err != nil {
		return nil, fmt.Errorf("初始化MySQL失败: %w", err)
	}
	s.MySQL = mysqlAdapter

	if cfg.Redis.Address != "" {
		redisAdapter, err := NewRedis(ctx, &cfg.Redis)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("初始化Redis失败: %w", err)
		}
		s.Redis = redisAdapter
	} else {
		logger.Warn().Msg("未配置Redis，简历去重功能不可用")
	}

	if cfg.MinIO.Endpoint != "" {
		minioAdapter, err := NewMinIO(ctx, &cfg.MinIO)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("初始化MinIO失败: %w", err)
		}
		s.MinIO = minioAdapter
	} else {
		logger.Warn().Msg("未配置MinIO，原始简历文件将不做保留")
	}

	return s, nil
}

// Close 逐个关闭已初始化的适配器
func (s *Storage) Close() {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			logger.Error().Err(err).Msg("关闭Redis连接失败")
		}
	}
	if s.MySQL != nil {
		if err := s.MySQL.Close(); err != nil {
			logger.Error().Err(err).Msg("关闭MySQL连接失败")
		}
	}
}
