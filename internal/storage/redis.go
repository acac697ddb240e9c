package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cv-match-go/internal/config"
	"cv-match-go/internal/constants"
)

// Redis Redis适配器，当前仅承担简历文本MD5的去重记录
// 这不是打分结果缓存——每次打分都重新计算
type Redis struct {
	Client    *redis.Client
	md5Expire time.Duration
}

// NewRedis 建立Redis连接并探活
func NewRedis(ctx context.Context, cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("Redis配置不能为空")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("连接Redis失败: %w", err)
	}

	md5Expire := constants.DefaultMD5Expire
	if cfg.MD5RecordExpireDays > 0 {
		md5Expire = time.Duration(cfg.MD5RecordExpireDays) * 24 * time.Hour
	}

	return &Redis{Client: client, md5Expire: md5Expire}, nil
}

// Close 关闭连接
func (r *Redis) Close() error {
	return r.Client.Close()
}

// CheckResumeMD5Exists 判断同一岗位下是否已处理过相同文本的简历
func (r *Redis) CheckResumeMD5Exists(ctx context.Context, jobID, md5 string) (bool, error) {
	key := fmt.Sprintf(constants.KeyResumeMD5Set, jobID)
	exists, err := r.Client.SIsMember(ctx, key, md5).Result()
	if err != nil {
		return false, fmt.Errorf("查询MD5去重集合失败: %w", err)
	}
	return exists, nil
}

// RecordResumeMD5 记录已处理简历的文本MD5并续期整个集合
func (r *Redis) RecordResumeMD5(ctx context.Context, jobID, md5 string) error {
	key := fmt.Sprintf(constants.KeyResumeMD5Set, jobID)
	pipe := r.Client.Pipeline()
	pipe.SAdd(ctx, key, md5)
	pipe.Expire(ctx, key, r.md5Expire)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("写入MD5去重集合失败: %w", err)
	}
	return nil
}
