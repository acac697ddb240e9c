package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"cv-match-go/internal/logger"
)

// ServerConfig HTTP服务器配置
type ServerConfig struct {
	Address string `yaml:"address"` // 监听地址，例如 ":8080"
}

// MySQLConfig MySQL连接配置
type MySQLConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	Database        string `yaml:"database"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifeMins int    `yaml:"conn_max_life_mins"`
	LogLevel        string `yaml:"log_level"` // silent, error, warn, info
}

// DSN 拼接GORM使用的数据源字符串
func (c *MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.Username, c.Password, c.Host, c.Port, c.Database)
}

// RedisConfig Redis连接配置
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// 连接池设置
	PoolSize     int `yaml:"pool_size"`
	MinIdleConns int `yaml:"min_idle_conns"`
	// MD5去重记录过期时间(天)，0表示使用默认值
	MD5RecordExpireDays int `yaml:"md5_record_expire_days"`
}

// MinIOConfig MinIO对象存储配置
// Endpoint为空时不启用对象存储，原始文件只保留解析出的文本
type MinIOConfig struct {
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	UseSSL          bool   `yaml:"use_ssl"`
	ResumeBucket    string `yaml:"resume_bucket"`
}

// TikaConfig Tika文档解析服务器配置
// ServerURL为空时回退到本地Eino PDF解析器（仅支持PDF）
type TikaConfig struct {
	ServerURL      string `yaml:"server_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// EmbeddingConfig 向量模型配置 (OpenAI兼容接口)
type EmbeddingConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
}

// ScoringConfig 打分权重配置
// 三个权重之和应不超过1，否则总分可能越界
type ScoringConfig struct {
	SemanticWeight   float64 `yaml:"semantic_weight"`
	SkillsWeight     float64 `yaml:"skills_weight"`
	ExperienceWeight float64 `yaml:"experience_weight"`
}

// Config 应用程序配置
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	MySQL     MySQLConfig     `yaml:"mysql"`
	Redis     RedisConfig     `yaml:"redis"`
	MinIO     MinIOConfig     `yaml:"minio"`
	Tika      TikaConfig      `yaml:"tika"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Logger    logger.Config   `yaml:"logger"`
}

// LoadConfig 加载配置文件并应用环境变量覆盖
// configPath为空时在常见位置查找；找不到文件时返回默认配置
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			"./config.yaml",
			"../config.yaml",
			filepath.Join(os.Getenv("HOME"), ".cv-match", "config.yaml"),
		}
		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}
		if configPath == "" {
			// 无配置文件时返回默认配置，便于测试和本地运行
			cfg := defaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	config := defaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	applyEnvOverrides(config)
	applyDefaults(config)

	return config, nil
}

// applyEnvOverrides 用环境变量覆盖敏感配置项
func applyEnvOverrides(config *Config) {
	if envKey := os.Getenv("EMBEDDING_API_KEY"); envKey != "" {
		config.Embedding.APIKey = envKey
	}
	if envURL := os.Getenv("EMBEDDING_BASE_URL"); envURL != "" {
		config.Embedding.BaseURL = envURL
	}
	if envModel := os.Getenv("EMBEDDING_MODEL"); envModel != "" {
		config.Embedding.Model = envModel
	}
	if envPass := os.Getenv("MYSQL_PASSWORD"); envPass != "" {
		config.MySQL.Password = envPass
	}
}

// applyDefaults 补齐YAML中缺失的配置项
func applyDefaults(config *Config) {
	if config.Server.Address == "" {
		config.Server.Address = ":8080"
	}
	// 三个权重全为0视同未配置，替换为默认权重。
	// 全零权重会让总分恒为0，不是有效配置；
	// 要显式去掉某个分量，把它置0的同时给其余分量非零值
	if config.Scoring.SemanticWeight == 0 && config.Scoring.SkillsWeight == 0 && config.Scoring.ExperienceWeight == 0 {
		config.Scoring = defaultScoring()
	}
	if config.Logger.Level == "" {
		config.Logger.Level = "info"
	}
}

func defaultScoring() ScoringConfig {
	return ScoringConfig{
		SemanticWeight:   0.5,
		SkillsWeight:     0.3,
		ExperienceWeight: 0.2,
	}
}

// defaultConfig 返回不依赖任何外部服务的默认配置
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address: ":8080",
		},
		MySQL: MySQLConfig{
			Host:     "localhost",
			Port:     3306,
			Username: "root",
			Database: "cv_match",
			LogLevel: "warn",
		},
		Redis: RedisConfig{
			Address: "localhost:6379",
		},
		Embedding: EmbeddingConfig{
			BaseURL:    "https://dashscope.aliyuncs.com/compatible-mode/v1/embeddings",
			Dimensions: 1024,
		},
		Scoring: defaultScoring(),
		Logger: logger.Config{
			Level:  "info",
			Format: "pretty",
		},
	}
}

// Weights 把打分配置转换为引擎使用的权重表
func (c *ScoringConfig) Weights() map[string]float64 {
	return map[string]float64{
		"semantic":   c.SemanticWeight,
		"skills":     c.SkillsWeight,
		"experience": c.ExperienceWeight,
	}
}
