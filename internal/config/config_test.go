package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeTempConfig(t, `
server:
  address: ":9090"
mysql:
  host: db.internal
  port: 3307
  username: matcher
  password: secret
  database: cv_match
scoring:
  semantic_weight: 0.6
  skills_weight: 0.3
  experience_weight: 0.1
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "db.internal", cfg.MySQL.Host)
	assert.Equal(t, 0.6, cfg.Scoring.SemanticWeight)
	assert.Equal(t, 0.1, cfg.Scoring.ExperienceWeight)
}

func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeTempConfig(t, `
embedding:
  api_key: from-file
mysql:
  password: from-file
`)

	t.Setenv("EMBEDDING_API_KEY", "from-env")
	t.Setenv("MYSQL_PASSWORD", "env-pass")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Embedding.APIKey, "环境变量应覆盖文件配置")
	assert.Equal(t, "env-pass", cfg.MySQL.Password)
}

func TestLoadConfigDefaultScoringWeights(t *testing.T) {
	path := writeTempConfig(t, `
server:
  address: ":8080"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.Scoring.SemanticWeight)
	assert.Equal(t, 0.3, cfg.Scoring.SkillsWeight)
	assert.Equal(t, 0.2, cfg.Scoring.ExperienceWeight)
}

// 全零权重视同未配置：替换为默认权重而不是让总分恒为0
func TestLoadConfigAllZeroScoringTreatedAsUnset(t *testing.T) {
	path := writeTempConfig(t, `
scoring:
  semantic_weight: 0
  skills_weight: 0
  experience_weight: 0
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.Scoring.SemanticWeight)
	assert.Equal(t, 0.3, cfg.Scoring.SkillsWeight)
	assert.Equal(t, 0.2, cfg.Scoring.ExperienceWeight)
}

// 部分非零的权重原样保留，归零的分量不被回填
func TestLoadConfigPartialZeroScoringPreserved(t *testing.T) {
	path := writeTempConfig(t, `
scoring:
  semantic_weight: 0.8
  skills_weight: 0
  experience_weight: 0.2
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 0.8, cfg.Scoring.SemanticWeight)
	assert.Equal(t, 0.0, cfg.Scoring.SkillsWeight)
	assert.Equal(t, 0.2, cfg.Scoring.ExperienceWeight)
}

func TestMySQLDSN(t *testing.T) {
	cfg := MySQLConfig{
		Host:     "localhost",
		Port:     3306,
		Username: "root",
		Password: "pass",
		Database: "cv_match",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "root:pass@tcp(localhost:3306)/cv_match")
	assert.Contains(t, dsn, "parseTime=True")
}

func TestScoringWeights(t *testing.T) {
	cfg := ScoringConfig{SemanticWeight: 0.5, SkillsWeight: 0.3, ExperienceWeight: 0.2}

	weights := cfg.Weights()
	assert.Equal(t, 0.5, weights["semantic"])
	assert.Equal(t, 0.3, weights["skills"])
	assert.Equal(t, 0.2, weights["experience"])
}
