package scorer

import (
	"context"
	"errors"
	"hash/fnv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bagEmbedder 测试用确定性嵌入器：词袋哈希向量
// 相同文本恒得相同向量，便于验证打分合成逻辑
type bagEmbedder struct{}

func (bagEmbedder) EmbedStrings(_ context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vec := make([]float64, 64)
		for _, token := range strings.Fields(strings.ToLower(text)) {
			h := fnv.New32a()
			_, _ = h.Write([]byte(token))
			vec[h.Sum32()%64]++
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// failEmbedder 恒返回错误的嵌入器
type failEmbedder struct{}

func (failEmbedder) EmbedStrings(context.Context, []string) ([][]float64, error) {
	return nil, errors.New("模型不可用")
}

// shortEmbedder 返回的向量数量与输入文本数量不符
type shortEmbedder struct{}

func (shortEmbedder) EmbedStrings(context.Context, []string) ([][]float64, error) {
	return [][]float64{{1, 0, 0}}, nil
}

func newTestEngine() *Engine {
	return NewEngine(bagEmbedder{})
}

const testResume = "Jane Smith\n" +
	"Experience: built and operated large scale backend services in go and python for years.\n" +
	"Skills: go python docker kubernetes mysql redis and distributed systems design."

const testJob = "Looking for a backend engineer with go python kubernetes experience " +
	"to build distributed services."

func TestScoreBounds(t *testing.T) {
	engine := newTestEngine()

	breakdown, err := engine.Score(context.Background(), testResume, testJob, nil)
	require.NoError(t, err)

	for name, v := range map[string]float64{
		"total":      breakdown.TotalScore,
		"semantic":   breakdown.SemanticMatch,
		"skills":     breakdown.SkillsMatch,
		"experience": breakdown.ExperienceMatch,
	} {
		assert.GreaterOrEqual(t, v, 0.0, "%s分量应>=0", name)
		assert.LessOrEqual(t, v, 100.0, "%s分量应<=100", name)
	}
}

func TestScoreSelfSimilarityDominates(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	self, err := engine.Score(ctx, testResume, testResume, nil)
	require.NoError(t, err)

	unrelated, err := engine.Score(ctx, testResume, "gardening flowers watering schedule for tulips", nil)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, self.TotalScore, unrelated.TotalScore,
		"自相似总分应不低于无关文本的总分")
}

// 权重{semantic:1, skills:0, experience:0}时总分应恒等于语义分量
func TestScoreComponentIsolation(t *testing.T) {
	engine := newTestEngine()

	weights := map[string]float64{
		"semantic":   1,
		"skills":     0,
		"experience": 0,
	}
	breakdown, err := engine.Score(context.Background(), testResume, testJob, weights)
	require.NoError(t, err)

	assert.InDelta(t, breakdown.SemanticMatch, breakdown.TotalScore, 0.011,
		"隔离权重下总分应等于语义分量")
}

func TestScoreUnknownWeightKeysIgnored(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	withNoise, err := engine.Score(ctx, testResume, testJob, map[string]float64{
		"semantic":       0.5,
		"skills":         0.3,
		"experience":     0.2,
		"unknown_factor": 99,
	})
	require.NoError(t, err)

	plain, err := engine.Score(ctx, testResume, testJob, nil)
	require.NoError(t, err)

	assert.Equal(t, plain.TotalScore, withNoise.TotalScore, "未知权重键应被忽略")
}

func TestScoreMissingWeightKeysDefaulted(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	partial, err := engine.Score(ctx, testResume, testJob, map[string]float64{"semantic": 0.5})
	require.NoError(t, err)

	full, err := engine.Score(ctx, testResume, testJob, nil)
	require.NoError(t, err)

	assert.Equal(t, full.TotalScore, partial.TotalScore, "缺失权重键应回退默认值")
}

// 没有技能章节(或过短)时技能分量退回全文分
func TestScoreSectionFallback(t *testing.T) {
	engine := newTestEngine()

	resume := "just a flat paragraph about building services in go without any section headers at all"
	breakdown, err := engine.Score(context.Background(), resume, testJob, nil)
	require.NoError(t, err)

	assert.Equal(t, breakdown.SemanticMatch, breakdown.SkillsMatch, "无技能章节时应退回全文分")
	assert.Equal(t, breakdown.SemanticMatch, breakdown.ExperienceMatch, "无经历章节时应退回全文分")
}

func TestScoreEmptyInputs(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	cases := []struct {
		name       string
		resumeText string
		jobText    string
	}{
		{"空简历", "", testJob},
		{"空JD", testResume, ""},
		{"双空", "", ""},
		{"纯空白", "   \n\t ", "  "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			breakdown, err := engine.Score(ctx, tc.resumeText, tc.jobText, nil)
			require.NoError(t, err, "空输入不应报错")
			assert.Equal(t, 0.0, breakdown.TotalScore, "空输入应产生确定的零分")
		})
	}
}

func TestScorePropagatesEmbedderError(t *testing.T) {
	engine := NewEngine(failEmbedder{})

	_, err := engine.Score(context.Background(), testResume, testJob, nil)
	assert.Error(t, err, "模型传输错误应上抛")
}

// 向量数量对不上是模型侧故障，不能和"文本无关"的零分混为一谈
func TestScoreRejectsMalformedEmbedderResponse(t *testing.T) {
	engine := NewEngine(shortEmbedder{})

	_, err := engine.Score(context.Background(), testResume, testJob, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "向量数量")
}

func TestScoreRoundedToTwoDecimals(t *testing.T) {
	engine := newTestEngine()

	breakdown, err := engine.Score(context.Background(), testResume, testJob, nil)
	require.NoError(t, err)

	for _, v := range []float64{breakdown.TotalScore, breakdown.SemanticMatch, breakdown.SkillsMatch, breakdown.ExperienceMatch} {
		assert.InDelta(t, v, float64(int(v*100+0.5))/100, 1e-9, "报告值应保留两位小数")
	}
}

func TestResolveWeightsDefaults(t *testing.T) {
	engine := newTestEngine()

	merged := engine.resolveWeights(nil)
	assert.Equal(t, 0.5, merged[WeightSemantic])
	assert.Equal(t, 0.3, merged[WeightSkills])
	assert.Equal(t, 0.2, merged[WeightExperience])
}
