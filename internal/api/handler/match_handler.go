package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"cv-match-go/internal/logger"
	"cv-match-go/internal/scorer"
)

// MatchHandler 无状态打分/分析接口，直接透传文本调用核心引擎
type MatchHandler struct {
	engine *scorer.Engine
}

// NewMatchHandler 创建匹配处理器
func NewMatchHandler(engine *scorer.Engine) *MatchHandler {
	return &MatchHandler{engine: engine}
}

// ScoreRequest 打分请求
type ScoreRequest struct {
	ResumeText string `json:"resume_text"`
	JobText    string `json:"job_text"`
	// Weights 可选；未知键忽略，缺失键回退默认值
	Weights map[string]float64 `json:"weights"`
}

// AnalyzeRequest 差距分析请求
type AnalyzeRequest struct {
	ResumeText string `json:"resume_text"`
	JobText    string `json:"job_text"`
}

// ExtractRequest 技能/候选人信息提取请求
type ExtractRequest struct {
	Text string `json:"text"`
}

// Score 计算简历对JD的加权匹配分
func (h *MatchHandler) Score(c context.Context, ctx *app.RequestContext) {
	var req ScoreRequest
	if err := ctx.BindAndValidate(&req); err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败"})
		return
	}

	breakdown, err := h.engine.Score(c, req.ResumeText, req.JobText, req.Weights)
	if err != nil {
		logger.Ctx(c).Error().Err(err).Msg("打分失败")
		ctx.JSON(consts.StatusBadGateway, utils.H{"error": "打分失败，请稍后重试"})
		return
	}

	ctx.JSON(consts.StatusOK, breakdown)
}

// Analyze 技能差距分析与面试问题生成
func (h *MatchHandler) Analyze(c context.Context, ctx *app.RequestContext) {
	var req AnalyzeRequest
	if err := ctx.BindAndValidate(&req); err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败"})
		return
	}

	ctx.JSON(consts.StatusOK, h.engine.Analyze(req.ResumeText, req.JobText))
}

// ExtractSkills 提取文本中命中的技能词
func (h *MatchHandler) ExtractSkills(c context.Context, ctx *app.RequestContext) {
	var req ExtractRequest
	if err := ctx.BindAndValidate(&req); err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败"})
		return
	}

	skills := h.engine.ExtractSkills(req.Text)
	if skills == nil {
		skills = []string{}
	}
	ctx.JSON(consts.StatusOK, utils.H{"skills": skills})
}

// ExtractCandidateInfo 启发式提取候选人联系方式/学历/姓名
func (h *MatchHandler) ExtractCandidateInfo(c context.Context, ctx *app.RequestContext) {
	var req ExtractRequest
	if err := ctx.BindAndValidate(&req); err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败"})
		return
	}

	ctx.JSON(consts.StatusOK, h.engine.ExtractCandidateInfo(req.Text))
}
