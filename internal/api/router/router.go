package router

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"cv-match-go/internal/api/handler"
)

// RegisterRoutes 注册API路由
func RegisterRoutes(
	h *server.Hertz,
	jobHandler *handler.JobHandler,
	candidateHandler *handler.CandidateHandler,
	matchHandler *handler.MatchHandler,
) {
	api := h.Group("/api/v1")

	// 岗位管理
	api.POST("/jobs", jobHandler.Create)
	api.GET("/jobs", jobHandler.List)
	api.GET("/jobs/:id", jobHandler.Get)
	api.DELETE("/jobs/:id", jobHandler.Delete)

	// 候选人：上传打分、排名、导出
	api.POST("/jobs/:id/candidates", candidateHandler.Upload)
	api.GET("/jobs/:id/candidates", candidateHandler.List)
	api.GET("/jobs/:id/export", candidateHandler.ExportCSV)
	api.GET("/candidates/:id/download", candidateHandler.DownloadURL)
	api.PATCH("/candidates/:id/status", candidateHandler.UpdateStatus)
	api.PATCH("/candidates/:id/notes", candidateHandler.UpdateNotes)
	api.DELETE("/candidates/:id", candidateHandler.Delete)

	// 无状态打分/分析接口
	api.POST("/match/score", matchHandler.Score)
	api.POST("/match/analyze", matchHandler.Analyze)
	api.POST("/match/skills", matchHandler.ExtractSkills)
	api.POST("/match/candidate-info", matchHandler.ExtractCandidateInfo)

	// 健康检查
	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}
