package handler

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"

	"cv-match-go/internal/constants"
	"cv-match-go/internal/logger"
	"cv-match-go/internal/storage"
	"cv-match-go/internal/storage/models"
)

// JobHandler 岗位的增删查接口
type JobHandler struct {
	storage *storage.Storage
}

// NewJobHandler 创建岗位处理器
func NewJobHandler(storage *storage.Storage) *JobHandler {
	return &JobHandler{storage: storage}
}

// CreateJobRequest 新建岗位请求
type CreateJobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	// Weights 岗位级打分权重覆盖，可选
	Weights map[string]float64 `json:"weights"`
}

// Create 新建岗位
func (h *JobHandler) Create(c context.Context, ctx *app.RequestContext) {
	var req CreateJobRequest
	if err := ctx.BindAndValidate(&req); err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败"})
		return
	}
	if req.Title == "" || req.Description == "" {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "岗位标题和描述不能为空"})
		return
	}

	job := &models.Job{
		JobID:       uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Status:      constants.JobStatusActive,
	}
	if len(req.Weights) > 0 {
		weightsJSON, err := json.Marshal(req.Weights)
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "权重序列化失败"})
			return
		}
		job.WeightsJSON = weightsJSON
	}

	if err := h.storage.MySQL.CreateJob(c, job); err != nil {
		logger.Ctx(c).Error().Err(err).Msg("创建岗位失败")
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "创建岗位失败"})
		return
	}

	ctx.JSON(consts.StatusOK, job)
}

// List 列出全部岗位
func (h *JobHandler) List(c context.Context, ctx *app.RequestContext) {
	jobs, err := h.storage.MySQL.ListJobs(c)
	if err != nil {
		logger.Ctx(c).Error().Err(err).Msg("查询岗位列表失败")
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "查询岗位列表失败"})
		return
	}
	ctx.JSON(consts.StatusOK, utils.H{"jobs": jobs})
}

// Get 查询单个岗位
func (h *JobHandler) Get(c context.Context, ctx *app.RequestContext) {
	jobID := ctx.Param("id")

	job, err := h.storage.MySQL.GetJob(c, jobID)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			ctx.JSON(consts.StatusNotFound, utils.H{"error": "岗位不存在"})
			return
		}
		logger.Ctx(c).Error().Err(err).Str("job_id", jobID).Msg("查询岗位失败")
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "查询岗位失败"})
		return
	}

	ctx.JSON(consts.StatusOK, job)
}

// Delete 删除岗位及其候选人
func (h *JobHandler) Delete(c context.Context, ctx *app.RequestContext) {
	jobID := ctx.Param("id")

	if err := h.storage.MySQL.DeleteJob(c, jobID); err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			ctx.JSON(consts.StatusNotFound, utils.H{"error": "岗位不存在"})
			return
		}
		logger.Ctx(c).Error().Err(err).Str("job_id", jobID).Msg("删除岗位失败")
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "删除岗位失败"})
		return
	}

	ctx.JSON(consts.StatusOK, utils.H{"deleted": jobID})
}
