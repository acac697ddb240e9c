package handler

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"

	"cv-match-go/internal/constants"
	"cv-match-go/internal/extractor"
	"cv-match-go/internal/logger"
	"cv-match-go/internal/scorer"
	"cv-match-go/internal/storage"
	"cv-match-go/internal/storage/models"
	"cv-match-go/internal/types"
)

// CandidateHandler 候选人接口：上传打分、排名列表、CSV导出和状态维护
type CandidateHandler struct {
	storage   *storage.Storage
	engine    *scorer.Engine
	extractor *extractor.TextExtractor
}

// NewCandidateHandler 创建候选人处理器
func NewCandidateHandler(storage *storage.Storage, engine *scorer.Engine, extractor *extractor.TextExtractor) *CandidateHandler {
	return &CandidateHandler{
		storage:   storage,
		engine:    engine,
		extractor: extractor,
	}
}

// UploadResponse 简历上传打分响应
type UploadResponse struct {
	CandidateID string                `json:"candidate_id"`
	Duplicate   bool                  `json:"duplicate"`
	Info        *types.CandidateInfo  `json:"info,omitempty"`
	Breakdown   *types.ScoreBreakdown `json:"breakdown,omitempty"`
	Analysis    *types.AnalysisResult `json:"analysis,omitempty"`
}

// Upload 处理简历上传：提取文本 → 去重 → 提取信息 → 打分 → 分析 → 持久化
func (h *CandidateHandler) Upload(c context.Context, ctx *app.RequestContext) {
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

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开上传文件失败"})
		return
	}
	defer file.Close()

	fileBytes := make([]byte, 0, fileHeader.Size)
	buf := bytes.NewBuffer(fileBytes)
	if _, err := buf.ReadFrom(file); err != nil {
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "读取上传文件失败"})
		return
	}
	data := buf.Bytes()

	// 1. 文本提取
	doc, err := h.extractor.Extract(c, bytes.NewReader(data), fileHeader.Filename)
	if err != nil {
		if errors.Is(err, extractor.ErrUnsupportedFormat) {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": err.Error()})
			return
		}
		logger.Ctx(c).Error().Err(err).Str("filename", fileHeader.Filename).Msg("提取文档文本失败")
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "提取文档文本失败"})
		return
	}

	// 2. 文本MD5去重（Redis缺席时跳过）
	textMD5 := md5Hex(doc.Text)
	if h.storage.Redis != nil {
		exists, err := h.storage.Redis.CheckResumeMD5Exists(c, jobID, textMD5)
		if err != nil {
			logger.Ctx(c).Error().Err(err).Str("md5", textMD5).Msg("查询简历去重集合失败")
		} else if exists {
			logger.Ctx(c).Info().Str("md5", textMD5).Str("filename", fileHeader.Filename).Msg("检测到重复简历，跳过处理")
			ctx.JSON(consts.StatusOK, &UploadResponse{Duplicate: true})
			return
		}
	}

	// 3. 候选人信息提取（尽力而为）
	info := h.engine.ExtractCandidateInfo(doc.Text)

	// 4. 打分，岗位级权重覆盖默认权重
	weights := jobWeights(job)
	breakdown, err := h.engine.Score(c, doc.Text, job.Description, weights)
	if err != nil {
		logger.Ctx(c).Error().Err(err).Msg("打分失败")
		ctx.JSON(consts.StatusBadGateway, utils.H{"error": "打分失败，请稍后重试"})
		return
	}

	// 5. 差距分析
	analysis := h.engine.Analyze(doc.Text, job.Description)

	candidateID := uuid.NewString()

	// 6. 原始文件归档（MinIO缺席时跳过）
	var objectKey string
	if h.storage.MinIO != nil {
		objectKey = fmt.Sprintf("%s/%s%s", jobID, candidateID, strings.ToLower(filepath.Ext(fileHeader.Filename)))
		if _, err := h.storage.MinIO.UploadResumeFile(c, objectKey, bytes.NewReader(data), int64(len(data)), ""); err != nil {
			// 文件归档失败不阻断打分结果落库
			logger.Ctx(c).Error().Err(err).Str("object_key", objectKey).Msg("归档原始简历文件失败")
			objectKey = ""
		}
	}

	// 7. 持久化
	candidate := &models.Candidate{
		CandidateID:      candidateID,
		JobID:            jobID,
		Name:             info.Name,
		Email:            info.Email,
		Phone:            info.Phone,
		OriginalFilename: fileHeader.Filename,
		FileObjectKey:    objectKey,
		RawTextMD5:       textMD5,
		ResumeText:       doc.Text,
		Status:           constants.CandidateStatusNew,
		TotalScore:       breakdown.TotalScore,
		SemanticMatch:    breakdown.SemanticMatch,
		SkillsMatch:      breakdown.SkillsMatch,
		ExperienceMatch:  breakdown.ExperienceMatch,
	}
	if len(info.Education) > 0 {
		if eduJSON, err := json.Marshal(info.Education); err == nil {
			candidate.EducationJSON = eduJSON
		}
	}
	if analysisJSON, err := json.Marshal(analysis); err == nil {
		candidate.AnalysisJSON = analysisJSON
	}

	if err := h.storage.MySQL.CreateCandidate(c, candidate); err != nil {
		logger.Ctx(c).Error().Err(err).Msg("保存候选人失败")
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "保存候选人失败"})
		return
	}

	// 8. 记录去重MD5
	if h.storage.Redis != nil {
		if err := h.storage.Redis.RecordResumeMD5(c, jobID, textMD5); err != nil {
			logger.Ctx(c).Error().Err(err).Str("md5", textMD5).Msg("记录简历MD5失败")
		}
	}

	ctx.JSON(consts.StatusOK, &UploadResponse{
		CandidateID: candidateID,
		Info:        info,
		Breakdown:   breakdown,
		Analysis:    analysis,
	})
}

// List 列出岗位下候选人，按总分倒序
func (h *CandidateHandler) List(c context.Context, ctx *app.RequestContext) {
	jobID := ctx.Param("id")

	candidates, err := h.storage.MySQL.ListCandidatesByJob(c, jobID)
	if err != nil {
		logger.Ctx(c).Error().Err(err).Str("job_id", jobID).Msg("查询候选人列表失败")
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "查询候选人列表失败"})
		return
	}

	ctx.JSON(consts.StatusOK, utils.H{"candidates": candidates})
}

// DownloadURL 获取候选人原始简历文件的预签名下载地址
func (h *CandidateHandler) DownloadURL(c context.Context, ctx *app.RequestContext) {
	candidateID := ctx.Param("id")

	if h.storage.MinIO == nil {
		ctx.JSON(consts.StatusNotFound, utils.H{"error": "未启用对象存储"})
		return
	}

	candidate, err := h.storage.MySQL.GetCandidate(c, candidateID)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			ctx.JSON(consts.StatusNotFound, utils.H{"error": "候选人不存在"})
			return
		}
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "查询候选人失败"})
		return
	}
	if candidate.FileObjectKey == "" {
		ctx.JSON(consts.StatusNotFound, utils.H{"error": "该候选人没有归档的简历文件"})
		return
	}

	url, err := h.storage.MinIO.GetPresignedURL(c, candidate.FileObjectKey, 15*time.Minute)
	if err != nil {
		logger.Ctx(c).Error().Err(err).Str("object_key", candidate.FileObjectKey).Msg("生成下载地址失败")
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "生成下载地址失败"})
		return
	}

	ctx.JSON(consts.StatusOK, utils.H{"url": url})
}

// ExportCSV 导出岗位下候选人排名为CSV
func (h *CandidateHandler) ExportCSV(c context.Context, ctx *app.RequestContext) {
	jobID := ctx.Param("id")

	candidates, err := h.storage.MySQL.ListCandidatesByJob(c, jobID)
	if err != nil {
		logger.Ctx(c).Error().Err(err).Str("job_id", jobID).Msg("查询候选人列表失败")
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "查询候选人列表失败"})
		return
	}

	data, err := buildCandidatesCSV(candidates)
	if err != nil {
		logger.Ctx(c).Error().Err(err).Msg("生成CSV失败")
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "生成CSV失败"})
		return
	}

	ctx.Response.Header.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="job_%s_candidates.csv"`, jobID))
	ctx.Data(consts.StatusOK, "text/csv; charset=utf-8", data)
}

// UpdateStatusRequest 状态更新请求
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus 更新候选人处理状态
func (h *CandidateHandler) UpdateStatus(c context.Context, ctx *app.RequestContext) {
	candidateID := ctx.Param("id")

	var req UpdateStatusRequest
	if err := ctx.BindAndValidate(&req); err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败"})
		return
	}
	if !validCandidateStatus(req.Status) {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "无效的候选人状态"})
		return
	}

	if err := h.storage.MySQL.UpdateCandidateStatus(c, candidateID, req.Status); err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			ctx.JSON(consts.StatusNotFound, utils.H{"error": "候选人不存在"})
			return
		}
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "更新候选人状态失败"})
		return
	}

	ctx.JSON(consts.StatusOK, utils.H{"candidate_id": candidateID, "status": req.Status})
}

// UpdateNotesRequest 备注更新请求
type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

// UpdateNotes 更新候选人备注
func (h *CandidateHandler) UpdateNotes(c context.Context, ctx *app.RequestContext) {
	candidateID := ctx.Param("id")

	var req UpdateNotesRequest
	if err := ctx.BindAndValidate(&req); err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败"})
		return
	}

	if err := h.storage.MySQL.UpdateCandidateNotes(c, candidateID, req.Notes); err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			ctx.JSON(consts.StatusNotFound, utils.H{"error": "候选人不存在"})
			return
		}
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "更新候选人备注失败"})
		return
	}

	ctx.JSON(consts.StatusOK, utils.H{"candidate_id": candidateID})
}

// Delete 删除候选人，连带清理归档的原始简历文件
func (h *CandidateHandler) Delete(c context.Context, ctx *app.RequestContext) {
	candidateID := ctx.Param("id")

	var objectKey string
	if candidate, err := h.storage.MySQL.GetCandidate(c, candidateID); err == nil {
		objectKey = candidate.FileObjectKey
	}

	if err := h.storage.MySQL.DeleteCandidate(c, candidateID); err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			ctx.JSON(consts.StatusNotFound, utils.H{"error": "候选人不存在"})
			return
		}
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "删除候选人失败"})
		return
	}

	// 文件清理失败不影响删除结果
	if h.storage.MinIO != nil && objectKey != "" {
		if err := h.storage.MinIO.DeleteResumeFile(c, objectKey); err != nil {
			logger.Ctx(c).Error().Err(err).Str("object_key", objectKey).Msg("清理归档简历文件失败")
		}
	}

	ctx.JSON(consts.StatusOK, utils.H{"deleted": candidateID})
}

// jobWeights 解析岗位级权重覆盖，解析失败时退回默认权重
func jobWeights(job *models.Job) map[string]float64 {
	if len(job.WeightsJSON) == 0 {
		return nil
	}
	var weights map[string]float64
	if err := json.Unmarshal(job.WeightsJSON, &weights); err != nil {
		return nil
	}
	return weights
}

// buildCandidatesCSV 生成候选人排名CSV
// 列: 排名, 姓名, 邮箱, 电话, 总分, 命中技能, 缺失技能, 状态
func buildCandidatesCSV(candidates []models.Candidate) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"rank", "name", "email", "phone", "score", "matching_skills", "missing_skills", "status"}); err != nil {
		return nil, err
	}

	for i, candidate := range candidates {
		matching, missing := analysisSkills(candidate.AnalysisJSON)
		record := []string{
			strconv.Itoa(i + 1),
			candidate.Name,
			candidate.Email,
			candidate.Phone,
			strconv.FormatFloat(candidate.TotalScore, 'f', 2, 64),
			strings.Join(matching, "; "),
			strings.Join(missing, "; "),
			candidate.Status,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// analysisSkills 从持久化的分析快照里取命中/缺失技能
func analysisSkills(analysisJSON []byte) (matching, missing []string) {
	if len(analysisJSON) == 0 {
		return nil, nil
	}
	var analysis types.AnalysisResult
	if err := json.Unmarshal(analysisJSON, &analysis); err != nil {
		return nil, nil
	}
	return analysis.Matching, analysis.Missing
}

func validCandidateStatus(status string) bool {
	switch status {
	case constants.CandidateStatusNew, constants.CandidateStatusShortlisted, constants.CandidateStatusRejected:
		return true
	}
	return false
}

func md5Hex(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}
