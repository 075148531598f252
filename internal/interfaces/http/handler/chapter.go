package handler

import (
	"github.com/gin-gonic/gin"

	"novel-translate-api/internal/application/catalog"
	"novel-translate-api/internal/application/translation"
	"novel-translate-api/internal/domain/entity"
	"novel-translate-api/internal/domain/repository"
	"novel-translate-api/internal/interfaces/http/dto"
	"novel-translate-api/pkg/logger"
)

// ChapterHandler 章节处理器
type ChapterHandler struct {
	catalog     *catalog.Service
	translation *translation.Service
}

// NewChapterHandler 创建章节处理器
func NewChapterHandler(catalogService *catalog.Service, translationService *translation.Service) *ChapterHandler {
	return &ChapterHandler{
		catalog:     catalogService,
		translation: translationService,
	}
}

// CreateChapter 创建章节
func (h *ChapterHandler) CreateChapter(c *gin.Context) {
	ctx := c.Request.Context()
	workID := dto.BindWorkID(c)

	var req dto.CreateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	chapter, err := h.catalog.CreateChapter(ctx, workID, req.ChapterNumber, req.Title, req.ContentRaw)
	if err != nil {
		logger.Error(ctx, "failed to create chapter", err)
		dto.AppError(c, err)
		return
	}

	dto.Created(c, dto.ToChapterResponse(chapter))
}

// GetChapter 获取章节详情（含译文）
func (h *ChapterHandler) GetChapter(c *gin.Context) {
	ctx := c.Request.Context()
	chapterID := dto.BindChapterID(c)

	chapter, err := h.catalog.GetChapter(ctx, chapterID)
	if err != nil {
		dto.AppError(c, err)
		return
	}

	dto.Success(c, dto.ToChapterResponse(chapter))
}

// ListChapters 获取作品章节列表
func (h *ChapterHandler) ListChapters(c *gin.Context) {
	ctx := c.Request.Context()
	workID := dto.BindWorkID(c)
	pageReq := dto.BindPage(c)

	result, err := h.catalog.ListChapters(ctx, workID, repository.NewPagination(pageReq.Page, pageReq.PageSize))
	if err != nil {
		logger.Error(ctx, "failed to list chapters", err)
		dto.AppError(c, err)
		return
	}

	resp := dto.ToChapterListResponse(result.Items)
	meta := dto.NewPageMeta(pageReq.Page, pageReq.PageSize, int(result.Total))
	dto.SuccessWithPage(c, resp, meta)
}

// TranslateChapter 受理章节翻译请求。
// 受理成功返回 202，实际翻译由后台 worker 异步完成；
// 章节已在翻译中时返回 409。
func (h *ChapterHandler) TranslateChapter(c *gin.Context) {
	ctx := c.Request.Context()
	chapterID := dto.BindChapterID(c)

	jobID, err := h.translation.EnqueueTranslation(ctx, chapterID)
	if err != nil {
		logger.Error(ctx, "failed to enqueue translation", err, "chapter_id", chapterID)
		dto.AppError(c, err)
		return
	}

	dto.Accepted(c, dto.TranslationJobResponse{
		JobID:     jobID,
		ChapterID: chapterID,
		Status:    string(entity.ChapterStatusPending),
	})
}

// UpdateProgress 更新阅读进度
func (h *ChapterHandler) UpdateProgress(c *gin.Context) {
	ctx := c.Request.Context()
	chapterID := dto.BindChapterID(c)

	var req dto.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Progress == nil {
		dto.BadRequest(c, "progress is required")
		return
	}

	if err := h.catalog.UpdateReadingProgress(ctx, chapterID, *req.Progress); err != nil {
		dto.AppError(c, err)
		return
	}

	dto.NoContent(c)
}
