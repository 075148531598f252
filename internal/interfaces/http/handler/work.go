package handler

import (
	"github.com/gin-gonic/gin"

	"novel-translate-api/internal/application/catalog"
	"novel-translate-api/internal/domain/repository"
	"novel-translate-api/internal/interfaces/http/dto"
	"novel-translate-api/pkg/logger"
)

// WorkHandler 作品处理器
type WorkHandler struct {
	catalog *catalog.Service
}

// NewWorkHandler 创建作品处理器
func NewWorkHandler(catalogService *catalog.Service) *WorkHandler {
	return &WorkHandler{catalog: catalogService}
}

// CreateWork 创建作品
func (h *WorkHandler) CreateWork(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	work, err := h.catalog.CreateWork(ctx, req.Title, req.Author, req.Description, req.CoverURL, req.SourceURL)
	if err != nil {
		logger.Error(ctx, "failed to create work", err)
		dto.AppError(c, err)
		return
	}

	dto.Created(c, dto.ToWorkResponse(work))
}

// GetWork 获取作品详情
func (h *WorkHandler) GetWork(c *gin.Context) {
	ctx := c.Request.Context()
	workID := dto.BindWorkID(c)

	work, err := h.catalog.GetWork(ctx, workID)
	if err != nil {
		dto.AppError(c, err)
		return
	}

	dto.Success(c, dto.ToWorkResponse(work))
}

// ListWorks 获取作品列表
func (h *WorkHandler) ListWorks(c *gin.Context) {
	ctx := c.Request.Context()
	pageReq := dto.BindPage(c)

	result, err := h.catalog.ListWorks(ctx, repository.NewPagination(pageReq.Page, pageReq.PageSize))
	if err != nil {
		logger.Error(ctx, "failed to list works", err)
		dto.AppError(c, err)
		return
	}

	resp := dto.ToWorkListResponse(result.Items)
	meta := dto.NewPageMeta(pageReq.Page, pageReq.PageSize, int(result.Total))
	dto.SuccessWithPage(c, resp, meta)
}

// UpdateWork 更新作品元数据
func (h *WorkHandler) UpdateWork(c *gin.Context) {
	ctx := c.Request.Context()
	workID := dto.BindWorkID(c)

	var req dto.UpdateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	work, err := h.catalog.GetWork(ctx, workID)
	if err != nil {
		dto.AppError(c, err)
		return
	}

	work.Title = req.Title
	work.Author = req.Author
	work.Description = req.Description
	work.CoverURL = req.CoverURL
	work.SourceURL = req.SourceURL

	if err := h.catalog.UpdateWork(ctx, work); err != nil {
		logger.Error(ctx, "failed to update work", err)
		dto.AppError(c, err)
		return
	}

	dto.Success(c, dto.ToWorkResponse(work))
}

// DeleteWork 删除作品
func (h *WorkHandler) DeleteWork(c *gin.Context) {
	ctx := c.Request.Context()
	workID := dto.BindWorkID(c)

	if err := h.catalog.DeleteWork(ctx, workID); err != nil {
		logger.Error(ctx, "failed to delete work", err)
		dto.AppError(c, err)
		return
	}

	dto.NoContent(c)
}
