package handler

import (
	"github.com/gin-gonic/gin"

	"novel-translate-api/internal/application/catalog"
	"novel-translate-api/internal/interfaces/http/dto"
	"novel-translate-api/pkg/logger"
)

// GlossaryHandler 术语表处理器
type GlossaryHandler struct {
	catalog *catalog.Service
}

// NewGlossaryHandler 创建术语表处理器
func NewGlossaryHandler(catalogService *catalog.Service) *GlossaryHandler {
	return &GlossaryHandler{catalog: catalogService}
}

// CreateTerm 为作品添加术语
func (h *GlossaryHandler) CreateTerm(c *gin.Context) {
	ctx := c.Request.Context()
	workID := dto.BindWorkID(c)

	var req dto.CreateGlossaryTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	term, err := h.catalog.CreateGlossaryTerm(ctx, workID, req.SourceTerm, req.TargetTerm, req.Category, req.Notes)
	if err != nil {
		logger.Error(ctx, "failed to create glossary term", err)
		dto.AppError(c, err)
		return
	}

	dto.Created(c, dto.ToGlossaryTermResponse(term))
}

// ListTerms 获取作品术语表
func (h *GlossaryHandler) ListTerms(c *gin.Context) {
	ctx := c.Request.Context()
	workID := dto.BindWorkID(c)

	terms, err := h.catalog.ListGlossary(ctx, workID)
	if err != nil {
		logger.Error(ctx, "failed to list glossary", err)
		dto.AppError(c, err)
		return
	}

	dto.Success(c, dto.ToGlossaryListResponse(terms))
}

// DeleteTerm 删除术语
func (h *GlossaryHandler) DeleteTerm(c *gin.Context) {
	ctx := c.Request.Context()
	termID := dto.BindGlossaryID(c)

	if err := h.catalog.DeleteGlossaryTerm(ctx, termID); err != nil {
		logger.Error(ctx, "failed to delete glossary term", err)
		dto.AppError(c, err)
		return
	}

	dto.NoContent(c)
}
