package handler

import (
	"github.com/gin-gonic/gin"

	"novel-translate-api/internal/application/catalog"
	"novel-translate-api/internal/interfaces/http/dto"
	"novel-translate-api/pkg/logger"
)

// LoreHandler 设定条目处理器
type LoreHandler struct {
	catalog *catalog.Service
}

// NewLoreHandler 创建设定条目处理器
func NewLoreHandler(catalogService *catalog.Service) *LoreHandler {
	return &LoreHandler{catalog: catalogService}
}

// CreateEntry 创建设定条目（创建时计算并存储嵌入）
func (h *LoreHandler) CreateEntry(c *gin.Context) {
	ctx := c.Request.Context()
	workID := dto.BindWorkID(c)

	var req dto.CreateLoreEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	entry, err := h.catalog.CreateLoreEntry(ctx, workID, req.Category, req.Key, req.Content)
	if err != nil {
		logger.Error(ctx, "failed to create lore entry", err)
		dto.AppError(c, err)
		return
	}

	dto.Created(c, dto.ToLoreEntryResponse(entry))
}

// ListEntries 获取作品设定条目
func (h *LoreHandler) ListEntries(c *gin.Context) {
	ctx := c.Request.Context()
	workID := dto.BindWorkID(c)

	entries, err := h.catalog.ListLore(ctx, workID)
	if err != nil {
		logger.Error(ctx, "failed to list lore entries", err)
		dto.AppError(c, err)
		return
	}

	dto.Success(c, dto.ToLoreListResponse(entries))
}

// DeleteEntry 删除设定条目
func (h *LoreHandler) DeleteEntry(c *gin.Context) {
	ctx := c.Request.Context()
	loreID := dto.BindLoreID(c)

	if err := h.catalog.DeleteLoreEntry(ctx, loreID); err != nil {
		logger.Error(ctx, "failed to delete lore entry", err)
		dto.AppError(c, err)
		return
	}

	dto.NoContent(c)
}
