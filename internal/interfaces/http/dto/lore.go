package dto

import (
	"time"

	"novel-translate-api/internal/domain/entity"
)

// CreateLoreEntryRequest 创建设定条目请求
type CreateLoreEntryRequest struct {
	Category string `json:"category,omitempty"`
	Key      string `json:"key" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// LoreEntryResponse 设定条目响应（不回传嵌入向量）
type LoreEntryResponse struct {
	ID        string    `json:"id"`
	WorkID    string    `json:"work_id"`
	Category  string    `json:"category,omitempty"`
	Key       string    `json:"key"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// LoreListResponse 设定条目列表响应
type LoreListResponse struct {
	Entries []*LoreEntryResponse `json:"entries"`
}

// ToLoreEntryResponse 实体转响应
func ToLoreEntryResponse(entry *entity.LoreEntry) *LoreEntryResponse {
	if entry == nil {
		return nil
	}
	return &LoreEntryResponse{
		ID:        entry.ID,
		WorkID:    entry.WorkID,
		Category:  entry.Category,
		Key:       entry.Key,
		Content:   entry.Content,
		CreatedAt: entry.CreatedAt,
	}
}

// ToLoreListResponse 实体列表转响应
func ToLoreListResponse(entries []*entity.LoreEntry) *LoreListResponse {
	out := make([]*LoreEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToLoreEntryResponse(e))
	}
	return &LoreListResponse{Entries: out}
}
