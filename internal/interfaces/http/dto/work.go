package dto

import (
	"time"

	"novel-translate-api/internal/domain/entity"
)

// CreateWorkRequest 创建作品请求
type CreateWorkRequest struct {
	Title       string `json:"title" binding:"required"`
	Author      string `json:"author,omitempty"`
	Description string `json:"description,omitempty"`
	CoverURL    string `json:"cover_url,omitempty"`
	SourceURL   string `json:"source_url,omitempty"`
}

// UpdateWorkRequest 更新作品请求
type UpdateWorkRequest struct {
	Title       string `json:"title" binding:"required"`
	Author      string `json:"author,omitempty"`
	Description string `json:"description,omitempty"`
	CoverURL    string `json:"cover_url,omitempty"`
	SourceURL   string `json:"source_url,omitempty"`
}

// WorkResponse 作品响应
type WorkResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author,omitempty"`
	Description string    `json:"description,omitempty"`
	CoverURL    string    `json:"cover_url,omitempty"`
	SourceURL   string    `json:"source_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WorkListResponse 作品列表响应
type WorkListResponse struct {
	Works []*WorkResponse `json:"works"`
}

// ToWorkResponse 实体转响应
func ToWorkResponse(work *entity.Work) *WorkResponse {
	if work == nil {
		return nil
	}
	return &WorkResponse{
		ID:          work.ID,
		Title:       work.Title,
		Author:      work.Author,
		Description: work.Description,
		CoverURL:    work.CoverURL,
		SourceURL:   work.SourceURL,
		CreatedAt:   work.CreatedAt,
		UpdatedAt:   work.UpdatedAt,
	}
}

// ToWorkListResponse 实体列表转响应
func ToWorkListResponse(works []*entity.Work) *WorkListResponse {
	out := make([]*WorkResponse, 0, len(works))
	for _, w := range works {
		out = append(out, ToWorkResponse(w))
	}
	return &WorkListResponse{Works: out}
}
