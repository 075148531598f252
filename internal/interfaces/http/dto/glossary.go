package dto

import (
	"time"

	"novel-translate-api/internal/domain/entity"
)

// CreateGlossaryTermRequest 创建术语请求
type CreateGlossaryTermRequest struct {
	SourceTerm string `json:"source_term" binding:"required"`
	TargetTerm string `json:"target_term" binding:"required"`
	Category   string `json:"category,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// GlossaryTermResponse 术语响应
type GlossaryTermResponse struct {
	ID         string    `json:"id"`
	WorkID     string    `json:"work_id"`
	SourceTerm string    `json:"source_term"`
	TargetTerm string    `json:"target_term"`
	Category   string    `json:"category,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// GlossaryListResponse 术语列表响应
type GlossaryListResponse struct {
	Terms []*GlossaryTermResponse `json:"terms"`
}

// ToGlossaryTermResponse 实体转响应
func ToGlossaryTermResponse(term *entity.GlossaryTerm) *GlossaryTermResponse {
	if term == nil {
		return nil
	}
	return &GlossaryTermResponse{
		ID:         term.ID,
		WorkID:     term.WorkID,
		SourceTerm: term.SourceTerm,
		TargetTerm: term.TargetTerm,
		Category:   term.Category,
		Notes:      term.Notes,
		CreatedAt:  term.CreatedAt,
	}
}

// ToGlossaryListResponse 实体列表转响应
func ToGlossaryListResponse(terms []*entity.GlossaryTerm) *GlossaryListResponse {
	out := make([]*GlossaryTermResponse, 0, len(terms))
	for _, t := range terms {
		out = append(out, ToGlossaryTermResponse(t))
	}
	return &GlossaryListResponse{Terms: out}
}
