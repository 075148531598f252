package dto

import (
	"time"

	"novel-translate-api/internal/domain/entity"
)

// CreateChapterRequest 创建章节请求。
// chapter_number 缺省时顺延作品现有最大章节号。
type CreateChapterRequest struct {
	ChapterNumber int    `json:"chapter_number,omitempty"`
	Title         string `json:"title,omitempty"`
	ContentRaw    string `json:"content_raw" binding:"required"`
}

// UpdateProgressRequest 更新阅读进度请求
type UpdateProgressRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

// ChapterResponse 章节响应
type ChapterResponse struct {
	ID                string    `json:"id"`
	WorkID            string    `json:"work_id"`
	ChapterNumber     int       `json:"chapter_number"`
	Title             string    `json:"title,omitempty"`
	ContentRaw        string    `json:"content_raw"`
	ContentTranslated *string   `json:"content_translated"`
	Status            string    `json:"status"`
	Progress          int       `json:"progress"`
	LastError         string    `json:"last_error,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ChapterSummaryResponse 章节摘要（列表用，不携带正文）
type ChapterSummaryResponse struct {
	ID            string    `json:"id"`
	WorkID        string    `json:"work_id"`
	ChapterNumber int       `json:"chapter_number"`
	Title         string    `json:"title,omitempty"`
	Status        string    `json:"status"`
	Progress      int       `json:"progress"`
	CreatedAt     time.Time `json:"created_at"`
}

// ChapterListResponse 章节列表响应
type ChapterListResponse struct {
	Chapters []*ChapterSummaryResponse `json:"chapters"`
}

// ToChapterResponse 实体转响应
func ToChapterResponse(chapter *entity.Chapter) *ChapterResponse {
	if chapter == nil {
		return nil
	}
	return &ChapterResponse{
		ID:                chapter.ID,
		WorkID:            chapter.WorkID,
		ChapterNumber:     chapter.ChapterNumber,
		Title:             chapter.Title,
		ContentRaw:        chapter.ContentRaw,
		ContentTranslated: chapter.ContentTranslated,
		Status:            string(chapter.Status),
		Progress:          chapter.Progress,
		LastError:         chapter.LastError,
		CreatedAt:         chapter.CreatedAt,
		UpdatedAt:         chapter.UpdatedAt,
	}
}

// ToChapterListResponse 实体列表转摘要响应
func ToChapterListResponse(chapters []*entity.Chapter) *ChapterListResponse {
	out := make([]*ChapterSummaryResponse, 0, len(chapters))
	for _, ch := range chapters {
		if ch == nil {
			continue
		}
		out = append(out, &ChapterSummaryResponse{
			ID:            ch.ID,
			WorkID:        ch.WorkID,
			ChapterNumber: ch.ChapterNumber,
			Title:         ch.Title,
			Status:        string(ch.Status),
			Progress:      ch.Progress,
			CreatedAt:     ch.CreatedAt,
		})
	}
	return &ChapterListResponse{Chapters: out}
}
