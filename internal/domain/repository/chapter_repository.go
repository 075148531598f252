// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"novel-translate-api/internal/domain/entity"
)

// ChapterRepository 章节仓储接口
type ChapterRepository interface {
	// Create 创建章节
	Create(ctx context.Context, chapter *entity.Chapter) error

	// GetByID 根据 ID 获取章节
	GetByID(ctx context.Context, id string) (*entity.Chapter, error)

	// ListByWork 获取作品章节列表（按章节号排序）
	ListByWork(ctx context.Context, workID string, pagination Pagination) (*PagedResult[*entity.Chapter], error)

	// GetNextChapterNumber 获取作品的下一个章节号
	GetNextChapterNumber(ctx context.Context, workID string) (int, error)

	// UpdateStatus 更新章节翻译状态；translatedText 仅在 completed 时非空，
	// lastErr 仅在 failed 时非空
	UpdateStatus(ctx context.Context, id string, status entity.ChapterStatus, translatedText *string, lastErr string) error

	// UpdateProgress 更新阅读进度 (0-100)
	UpdateProgress(ctx context.Context, id string, progress int) error
}
