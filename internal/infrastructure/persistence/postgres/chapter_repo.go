// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"novel-translate-api/internal/domain/entity"
	"novel-translate-api/internal/domain/repository"
)

// ChapterRepository 章节仓储实现
type ChapterRepository struct {
	client *Client
}

// NewChapterRepository 创建章节仓储
func NewChapterRepository(client *Client) *ChapterRepository {
	return &ChapterRepository{client: client}
}

// Create 创建章节
func (r *ChapterRepository) Create(ctx context.Context, chapter *entity.Chapter) error {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.Create")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Create(chapter).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create chapter: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取章节
func (r *ChapterRepository) GetByID(ctx context.Context, id string) (*entity.Chapter, error) {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.GetByID")
	defer span.End()

	var chapter entity.Chapter
	if err := r.client.db.WithContext(ctx).First(&chapter, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get chapter: %w", err)
	}
	return &chapter, nil
}

// ListByWork 获取作品章节列表（按章节号排序）
func (r *ChapterRepository) ListByWork(ctx context.Context, workID string, pagination repository.Pagination) (*repository.PagedResult[*entity.Chapter], error) {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.ListByWork")
	defer span.End()

	query := r.client.db.WithContext(ctx).Model(&entity.Chapter{}).Where("work_id = ?", workID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count chapters: %w", err)
	}

	var chapters []*entity.Chapter
	if err := query.Order("chapter_number ASC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&chapters).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}

	return repository.NewPagedResult(chapters, total, pagination), nil
}

// GetNextChapterNumber 获取作品的下一个章节号
func (r *ChapterRepository) GetNextChapterNumber(ctx context.Context, workID string) (int, error) {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.GetNextChapterNumber")
	defer span.End()

	var maxNumber int
	err := r.client.db.WithContext(ctx).Model(&entity.Chapter{}).
		Where("work_id = ?", workID).
		Select("COALESCE(MAX(chapter_number), 0)").
		Scan(&maxNumber).Error
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to get max chapter number: %w", err)
	}
	return maxNumber + 1, nil
}

// UpdateStatus 更新章节翻译状态
//
// translatedText 仅在 completed 时写入；failed 时只记录 lastErr，
// 不写入部分翻译结果。
func (r *ChapterRepository) UpdateStatus(ctx context.Context, id string, status entity.ChapterStatus, translatedText *string, lastErr string) error {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.UpdateStatus")
	defer span.End()

	updates := map[string]interface{}{
		"status":     status,
		"last_error": lastErr,
	}
	if translatedText != nil {
		updates["content_translated"] = *translatedText
	}

	result := r.client.db.WithContext(ctx).Model(&entity.Chapter{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		span.RecordError(result.Error)
		return fmt.Errorf("failed to update chapter status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("chapter not found: %s", id)
	}
	return nil
}

// UpdateProgress 更新阅读进度
func (r *ChapterRepository) UpdateProgress(ctx context.Context, id string, progress int) error {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.UpdateProgress")
	defer span.End()

	result := r.client.db.WithContext(ctx).Model(&entity.Chapter{}).
		Where("id = ?", id).
		Update("progress", progress)
	if result.Error != nil {
		span.RecordError(result.Error)
		return fmt.Errorf("failed to update chapter progress: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("chapter not found: %s", id)
	}
	return nil
}
