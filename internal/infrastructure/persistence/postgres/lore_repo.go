// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"novel-translate-api/internal/domain/entity"
)

// LoreRepository 世界观设定仓储实现
type LoreRepository struct {
	client *Client
}

// NewLoreRepository 创建世界观设定仓储
func NewLoreRepository(client *Client) *LoreRepository {
	return &LoreRepository{client: client}
}

// Create 创建设定条目
func (r *LoreRepository) Create(ctx context.Context, entry *entity.LoreEntry) error {
	ctx, span := tracer.Start(ctx, "postgres.LoreRepository.Create")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Create(entry).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create lore entry: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取设定条目
func (r *LoreRepository) GetByID(ctx context.Context, id string) (*entity.LoreEntry, error) {
	ctx, span := tracer.Start(ctx, "postgres.LoreRepository.GetByID")
	defer span.End()

	var entry entity.LoreEntry
	if err := r.client.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get lore entry: %w", err)
	}
	return &entry, nil
}

// ListByWork 获取作品的全部设定条目（按创建顺序）
func (r *LoreRepository) ListByWork(ctx context.Context, workID string) ([]*entity.LoreEntry, error) {
	ctx, span := tracer.Start(ctx, "postgres.LoreRepository.ListByWork")
	defer span.End()

	var entries []*entity.LoreEntry
	if err := r.client.db.WithContext(ctx).
		Where("work_id = ?", workID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list lore entries: %w", err)
	}
	return entries, nil
}

// GetByIDs 按 ID 集合批量获取设定条目
func (r *LoreRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.LoreEntry, error) {
	ctx, span := tracer.Start(ctx, "postgres.LoreRepository.GetByIDs")
	defer span.End()

	if len(ids) == 0 {
		return nil, nil
	}

	var entries []*entity.LoreEntry
	if err := r.client.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&entries).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get lore entries: %w", err)
	}
	return entries, nil
}

// Delete 删除设定条目
func (r *LoreRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.LoreRepository.Delete")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Delete(&entity.LoreEntry{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete lore entry: %w", err)
	}
	return nil
}
