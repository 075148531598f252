// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"novel-translate-api/internal/domain/entity"
	"novel-translate-api/internal/domain/repository"
)

// WorkRepository 作品仓储实现
type WorkRepository struct {
	client *Client
}

// NewWorkRepository 创建作品仓储
func NewWorkRepository(client *Client) *WorkRepository {
	return &WorkRepository{client: client}
}

// Create 创建作品
func (r *WorkRepository) Create(ctx context.Context, work *entity.Work) error {
	ctx, span := tracer.Start(ctx, "postgres.WorkRepository.Create")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Create(work).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create work: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取作品
func (r *WorkRepository) GetByID(ctx context.Context, id string) (*entity.Work, error) {
	ctx, span := tracer.Start(ctx, "postgres.WorkRepository.GetByID")
	defer span.End()

	var work entity.Work
	if err := r.client.db.WithContext(ctx).First(&work, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get work: %w", err)
	}
	return &work, nil
}

// Update 更新作品
func (r *WorkRepository) Update(ctx context.Context, work *entity.Work) error {
	ctx, span := tracer.Start(ctx, "postgres.WorkRepository.Update")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Save(work).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update work: %w", err)
	}
	return nil
}

// Delete 删除作品
func (r *WorkRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.WorkRepository.Delete")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Delete(&entity.Work{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete work: %w", err)
	}
	return nil
}

// List 获取作品列表
func (r *WorkRepository) List(ctx context.Context, pagination repository.Pagination) (*repository.PagedResult[*entity.Work], error) {
	ctx, span := tracer.Start(ctx, "postgres.WorkRepository.List")
	defer span.End()

	query := r.client.db.WithContext(ctx).Model(&entity.Work{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count works: %w", err)
	}

	var works []*entity.Work
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&works).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list works: %w", err)
	}

	return repository.NewPagedResult(works, total, pagination), nil
}
