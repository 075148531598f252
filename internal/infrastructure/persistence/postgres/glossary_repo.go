// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"novel-translate-api/internal/domain/entity"
)

// GlossaryRepository 术语表仓储实现
type GlossaryRepository struct {
	client *Client
}

// NewGlossaryRepository 创建术语表仓储
func NewGlossaryRepository(client *Client) *GlossaryRepository {
	return &GlossaryRepository{client: client}
}

// Create 创建术语
func (r *GlossaryRepository) Create(ctx context.Context, term *entity.GlossaryTerm) error {
	ctx, span := tracer.Start(ctx, "postgres.GlossaryRepository.Create")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Create(term).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create glossary term: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取术语
func (r *GlossaryRepository) GetByID(ctx context.Context, id string) (*entity.GlossaryTerm, error) {
	ctx, span := tracer.Start(ctx, "postgres.GlossaryRepository.GetByID")
	defer span.End()

	var term entity.GlossaryTerm
	if err := r.client.db.WithContext(ctx).First(&term, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get glossary term: %w", err)
	}
	return &term, nil
}

// ListByWork 获取作品的全部术语（按创建顺序）
func (r *GlossaryRepository) ListByWork(ctx context.Context, workID string) ([]*entity.GlossaryTerm, error) {
	ctx, span := tracer.Start(ctx, "postgres.GlossaryRepository.ListByWork")
	defer span.End()

	var terms []*entity.GlossaryTerm
	if err := r.client.db.WithContext(ctx).
		Where("work_id = ?", workID).
		Order("created_at ASC").
		Find(&terms).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list glossary terms: %w", err)
	}
	return terms, nil
}

// Delete 删除术语
func (r *GlossaryRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.GlossaryRepository.Delete")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Delete(&entity.GlossaryTerm{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete glossary term: %w", err)
	}
	return nil
}
