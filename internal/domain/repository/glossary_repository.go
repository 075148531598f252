// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"novel-translate-api/internal/domain/entity"
)

// GlossaryRepository 术语表仓储接口
type GlossaryRepository interface {
	// Create 创建术语
	Create(ctx context.Context, term *entity.GlossaryTerm) error

	// GetByID 根据 ID 获取术语
	GetByID(ctx context.Context, id string) (*entity.GlossaryTerm, error)

	// ListByWork 获取作品的全部术语（按创建顺序）
	ListByWork(ctx context.Context, workID string) ([]*entity.GlossaryTerm, error)

	// Delete 删除术语
	Delete(ctx context.Context, id string) error
}
