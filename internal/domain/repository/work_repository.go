// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"novel-translate-api/internal/domain/entity"
)

// WorkRepository 作品仓储接口
type WorkRepository interface {
	// Create 创建作品
	Create(ctx context.Context, work *entity.Work) error

	// GetByID 根据 ID 获取作品
	GetByID(ctx context.Context, id string) (*entity.Work, error)

	// Update 更新作品
	Update(ctx context.Context, work *entity.Work) error

	// Delete 删除作品
	Delete(ctx context.Context, id string) error

	// List 获取作品列表
	List(ctx context.Context, pagination Pagination) (*PagedResult[*entity.Work], error)
}
