// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"novel-translate-api/internal/domain/entity"
)

// LoreRepository 世界观设定仓储接口
type LoreRepository interface {
	// Create 创建设定条目（embedding 随条目一并写入）
	Create(ctx context.Context, entry *entity.LoreEntry) error

	// GetByID 根据 ID 获取设定条目
	GetByID(ctx context.Context, id string) (*entity.LoreEntry, error)

	// ListByWork 获取作品的全部设定条目（按创建顺序）
	ListByWork(ctx context.Context, workID string) ([]*entity.LoreEntry, error)

	// GetByIDs 按 ID 集合批量获取设定条目
	GetByIDs(ctx context.Context, ids []string) ([]*entity.LoreEntry, error)

	// Delete 删除设定条目
	Delete(ctx context.Context, id string) error
}
