// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/lib/pq"
)

// LoreEntry 世界观设定条目
//
// Embedding 在创建时计算并原样存储，之后不再变更；
// 需要重新嵌入时应插入新条目而不是修改旧条目。
type LoreEntry struct {
	ID       string `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkID   string `json:"work_id" gorm:"type:uuid;index;not null"`
	Category string `json:"category,omitempty" gorm:"type:varchar(100)"`
	Key      string `json:"key" gorm:"type:varchar(255);not null"`
	Content  string `json:"content" gorm:"type:text;not null"`
	// Embedding 与嵌入服务输出同维度的向量，随条目写入后只读
	Embedding pq.Float32Array `json:"-" gorm:"type:real[]"`
	CreatedAt time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (LoreEntry) TableName() string {
	return "lore_entries"
}
