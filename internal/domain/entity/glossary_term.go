// Package entity 定义领域实体
package entity

import (
	"time"
)

// GlossaryTerm 术语表条目
//
// (source, target) 为固定映射，提示词要求模型严格沿用；
// 匹配采用区分大小写的字面子串匹配，不做模糊归一化。
type GlossaryTerm struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkID     string    `json:"work_id" gorm:"type:uuid;index;not null"`
	SourceTerm string    `json:"source_term" gorm:"type:varchar(255);not null"`
	TargetTerm string    `json:"target_term" gorm:"type:varchar(255);not null"`
	Category   string    `json:"category,omitempty" gorm:"type:varchar(100)"`
	Notes      string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (GlossaryTerm) TableName() string {
	return "glossary_terms"
}
