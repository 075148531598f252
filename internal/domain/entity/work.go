// Package entity 定义领域实体
package entity

import (
	"time"
)

// Work 翻译作品实体（一部小说）
type Work struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Author      string    `json:"author,omitempty" gorm:"type:varchar(255)"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	CoverURL    string    `json:"cover_url,omitempty" gorm:"type:text"`
	SourceURL   string    `json:"source_url,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Work) TableName() string {
	return "works"
}

// NewWork 创建新作品
func NewWork(title, author, sourceURL string) *Work {
	now := time.Now()
	return &Work{
		Title:     title,
		Author:    author,
		SourceURL: sourceURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
