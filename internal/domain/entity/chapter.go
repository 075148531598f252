// Package entity 定义领域实体
package entity

import (
	"time"
)

// ChapterStatus 章节翻译状态
//
// 状态机：pending -> translating -> completed | failed。
// 终态章节可以通过新的翻译请求重新进入 translating。
type ChapterStatus string

const (
	ChapterStatusPending     ChapterStatus = "pending"
	ChapterStatusTranslating ChapterStatus = "translating"
	ChapterStatusCompleted   ChapterStatus = "completed"
	ChapterStatusFailed      ChapterStatus = "failed"
)

// Chapter 章节实体
type Chapter struct {
	ID                string        `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkID            string        `json:"work_id" gorm:"type:uuid;not null;uniqueIndex:idx_work_chapter,priority:1"`
	ChapterNumber     int           `json:"chapter_number" gorm:"not null;uniqueIndex:idx_work_chapter,priority:2"`
	Title             string        `json:"title,omitempty" gorm:"type:varchar(255)"`
	ContentRaw        string        `json:"content_raw" gorm:"type:text;not null"`
	ContentTranslated *string       `json:"content_translated" gorm:"type:text"`
	Status            ChapterStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	// Progress 阅读进度 (0-100)，由阅读端维护，与翻译流水线无关
	Progress  int       `json:"progress" gorm:"default:0"`
	LastError string    `json:"last_error,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Chapter) TableName() string {
	return "chapters"
}

// NewChapter 创建新章节
func NewChapter(workID string, chapterNumber int, title, contentRaw string) *Chapter {
	now := time.Now()
	return &Chapter{
		WorkID:        workID,
		ChapterNumber: chapterNumber,
		Title:         title,
		ContentRaw:    contentRaw,
		Status:        ChapterStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsTerminal 判断当前状态是否为终态
func (s ChapterStatus) IsTerminal() bool {
	return s == ChapterStatusCompleted || s == ChapterStatusFailed
}

// Valid 判断状态取值是否合法
func (s ChapterStatus) Valid() bool {
	switch s {
	case ChapterStatusPending, ChapterStatusTranslating, ChapterStatusCompleted, ChapterStatusFailed:
		return true
	}
	return false
}
