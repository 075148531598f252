// Package retrieval 提供基于向量相似度的设定检索
package retrieval

import (
	"context"
	"strings"

	"novel-translate-api/internal/infrastructure/persistence/milvus"
	"novel-translate-api/pkg/logger"
	"novel-translate-api/pkg/metrics"
)

const (
	// defaultLimit 默认返回条目数
	defaultLimit = 5
	// maxLimit 单次检索上限
	maxLimit = 50
	// queryPrefixLength 嵌入前仅取正文前缀，足以代表章节主题
	queryPrefixLength = 500
)

// Embedder 嵌入服务端口
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// LoreSearcher 向量检索端口
type LoreSearcher interface {
	SearchLore(ctx context.Context, params *milvus.SearchParams) ([]*milvus.SearchResult, error)
}

// LoreItem 检索结果条目（按相似度从高到低排列）
type LoreItem struct {
	ID       string
	Category string
	Key      string
	Content  string
	Score    float32
}

// Engine 设定检索引擎。
//
// 检索失败不向上传播：嵌入服务或向量库出错时降级为空结果，
// 翻译流水线照常进行，只是提示词里没有设定上下文。
type Engine struct {
	embedder Embedder
	searcher LoreSearcher
}

// NewEngine 创建检索引擎
func NewEngine(embedder Embedder, searcher LoreSearcher) *Engine {
	return &Engine{
		embedder: embedder,
		searcher: searcher,
	}
}

// Enabled 检索是否可用
func (e *Engine) Enabled() bool {
	return e != nil && e.embedder != nil && e.searcher != nil
}

// RetrieveLore 检索与查询文本最相关的设定条目。
// 任何失败都降级为空结果并记录告警。
func (e *Engine) RetrieveLore(ctx context.Context, workID, queryText string, limit int) []LoreItem {
	log := logger.FromContext(ctx)

	if !e.Enabled() {
		return nil
	}

	workID = strings.TrimSpace(workID)
	queryText = strings.TrimSpace(queryText)
	if workID == "" || queryText == "" {
		return nil
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	snippet := truncateQuery(queryText)

	vector, err := e.embedder.Embed(ctx, snippet)
	if err != nil {
		log.Warn("lore retrieval degraded: embedding failed", "error", err, "work_id", workID)
		metrics.RetrievalDegradedTotal.Inc()
		return nil
	}

	results, err := e.searcher.SearchLore(ctx, &milvus.SearchParams{
		WorkID:      workID,
		QueryVector: vector,
		TopK:        limit,
	})
	if err != nil {
		log.Warn("lore retrieval degraded: vector search failed", "error", err, "work_id", workID)
		metrics.RetrievalDegradedTotal.Inc()
		return nil
	}

	items := make([]LoreItem, 0, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		items = append(items, LoreItem{
			ID:       r.ID,
			Category: r.Category,
			Key:      r.Key,
			Content:  r.Content,
			Score:    r.Score,
		})
	}
	return items
}

// truncateQuery 截取查询文本前缀，按 rune 计数避免截断多字节字符
func truncateQuery(text string) string {
	runes := []rune(text)
	if len(runes) <= queryPrefixLength {
		return text
	}
	return string(runes[:queryPrefixLength])
}
