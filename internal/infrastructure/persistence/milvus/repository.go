// Package milvus 提供 Milvus 向量数据库访问层实现
package milvus

import (
	"context"
	"fmt"

	"github.com/milvus-io/milvus-sdk-go/v2/entity"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Repository 向量检索仓储
type Repository struct {
	client *Client
}

// NewRepository 创建向量检索仓储
func NewRepository(client *Client) *Repository {
	return &Repository{client: client}
}

// SearchParams 检索参数
type SearchParams struct {
	WorkID      string
	QueryVector []float32
	TopK        int
}

// SearchResult 检索结果
type SearchResult struct {
	ID       string
	Score    float32
	Key      string
	Category string
	Content  string
}

// LoreVector 待写入的设定条目向量
type LoreVector struct {
	ID       string
	WorkID   string
	Category string
	Key      string
	Content  string
	Vector   []float32
}

// EnsureLoreCollection 确保设定条目集合、索引存在并已加载
func (r *Repository) EnsureLoreCollection(ctx context.Context) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.EnsureLoreCollection")
	defer span.End()

	has, err := r.client.HasCollection(ctx, CollectionLoreEntries)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if !has {
		if err := r.CreateCollection(ctx, LoreEntriesSchema()); err != nil {
			return err
		}
		if err := r.CreateIndex(ctx, CollectionLoreEntries); err != nil {
			return err
		}
	}

	return r.client.LoadCollection(ctx, CollectionLoreEntries)
}

// CreateCollection 创建集合
func (r *Repository) CreateCollection(ctx context.Context, schema *entity.Schema) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.CreateCollection",
		trace.WithAttributes(attribute.String("collection", schema.CollectionName)))
	defer span.End()

	collName := r.client.CollectionName(schema.CollectionName)
	schema.CollectionName = collName

	err := r.client.milvus.CreateCollection(ctx, schema, entity.DefaultShardNumber)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

// CreateIndex 创建 HNSW 索引
func (r *Repository) CreateIndex(ctx context.Context, collection string) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.CreateIndex",
		trace.WithAttributes(attribute.String("collection", collection)))
	defer span.End()

	collName := r.client.CollectionName(collection)

	idx, err := entity.NewIndexHNSW(
		MetricType,
		r.client.config.HNSWM,
		r.client.config.HNSWEfConstruction,
	)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create index: %w", err)
	}

	err = r.client.milvus.CreateIndex(ctx, collName, "vector", idx, false)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create index: %w", err)
	}

	return nil
}

// SearchLore 按作品检索设定条目
func (r *Repository) SearchLore(ctx context.Context, params *SearchParams) ([]*SearchResult, error) {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return nil, fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.SearchLore",
		trace.WithAttributes(
			attribute.String("work_id", params.WorkID),
			attribute.Int("top_k", params.TopK),
		))
	defer span.End()

	collName := r.client.CollectionName(CollectionLoreEntries)

	// 集合尚未创建（例如全新部署）时直接返回空结果
	if has, err := r.client.milvus.HasCollection(ctx, collName); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to check collection: %w", err)
	} else if !has {
		return []*SearchResult{}, nil
	}

	filter := fmt.Sprintf(`work_id == "%s"`, params.WorkID)

	sp, err := entity.NewIndexHNSWSearchParam(128)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create search param: %w", err)
	}

	results, err := r.client.milvus.Search(ctx,
		collName,
		nil,
		filter,
		[]string{"id", "key", "category", "content"},
		[]entity.Vector{entity.FloatVector(params.QueryVector)},
		"vector",
		MetricType,
		params.TopK,
		sp,
	)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var searchResults []*SearchResult
	for _, result := range results {
		for i := 0; i < result.ResultCount; i++ {
			sr := &SearchResult{
				Score: result.Scores[i],
			}

			if idCol, ok := result.Fields.GetColumn("id").(*entity.ColumnVarChar); ok {
				sr.ID = idCol.Data()[i]
			}
			if keyCol, ok := result.Fields.GetColumn("key").(*entity.ColumnVarChar); ok {
				sr.Key = keyCol.Data()[i]
			}
			if catCol, ok := result.Fields.GetColumn("category").(*entity.ColumnVarChar); ok {
				sr.Category = catCol.Data()[i]
			}
			if contentCol, ok := result.Fields.GetColumn("content").(*entity.ColumnVarChar); ok {
				sr.Content = contentCol.Data()[i]
			}

			searchResults = append(searchResults, sr)
		}
	}

	span.SetAttributes(attribute.Int("result_count", len(searchResults)))
	return searchResults, nil
}

// InsertLoreEntries 写入设定条目向量
func (r *Repository) InsertLoreEntries(ctx context.Context, entries []*LoreVector) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	if len(entries) == 0 {
		return nil
	}
	ctx, span := tracer.Start(ctx, "milvus.InsertLoreEntries",
		trace.WithAttributes(attribute.Int("entry_count", len(entries))))
	defer span.End()

	collName := r.client.CollectionName(CollectionLoreEntries)

	ids := make([]string, len(entries))
	vectors := make([][]float32, len(entries))
	workIDs := make([]string, len(entries))
	categories := make([]string, len(entries))
	keys := make([]string, len(entries))
	contents := make([]string, len(entries))

	for i, e := range entries {
		ids[i] = e.ID
		vectors[i] = e.Vector
		workIDs[i] = e.WorkID
		categories[i] = e.Category
		keys[i] = e.Key
		contents[i] = e.Content
	}

	idCol := entity.NewColumnVarChar("id", ids)
	vectorCol := entity.NewColumnFloatVector("vector", VectorDimension, vectors)
	workCol := entity.NewColumnVarChar("work_id", workIDs)
	categoryCol := entity.NewColumnVarChar("category", categories)
	keyCol := entity.NewColumnVarChar("key", keys)
	contentCol := entity.NewColumnVarChar("content", contents)

	_, err := r.client.milvus.Insert(ctx, collName, "",
		idCol, vectorCol, workCol, categoryCol, keyCol, contentCol)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to insert lore entries: %w", err)
	}

	return nil
}

// DeleteLoreEntry 删除指定设定条目
func (r *Repository) DeleteLoreEntry(ctx context.Context, id string) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.DeleteLoreEntry",
		trace.WithAttributes(attribute.String("lore_id", id)))
	defer span.End()

	collName := r.client.CollectionName(CollectionLoreEntries)

	filter := fmt.Sprintf(`id == "%s"`, id)
	if err := r.client.milvus.Delete(ctx, collName, "", filter); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete lore entry: %w", err)
	}
	return nil
}
