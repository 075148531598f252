// Package milvus 提供 Milvus 向量数据库访问层实现
package milvus

import (
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
)

const (
	// CollectionLoreEntries 设定条目集合
	CollectionLoreEntries = "lore_entries"

	// VectorDimension 向量维度（nomic-embed-text 输出 768 维）
	VectorDimension = 768
)

// MetricType 相似度度量。检索语义依赖余弦相似度，索引与搜索必须一致。
const MetricType = entity.COSINE

// LoreEntriesSchema 设定条目 Collection Schema
func LoreEntriesSchema() *entity.Schema {
	return &entity.Schema{
		CollectionName: CollectionLoreEntries,
		Description:    "Work lore entries for semantic retrieval",
		Fields: []*entity.Field{
			{
				Name:       "id",
				DataType:   entity.FieldTypeVarChar,
				PrimaryKey: true,
				AutoID:     false,
				TypeParams: map[string]string{
					"max_length": "64",
				},
			},
			{
				Name:     "vector",
				DataType: entity.FieldTypeFloatVector,
				TypeParams: map[string]string{
					"dim": "768",
				},
			},
			{
				Name:     "work_id",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "64",
				},
			},
			{
				Name:     "category",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "32",
				},
			},
			{
				Name:     "key",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "256",
				},
			},
			{
				Name:     "content",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "65535",
				},
			},
		},
	}
}
