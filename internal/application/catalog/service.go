// Package catalog 管理作品、章节、术语表与设定条目
package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"novel-translate-api/internal/application/retrieval"
	"novel-translate-api/internal/domain/entity"
	"novel-translate-api/internal/domain/repository"
	"novel-translate-api/internal/infrastructure/persistence/milvus"
	apperrors "novel-translate-api/pkg/errors"
	"novel-translate-api/pkg/logger"
)

var tracer = otel.Tracer("catalog")

// LoreIndexer 设定条目向量索引端口
type LoreIndexer interface {
	InsertLoreEntries(ctx context.Context, entries []*milvus.LoreVector) error
	DeleteLoreEntry(ctx context.Context, id string) error
}

// Service 作品目录服务
type Service struct {
	works    repository.WorkRepository
	chapters repository.ChapterRepository
	glossary repository.GlossaryRepository
	lore     repository.LoreRepository
	embedder retrieval.Embedder
	indexer  LoreIndexer
}

// NewService 创建作品目录服务
func NewService(
	works repository.WorkRepository,
	chapters repository.ChapterRepository,
	glossary repository.GlossaryRepository,
	lore repository.LoreRepository,
	embedder retrieval.Embedder,
	indexer LoreIndexer,
) *Service {
	return &Service{
		works:    works,
		chapters: chapters,
		glossary: glossary,
		lore:     lore,
		embedder: embedder,
		indexer:  indexer,
	}
}

// CreateWork 创建作品
func (s *Service) CreateWork(ctx context.Context, title, author, description, coverURL, sourceURL string) (*entity.Work, error) {
	work := entity.NewWork(title, author, sourceURL)
	work.Description = description
	work.CoverURL = coverURL

	if err := s.works.Create(ctx, work); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create work")
	}
	return work, nil
}

// GetWork 获取作品
func (s *Service) GetWork(ctx context.Context, id string) (*entity.Work, error) {
	work, err := s.works.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load work")
	}
	if work == nil {
		return nil, apperrors.ErrWorkNotFound
	}
	return work, nil
}

// ListWorks 分页获取作品列表
func (s *Service) ListWorks(ctx context.Context, pagination repository.Pagination) (*repository.PagedResult[*entity.Work], error) {
	result, err := s.works.List(ctx, pagination)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list works")
	}
	return result, nil
}

// UpdateWork 更新作品元数据
func (s *Service) UpdateWork(ctx context.Context, work *entity.Work) error {
	existing, err := s.works.GetByID(ctx, work.ID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load work")
	}
	if existing == nil {
		return apperrors.ErrWorkNotFound
	}

	if err := s.works.Update(ctx, work); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to update work")
	}
	return nil
}

// DeleteWork 删除作品
func (s *Service) DeleteWork(ctx context.Context, id string) error {
	if err := s.works.Delete(ctx, id); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to delete work")
	}
	return nil
}

// CreateChapter 为作品添加章节。
// 未指定章节号时顺延到最大章节号之后，未指定标题时生成 "Chapter N"。
func (s *Service) CreateChapter(ctx context.Context, workID string, chapterNumber int, title, contentRaw string) (*entity.Chapter, error) {
	ctx, span := tracer.Start(ctx, "catalog.CreateChapter",
		trace.WithAttributes(attribute.String("work_id", workID)))
	defer span.End()

	work, err := s.works.GetByID(ctx, workID)
	if err != nil {
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load work")
	}
	if work == nil {
		return nil, apperrors.ErrWorkNotFound
	}

	if chapterNumber <= 0 {
		next, err := s.chapters.GetNextChapterNumber(ctx, workID)
		if err != nil {
			span.RecordError(err)
			return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to determine chapter number")
		}
		chapterNumber = next
	}
	if title == "" {
		title = fmt.Sprintf("Chapter %d", chapterNumber)
	}

	chapter := entity.NewChapter(workID, chapterNumber, title, contentRaw)
	if err := s.chapters.Create(ctx, chapter); err != nil {
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create chapter")
	}
	return chapter, nil
}

// GetChapter 获取章节
func (s *Service) GetChapter(ctx context.Context, id string) (*entity.Chapter, error) {
	chapter, err := s.chapters.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load chapter")
	}
	if chapter == nil {
		return nil, apperrors.ErrChapterNotFound
	}
	return chapter, nil
}

// ListChapters 分页获取作品章节
func (s *Service) ListChapters(ctx context.Context, workID string, pagination repository.Pagination) (*repository.PagedResult[*entity.Chapter], error) {
	result, err := s.chapters.ListByWork(ctx, workID, pagination)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list chapters")
	}
	return result, nil
}

// UpdateReadingProgress 更新阅读进度。
// 进度是阅读端的独立字段，与翻译状态互不影响。
func (s *Service) UpdateReadingProgress(ctx context.Context, chapterID string, progress int) error {
	if progress < 0 || progress > 100 {
		return apperrors.New(apperrors.CodeInvalidParam, "progress must be between 0 and 100")
	}

	chapter, err := s.chapters.GetByID(ctx, chapterID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load chapter")
	}
	if chapter == nil {
		return apperrors.ErrChapterNotFound
	}

	if err := s.chapters.UpdateProgress(ctx, chapterID, progress); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to update progress")
	}
	return nil
}

// CreateGlossaryTerm 为作品添加术语
func (s *Service) CreateGlossaryTerm(ctx context.Context, workID, sourceTerm, targetTerm, category, notes string) (*entity.GlossaryTerm, error) {
	work, err := s.works.GetByID(ctx, workID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load work")
	}
	if work == nil {
		return nil, apperrors.ErrWorkNotFound
	}

	term := &entity.GlossaryTerm{
		WorkID:     workID,
		SourceTerm: sourceTerm,
		TargetTerm: targetTerm,
		Category:   category,
		Notes:      notes,
	}
	if err := s.glossary.Create(ctx, term); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create glossary term")
	}
	return term, nil
}

// ListGlossary 获取作品术语表
func (s *Service) ListGlossary(ctx context.Context, workID string) ([]*entity.GlossaryTerm, error) {
	terms, err := s.glossary.ListByWork(ctx, workID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list glossary")
	}
	return terms, nil
}

// DeleteGlossaryTerm 删除术语
func (s *Service) DeleteGlossaryTerm(ctx context.Context, id string) error {
	if err := s.glossary.Delete(ctx, id); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to delete glossary term")
	}
	return nil
}

// CreateLoreEntry 创建设定条目：创建时计算嵌入并写入关系库与向量索引。
// 嵌入一旦写入不再变更，修改设定应创建新条目。
func (s *Service) CreateLoreEntry(ctx context.Context, workID, category, key, content string) (*entity.LoreEntry, error) {
	ctx, span := tracer.Start(ctx, "catalog.CreateLoreEntry",
		trace.WithAttributes(attribute.String("work_id", workID)))
	defer span.End()

	work, err := s.works.GetByID(ctx, workID)
	if err != nil {
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load work")
	}
	if work == nil {
		return nil, apperrors.ErrWorkNotFound
	}

	vector, err := s.embedder.Embed(ctx, content)
	if err != nil {
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeEmbeddingFailed, "failed to embed lore content")
	}

	entry := &entity.LoreEntry{
		ID:        uuid.NewString(),
		WorkID:    workID,
		Category:  category,
		Key:       key,
		Content:   content,
		Embedding: pq.Float32Array(vector),
	}
	if err := s.lore.Create(ctx, entry); err != nil {
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create lore entry")
	}

	// 向量索引写失败不回滚关系库：条目仍然可见，只是暂时检索不到
	if err := s.indexer.InsertLoreEntries(ctx, []*milvus.LoreVector{{
		ID:       entry.ID,
		WorkID:   entry.WorkID,
		Category: entry.Category,
		Key:      entry.Key,
		Content:  entry.Content,
		Vector:   vector,
	}}); err != nil {
		span.RecordError(err)
		logger.FromContext(ctx).Warn("failed to index lore entry", "error", err, "lore_id", entry.ID)
	}

	return entry, nil
}

// ListLore 获取作品设定条目
func (s *Service) ListLore(ctx context.Context, workID string) ([]*entity.LoreEntry, error) {
	entries, err := s.lore.ListByWork(ctx, workID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list lore entries")
	}
	return entries, nil
}

// DeleteLoreEntry 删除设定条目及其向量索引
func (s *Service) DeleteLoreEntry(ctx context.Context, id string) error {
	if err := s.lore.Delete(ctx, id); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to delete lore entry")
	}
	if err := s.indexer.DeleteLoreEntry(ctx, id); err != nil {
		logger.FromContext(ctx).Warn("failed to remove lore entry from index", "error", err, "lore_id", id)
	}
	return nil
}
