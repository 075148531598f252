package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novel-translate-api/internal/domain/entity"
	"novel-translate-api/internal/domain/repository"
	"novel-translate-api/internal/infrastructure/persistence/milvus"
	apperrors "novel-translate-api/pkg/errors"
)

type fakeWorkRepo struct {
	work *entity.Work
}

func (f *fakeWorkRepo) Create(_ context.Context, _ *entity.Work) error { return nil }

func (f *fakeWorkRepo) GetByID(_ context.Context, _ string) (*entity.Work, error) {
	return f.work, nil
}

func (f *fakeWorkRepo) Update(_ context.Context, _ *entity.Work) error { return nil }
func (f *fakeWorkRepo) Delete(_ context.Context, _ string) error       { return nil }

func (f *fakeWorkRepo) List(_ context.Context, _ repository.Pagination) (*repository.PagedResult[*entity.Work], error) {
	return nil, nil
}

type fakeChapterRepo struct {
	chapter    *entity.Chapter
	nextNumber int
	created    []*entity.Chapter
	progress   []int
}

func (f *fakeChapterRepo) Create(_ context.Context, c *entity.Chapter) error {
	f.created = append(f.created, c)
	return nil
}

func (f *fakeChapterRepo) GetByID(_ context.Context, _ string) (*entity.Chapter, error) {
	return f.chapter, nil
}

func (f *fakeChapterRepo) ListByWork(_ context.Context, _ string, _ repository.Pagination) (*repository.PagedResult[*entity.Chapter], error) {
	return nil, nil
}

func (f *fakeChapterRepo) GetNextChapterNumber(_ context.Context, _ string) (int, error) {
	return f.nextNumber, nil
}

func (f *fakeChapterRepo) UpdateStatus(_ context.Context, _ string, _ entity.ChapterStatus, _ *string, _ string) error {
	return nil
}

func (f *fakeChapterRepo) UpdateProgress(_ context.Context, _ string, progress int) error {
	f.progress = append(f.progress, progress)
	return nil
}

type fakeLoreRepo struct {
	created []*entity.LoreEntry
	deleted []string
}

func (f *fakeLoreRepo) Create(_ context.Context, e *entity.LoreEntry) error {
	f.created = append(f.created, e)
	return nil
}

func (f *fakeLoreRepo) GetByID(_ context.Context, _ string) (*entity.LoreEntry, error) {
	return nil, nil
}

func (f *fakeLoreRepo) ListByWork(_ context.Context, _ string) ([]*entity.LoreEntry, error) {
	return nil, nil
}

func (f *fakeLoreRepo) GetByIDs(_ context.Context, _ []string) ([]*entity.LoreEntry, error) {
	return nil, nil
}

func (f *fakeLoreRepo) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeGlossaryRepo struct{}

func (f *fakeGlossaryRepo) Create(_ context.Context, _ *entity.GlossaryTerm) error { return nil }

func (f *fakeGlossaryRepo) GetByID(_ context.Context, _ string) (*entity.GlossaryTerm, error) {
	return nil, nil
}

func (f *fakeGlossaryRepo) ListByWork(_ context.Context, _ string) ([]*entity.GlossaryTerm, error) {
	return nil, nil
}

func (f *fakeGlossaryRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return f.vector, f.err
}

type fakeIndexer struct {
	inserted []*milvus.LoreVector
	deleted  []string
	err      error
}

func (f *fakeIndexer) InsertLoreEntries(_ context.Context, entries []*milvus.LoreVector) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, entries...)
	return nil
}

func (f *fakeIndexer) DeleteLoreEntry(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func testWork() *entity.Work {
	return &entity.Work{ID: "work-1", Title: "斗破苍穹"}
}

func newTestService(works *fakeWorkRepo, chapters *fakeChapterRepo, lore *fakeLoreRepo, embedder *fakeEmbedder, indexer *fakeIndexer) *Service {
	return NewService(works, chapters, &fakeGlossaryRepo{}, lore, embedder, indexer)
}

func TestCreateChapter_AutoNumbersAndTitles(t *testing.T) {
	chapters := &fakeChapterRepo{nextNumber: 4}
	svc := newTestService(&fakeWorkRepo{work: testWork()}, chapters, &fakeLoreRepo{}, &fakeEmbedder{}, &fakeIndexer{})

	chapter, err := svc.CreateChapter(context.Background(), "work-1", 0, "", "正文")
	require.NoError(t, err)

	assert.Equal(t, 4, chapter.ChapterNumber)
	assert.Equal(t, "Chapter 4", chapter.Title)
	assert.Equal(t, entity.ChapterStatusPending, chapter.Status)
	require.Len(t, chapters.created, 1)
}

func TestCreateChapter_ExplicitNumberAndTitle(t *testing.T) {
	chapters := &fakeChapterRepo{nextNumber: 99}
	svc := newTestService(&fakeWorkRepo{work: testWork()}, chapters, &fakeLoreRepo{}, &fakeEmbedder{}, &fakeIndexer{})

	chapter, err := svc.CreateChapter(context.Background(), "work-1", 7, "第七章", "正文")
	require.NoError(t, err)

	assert.Equal(t, 7, chapter.ChapterNumber)
	assert.Equal(t, "第七章", chapter.Title)
}

func TestCreateChapter_WorkNotFound(t *testing.T) {
	svc := newTestService(&fakeWorkRepo{work: nil}, &fakeChapterRepo{}, &fakeLoreRepo{}, &fakeEmbedder{}, &fakeIndexer{})

	_, err := svc.CreateChapter(context.Background(), "missing", 1, "", "正文")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeWorkNotFound, apperrors.AsAppError(err).Code)
}

func TestUpdateReadingProgress_Validation(t *testing.T) {
	chapters := &fakeChapterRepo{chapter: &entity.Chapter{ID: "chapter-1"}}
	svc := newTestService(&fakeWorkRepo{work: testWork()}, chapters, &fakeLoreRepo{}, &fakeEmbedder{}, &fakeIndexer{})

	for _, progress := range []int{-1, 101} {
		err := svc.UpdateReadingProgress(context.Background(), "chapter-1", progress)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeInvalidParam, apperrors.AsAppError(err).Code)
	}

	require.NoError(t, svc.UpdateReadingProgress(context.Background(), "chapter-1", 42))
	assert.Equal(t, []int{42}, chapters.progress)
}

func TestCreateLoreEntry_EmbedsAndIndexes(t *testing.T) {
	lore := &fakeLoreRepo{}
	indexer := &fakeIndexer{}
	embedder := &fakeEmbedder{vector: []float32{0.1, 0.2, 0.3}}
	svc := newTestService(&fakeWorkRepo{work: testWork()}, &fakeChapterRepo{}, lore, embedder, indexer)

	entry, err := svc.CreateLoreEntry(context.Background(), "work-1", "character", "萧炎", "主角，炼药师。")
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Len(t, entry.Embedding, 3)

	require.Len(t, lore.created, 1)
	require.Len(t, indexer.inserted, 1)
	assert.Equal(t, entry.ID, indexer.inserted[0].ID)
	assert.Equal(t, "萧炎", indexer.inserted[0].Key)
}

func TestCreateLoreEntry_EmbeddingFailure(t *testing.T) {
	lore := &fakeLoreRepo{}
	svc := newTestService(&fakeWorkRepo{work: testWork()}, &fakeChapterRepo{}, lore, &fakeEmbedder{err: errors.New("service down")}, &fakeIndexer{})

	_, err := svc.CreateLoreEntry(context.Background(), "work-1", "character", "萧炎", "主角。")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeEmbeddingFailed, apperrors.AsAppError(err).Code)
	assert.Empty(t, lore.created)
}

func TestCreateLoreEntry_IndexFailureDoesNotFail(t *testing.T) {
	lore := &fakeLoreRepo{}
	svc := newTestService(&fakeWorkRepo{work: testWork()}, &fakeChapterRepo{}, lore, &fakeEmbedder{vector: []float32{0.1}}, &fakeIndexer{err: errors.New("milvus down")})

	entry, err := svc.CreateLoreEntry(context.Background(), "work-1", "faction", "魂殿", "反派势力。")
	require.NoError(t, err)
	assert.NotNil(t, entry)
	require.Len(t, lore.created, 1)
}

func TestDeleteLoreEntry_RemovesFromIndex(t *testing.T) {
	lore := &fakeLoreRepo{}
	indexer := &fakeIndexer{}
	svc := newTestService(&fakeWorkRepo{work: testWork()}, &fakeChapterRepo{}, lore, &fakeEmbedder{}, indexer)

	require.NoError(t, svc.DeleteLoreEntry(context.Background(), "lore-1"))
	assert.Equal(t, []string{"lore-1"}, lore.deleted)
	assert.Equal(t, []string{"lore-1"}, indexer.deleted)
}
