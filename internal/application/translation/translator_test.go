package translation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novel-translate-api/internal/application/retrieval"
	"novel-translate-api/internal/domain/entity"
	"novel-translate-api/internal/domain/repository"
	"novel-translate-api/internal/infrastructure/persistence/milvus"
	apperrors "novel-translate-api/pkg/errors"
)

type embedderFunc func(ctx context.Context, text string) ([]float32, error)

func (f embedderFunc) Embed(ctx context.Context, text string) ([]float32, error) {
	return f(ctx, text)
}

type searcherFunc func(ctx context.Context, params *milvus.SearchParams) ([]*milvus.SearchResult, error)

func (f searcherFunc) SearchLore(ctx context.Context, params *milvus.SearchParams) ([]*milvus.SearchResult, error) {
	return f(ctx, params)
}

type statusUpdate struct {
	status     entity.ChapterStatus
	translated *string
	lastErr    string
}

type fakeChapterRepo struct {
	chapter   *entity.Chapter
	getErr    error
	updateErr error
	updates   []statusUpdate
}

func (f *fakeChapterRepo) Create(_ context.Context, _ *entity.Chapter) error { return nil }

func (f *fakeChapterRepo) GetByID(_ context.Context, _ string) (*entity.Chapter, error) {
	return f.chapter, f.getErr
}

func (f *fakeChapterRepo) ListByWork(_ context.Context, _ string, _ repository.Pagination) (*repository.PagedResult[*entity.Chapter], error) {
	return nil, nil
}

func (f *fakeChapterRepo) GetNextChapterNumber(_ context.Context, _ string) (int, error) {
	return 1, nil
}

func (f *fakeChapterRepo) UpdateStatus(_ context.Context, _ string, status entity.ChapterStatus, translated *string, lastErr string) error {
	f.updates = append(f.updates, statusUpdate{status: status, translated: translated, lastErr: lastErr})
	return f.updateErr
}

func (f *fakeChapterRepo) UpdateProgress(_ context.Context, _ string, _ int) error { return nil }

type fakeGlossaryRepo struct {
	terms   []*entity.GlossaryTerm
	listErr error
}

func (f *fakeGlossaryRepo) Create(_ context.Context, _ *entity.GlossaryTerm) error { return nil }

func (f *fakeGlossaryRepo) GetByID(_ context.Context, _ string) (*entity.GlossaryTerm, error) {
	return nil, nil
}

func (f *fakeGlossaryRepo) ListByWork(_ context.Context, _ string) ([]*entity.GlossaryTerm, error) {
	return f.terms, f.listErr
}

func (f *fakeGlossaryRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func testChapter() *entity.Chapter {
	return &entity.Chapter{
		ID:            "chapter-1",
		WorkID:        "work-1",
		ChapterNumber: 1,
		ContentRaw:    "林动只是井底之蛙。",
		Status:        entity.ChapterStatusPending,
	}
}

// disabledEngine 返回不可用的检索引擎，检索降级为空结果
func disabledEngine() *retrieval.Engine {
	return retrieval.NewEngine(nil, nil)
}

func TestTranslate_Success(t *testing.T) {
	chapters := &fakeChapterRepo{chapter: testChapter()}
	glossary := &fakeGlossaryRepo{terms: []*entity.GlossaryTerm{
		{SourceTerm: "林动", TargetTerm: "Lin Dong"},
	}}
	gen := &fakeGenerator{response: "Lin Dong was just a frog at the bottom of a well."}

	tr := NewTranslator(chapters, glossary, disabledEngine(), gen, 0)
	err := tr.Translate(context.Background(), "chapter-1")
	require.NoError(t, err)

	require.Len(t, chapters.updates, 2)
	assert.Equal(t, entity.ChapterStatusTranslating, chapters.updates[0].status)
	assert.Nil(t, chapters.updates[0].translated)

	assert.Equal(t, entity.ChapterStatusCompleted, chapters.updates[1].status)
	require.NotNil(t, chapters.updates[1].translated)
	assert.Equal(t, gen.response, *chapters.updates[1].translated)
	assert.Empty(t, chapters.updates[1].lastErr)
}

func TestTranslate_PromptCarriesGlossaryAndText(t *testing.T) {
	chapters := &fakeChapterRepo{chapter: testChapter()}
	glossary := &fakeGlossaryRepo{terms: []*entity.GlossaryTerm{
		{SourceTerm: "林动", TargetTerm: "Lin Dong", Notes: "Protagonist"},
		{SourceTerm: "青元宗", TargetTerm: "Azure Origin Sect"},
	}}
	gen := &fakeGenerator{response: "translated"}

	tr := NewTranslator(chapters, glossary, disabledEngine(), gen, 0)
	require.NoError(t, tr.Translate(context.Background(), "chapter-1"))

	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "- 林动: Lin Dong (Protagonist)")
	assert.NotContains(t, prompt, "青元宗")
	assert.Contains(t, prompt, "Text to translate:\n林动只是井底之蛙。")
	assert.NotContains(t, prompt, "RELEVANT LORE")
}

func TestTranslate_GenerationFailureMarksFailed(t *testing.T) {
	chapters := &fakeChapterRepo{chapter: testChapter()}
	gen := &fakeGenerator{err: errors.New("upstream timeout")}

	tr := NewTranslator(chapters, &fakeGlossaryRepo{}, disabledEngine(), gen, 0)
	err := tr.Translate(context.Background(), "chapter-1")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeGenerationFailed, apperrors.AsAppError(err).Code)

	require.Len(t, chapters.updates, 2)
	assert.Equal(t, entity.ChapterStatusTranslating, chapters.updates[0].status)
	assert.Equal(t, entity.ChapterStatusFailed, chapters.updates[1].status)
	assert.Nil(t, chapters.updates[1].translated)
	assert.Contains(t, chapters.updates[1].lastErr, "upstream timeout")
}

func TestTranslate_ChapterNotFound(t *testing.T) {
	chapters := &fakeChapterRepo{chapter: nil}
	tr := NewTranslator(chapters, &fakeGlossaryRepo{}, disabledEngine(), &fakeGenerator{}, 0)

	err := tr.Translate(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeChapterNotFound, apperrors.AsAppError(err).Code)
	assert.Empty(t, chapters.updates)
}

func TestTranslate_RetrievalDegradationDoesNotFail(t *testing.T) {
	chapters := &fakeChapterRepo{chapter: testChapter()}
	gen := &fakeGenerator{response: "translated"}
	engine := retrieval.NewEngine(
		embedderFunc(func(_ context.Context, _ string) ([]float32, error) {
			return nil, errors.New("embedding service down")
		}),
		searcherFunc(func(_ context.Context, _ *milvus.SearchParams) ([]*milvus.SearchResult, error) {
			return nil, nil
		}),
	)

	tr := NewTranslator(chapters, &fakeGlossaryRepo{}, engine, gen, 0)
	require.NoError(t, tr.Translate(context.Background(), "chapter-1"))

	require.Len(t, gen.prompts, 1)
	assert.NotContains(t, gen.prompts[0], "RELEVANT LORE")
}

func TestTranslate_PersistFailureAfterGeneration(t *testing.T) {
	chapters := &fakeChapterRepo{chapter: testChapter()}
	gen := &fakeGenerator{response: "translated"}

	// 第一次 UpdateStatus (translating) 放行，落最终结果时失败
	failing := &failAfterFirstUpdate{inner: chapters}
	tr := NewTranslator(failing, &fakeGlossaryRepo{}, disabledEngine(), gen, 0)

	err := tr.Translate(context.Background(), "chapter-1")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeDatabaseError, apperrors.AsAppError(err).Code)
	assert.True(t, strings.Contains(err.Error(), "persist"))
}

// failAfterFirstUpdate 第一次状态更新放行，之后全部失败
type failAfterFirstUpdate struct {
	inner *fakeChapterRepo
	calls int
}

func (f *failAfterFirstUpdate) Create(ctx context.Context, c *entity.Chapter) error {
	return f.inner.Create(ctx, c)
}

func (f *failAfterFirstUpdate) GetByID(ctx context.Context, id string) (*entity.Chapter, error) {
	return f.inner.GetByID(ctx, id)
}

func (f *failAfterFirstUpdate) ListByWork(ctx context.Context, workID string, p repository.Pagination) (*repository.PagedResult[*entity.Chapter], error) {
	return f.inner.ListByWork(ctx, workID, p)
}

func (f *failAfterFirstUpdate) GetNextChapterNumber(ctx context.Context, workID string) (int, error) {
	return f.inner.GetNextChapterNumber(ctx, workID)
}

func (f *failAfterFirstUpdate) UpdateStatus(ctx context.Context, id string, status entity.ChapterStatus, translated *string, lastErr string) error {
	f.calls++
	if f.calls > 1 {
		return errors.New("connection reset")
	}
	return f.inner.UpdateStatus(ctx, id, status, translated, lastErr)
}

func (f *failAfterFirstUpdate) UpdateProgress(ctx context.Context, id string, progress int) error {
	return f.inner.UpdateProgress(ctx, id, progress)
}
