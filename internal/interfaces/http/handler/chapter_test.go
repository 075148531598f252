package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novel-translate-api/internal/application/translation"
	"novel-translate-api/internal/domain/entity"
	"novel-translate-api/internal/domain/repository"
	"novel-translate-api/internal/infrastructure/messaging"
)

type stubChapterRepo struct {
	chapter *entity.Chapter
}

func (s *stubChapterRepo) Create(_ context.Context, _ *entity.Chapter) error { return nil }

func (s *stubChapterRepo) GetByID(_ context.Context, _ string) (*entity.Chapter, error) {
	return s.chapter, nil
}

func (s *stubChapterRepo) ListByWork(_ context.Context, _ string, _ repository.Pagination) (*repository.PagedResult[*entity.Chapter], error) {
	return nil, nil
}

func (s *stubChapterRepo) GetNextChapterNumber(_ context.Context, _ string) (int, error) {
	return 1, nil
}

func (s *stubChapterRepo) UpdateStatus(_ context.Context, _ string, _ entity.ChapterStatus, _ *string, _ string) error {
	return nil
}

func (s *stubChapterRepo) UpdateProgress(_ context.Context, _ string, _ int) error { return nil }

type stubProducer struct{}

func (s *stubProducer) PublishTranslationJob(_ context.Context, _ *messaging.TranslationJobMessage) (string, error) {
	return "1-0", nil
}

func translateTestRouter(chapter *entity.Chapter) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := translation.NewService(&stubChapterRepo{chapter: chapter}, &stubProducer{})
	h := NewChapterHandler(nil, svc)

	r := gin.New()
	r.POST("/v1/chapters/:cid/translate", h.TranslateChapter)
	return r
}

func TestTranslateChapter_Accepted(t *testing.T) {
	router := translateTestRouter(&entity.Chapter{
		ID:         "chapter-1",
		WorkID:     "work-1",
		ContentRaw: "原文",
		Status:     entity.ChapterStatusPending,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/chapters/chapter-1/translate", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)

	var resp struct {
		Code int `json:"code"`
		Data struct {
			JobID     string `json:"job_id"`
			ChapterID string `json:"chapter_id"`
			Status    string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusAccepted, resp.Code)
	assert.NotEmpty(t, resp.Data.JobID)
	assert.Equal(t, "chapter-1", resp.Data.ChapterID)
	assert.Equal(t, string(entity.ChapterStatusPending), resp.Data.Status)
}

func TestTranslateChapter_NotFound(t *testing.T) {
	router := translateTestRouter(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/chapters/missing/translate", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTranslateChapter_ConflictWhenTranslating(t *testing.T) {
	router := translateTestRouter(&entity.Chapter{
		ID:         "chapter-1",
		WorkID:     "work-1",
		ContentRaw: "原文",
		Status:     entity.ChapterStatusTranslating,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/chapters/chapter-1/translate", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}
