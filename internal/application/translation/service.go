package translation

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"novel-translate-api/internal/domain/entity"
	"novel-translate-api/internal/domain/repository"
	"novel-translate-api/internal/infrastructure/messaging"
	apperrors "novel-translate-api/pkg/errors"
	"novel-translate-api/pkg/logger"
)

// JobProducer 任务发布端口
type JobProducer interface {
	PublishTranslationJob(ctx context.Context, job *messaging.TranslationJobMessage) (string, error)
}

// Service 翻译任务受理服务
type Service struct {
	chapters repository.ChapterRepository
	producer JobProducer
}

// NewService 创建翻译任务受理服务
func NewService(chapters repository.ChapterRepository, producer JobProducer) *Service {
	return &Service{
		chapters: chapters,
		producer: producer,
	}
}

// EnqueueTranslation 受理章节翻译请求：校验章节存在后把任务写入流并立即返回。
// 章节已处于 translating 时拒绝重复受理，避免同一章节的并发写竞争。
func (s *Service) EnqueueTranslation(ctx context.Context, chapterID string) (string, error) {
	ctx, span := tracer.Start(ctx, "translation.EnqueueTranslation",
		trace.WithAttributes(attribute.String("chapter_id", chapterID)))
	defer span.End()

	chapter, err := s.chapters.GetByID(ctx, chapterID)
	if err != nil {
		span.RecordError(err)
		return "", apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load chapter")
	}
	if chapter == nil {
		return "", apperrors.ErrChapterNotFound
	}
	if chapter.Status == entity.ChapterStatusTranslating {
		return "", apperrors.ErrChapterTranslating
	}

	jobID := uuid.NewString()
	if _, err := s.producer.PublishTranslationJob(ctx, &messaging.TranslationJobMessage{
		JobID:     jobID,
		WorkID:    chapter.WorkID,
		ChapterID: chapter.ID,
	}); err != nil {
		span.RecordError(err)
		return "", apperrors.Wrap(err, apperrors.CodeQueueError, "failed to enqueue translation job")
	}

	logger.FromContext(ctx).Info("translation job enqueued",
		"job_id", jobID,
		"work_id", chapter.WorkID,
		"chapter_id", chapter.ID,
	)
	return jobID, nil
}
