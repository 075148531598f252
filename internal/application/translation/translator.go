package translation

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"novel-translate-api/internal/application/retrieval"
	"novel-translate-api/internal/domain/entity"
	"novel-translate-api/internal/domain/repository"
	apperrors "novel-translate-api/pkg/errors"
	"novel-translate-api/pkg/logger"
	"novel-translate-api/pkg/metrics"
)

var tracer = otel.Tracer("translation")

// Generator 生成服务端口
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Translator 章节翻译器。
//
// 状态机：pending → translating → completed|failed。
// translating 在外部调用前就持久化，读者能观察到进行中的状态；
// 任何失败把章节标记为 failed 并向上返回错误，不在内部重试。
type Translator struct {
	chapters  repository.ChapterRepository
	glossary  repository.GlossaryRepository
	retriever *retrieval.Engine
	generator Generator
	loreLimit int
}

// NewTranslator 创建翻译器
func NewTranslator(
	chapters repository.ChapterRepository,
	glossary repository.GlossaryRepository,
	retriever *retrieval.Engine,
	generator Generator,
	loreLimit int,
) *Translator {
	if loreLimit <= 0 {
		loreLimit = 5
	}
	return &Translator{
		chapters:  chapters,
		glossary:  glossary,
		retriever: retriever,
		generator: generator,
		loreLimit: loreLimit,
	}
}

// Translate 翻译指定章节并持久化结果
func (t *Translator) Translate(ctx context.Context, chapterID string) error {
	ctx, span := tracer.Start(ctx, "translation.Translate",
		trace.WithAttributes(attribute.String("chapter_id", chapterID)))
	defer span.End()

	ctx = logger.WithContext(ctx, logger.ChapterIDKey, chapterID)
	log := logger.FromContext(ctx)
	start := time.Now()

	chapter, err := t.chapters.GetByID(ctx, chapterID)
	if err != nil {
		span.RecordError(err)
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load chapter")
	}
	if chapter == nil {
		return apperrors.ErrChapterNotFound
	}

	terms, err := t.glossary.ListByWork(ctx, chapter.WorkID)
	if err != nil {
		span.RecordError(err)
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load glossary")
	}
	glossaryCtx := BuildGlossaryContext(chapter.ContentRaw, terms)

	loreItems := t.retriever.RetrieveLore(ctx, chapter.WorkID, chapter.ContentRaw, t.loreLimit)
	loreCtx := BuildLoreContext(loreItems)

	// 外部调用之前先落 translating，失败时也能看到任务已开始
	if err := t.chapters.UpdateStatus(ctx, chapterID, entity.ChapterStatusTranslating, nil, ""); err != nil {
		span.RecordError(err)
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to mark chapter translating")
	}

	log.Info("translation started",
		"work_id", chapter.WorkID,
		"chapter_number", chapter.ChapterNumber,
		"glossary_matched", glossaryCtx != EmptyGlossaryMarker,
		"lore_entries", len(loreItems),
	)

	prompt := BuildPrompt(chapter.ContentRaw, glossaryCtx, loreCtx)

	translated, err := t.generator.Generate(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		t.markFailed(ctx, chapterID, err)
		metrics.TranslationTotal.WithLabelValues(string(entity.ChapterStatusFailed)).Inc()
		metrics.TranslationDuration.WithLabelValues(string(entity.ChapterStatusFailed)).Observe(time.Since(start).Seconds())
		return apperrors.Wrap(err, apperrors.CodeGenerationFailed, "generation call failed")
	}

	if err := t.chapters.UpdateStatus(ctx, chapterID, entity.ChapterStatusCompleted, &translated, ""); err != nil {
		span.RecordError(err)
		// 持久化失败与生成失败分开记录，状态可能已与实际不一致
		log.Error("failed to persist completed translation", "error", err)
		metrics.TranslationTotal.WithLabelValues(string(entity.ChapterStatusFailed)).Inc()
		metrics.TranslationDuration.WithLabelValues(string(entity.ChapterStatusFailed)).Observe(time.Since(start).Seconds())
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to persist translation result")
	}

	metrics.TranslationTotal.WithLabelValues(string(entity.ChapterStatusCompleted)).Inc()
	metrics.TranslationDuration.WithLabelValues(string(entity.ChapterStatusCompleted)).Observe(time.Since(start).Seconds())

	log.Info("translation completed",
		"work_id", chapter.WorkID,
		"chapter_number", chapter.ChapterNumber,
		"duration", time.Since(start).String(),
		"translated_length", len(translated),
	)
	return nil
}

// markFailed 将章节标记为 failed 并记录失败原因。
// 这里的持久化错误只记日志，原始失败仍由调用方处理。
func (t *Translator) markFailed(ctx context.Context, chapterID string, cause error) {
	if err := t.chapters.UpdateStatus(ctx, chapterID, entity.ChapterStatusFailed, nil, cause.Error()); err != nil {
		logger.FromContext(ctx).Error("failed to mark chapter failed", "error", err, "cause", cause)
	}
}
