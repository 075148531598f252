// Package main 翻译任务执行器入口（translate-worker）
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"novel-translate-api/internal/application/retrieval"
	"novel-translate-api/internal/application/translation"
	"novel-translate-api/internal/config"
	"novel-translate-api/internal/infrastructure/embedding"
	"novel-translate-api/internal/infrastructure/generation"
	"novel-translate-api/internal/infrastructure/messaging"
	"novel-translate-api/internal/infrastructure/persistence/milvus"
	"novel-translate-api/internal/infrastructure/persistence/postgres"
	"novel-translate-api/internal/infrastructure/persistence/redis"
	"novel-translate-api/pkg/logger"
	"novel-translate-api/pkg/tracer"
)

// dlqAlertThreshold DLQ 告警阈值
const dlqAlertThreshold = 100

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	ctx := context.Background()
	log := logger.FromContext(ctx)

	shutdown, err := tracer.Init(ctx, tracer.Config{
		ServiceName: "translate-worker",
		Endpoint:    cfg.Observability.Tracing.Endpoint,
		SampleRate:  cfg.Observability.Tracing.SampleRate,
		Enabled:     cfg.Observability.Tracing.Enabled,
	})
	if err != nil {
		logger.Fatal(ctx, "failed to init tracer", err)
	}
	defer func() { _ = shutdown(ctx) }()

	pgClient, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		logger.Fatal(ctx, "failed to init postgres", err)
	}
	defer func() { _ = pgClient.Close() }()

	redisClient, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		logger.Fatal(ctx, "failed to init redis", err)
	}
	defer func() { _ = redisClient.Close() }()

	// Milvus 不可用时仅丢失设定检索，翻译主链路继续工作
	milvusClient, err := milvus.NewClient(ctx, &cfg.Vector.Milvus)
	if err != nil {
		log.Warn("milvus unavailable, lore retrieval degraded", "error", err)
		milvusClient = nil
	} else {
		defer func() { _ = milvusClient.Close() }()
	}
	vectorRepo := milvus.NewRepository(milvusClient)

	chapterRepo := postgres.NewChapterRepository(pgClient)
	glossaryRepo := postgres.NewGlossaryRepository(pgClient)

	embedClient := embedding.NewClient(&cfg.Clients.Embedding, milvus.VectorDimension)
	genClient := generation.NewClient(&cfg.Clients.Generation)
	engine := retrieval.NewEngine(embedClient, vectorRepo)
	translator := translation.NewTranslator(chapterRepo, glossaryRepo, engine, genClient, 0)

	consumer := messaging.NewConsumer(redisClient.Redis(), messaging.ConsumerConfig{
		Stream:       messaging.StreamTranslateJobs,
		Group:        messaging.ConsumerGroupTranslateWorker,
		ConsumerName: hostnameConsumerName(),
		BlockTimeout: cfg.Messaging.RedisStream.BlockTimeout,
		ClaimMinIdle: cfg.Messaging.RedisStream.ClaimMinIdle,
	})

	consumer.RegisterHandler(messaging.MessageTypeTranslateChapter, func(msgCtx context.Context, msg *messaging.Message) error {
		var job messaging.TranslationJobMessage
		if err := msg.UnmarshalPayload(&job); err != nil {
			return fmt.Errorf("unmarshal translation job: %w", err)
		}
		return translator.Translate(msgCtx, job.ChapterID)
	})

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := consumer.Start(runCtx); err != nil {
		logger.Fatal(ctx, "failed to start consumer", err)
	}

	g, gCtx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		consumer.MonitorDLQ(gCtx, dlqAlertThreshold)
		return nil
	})

	log.Info("translate-worker started",
		"stream", messaging.StreamTranslateJobs,
		"group", messaging.ConsumerGroupTranslateWorker,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("translate-worker shutting down")
	consumer.Stop()
	cancel()
	_ = g.Wait()
}

func hostnameConsumerName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "worker"
	}
	return fmt.Sprintf("%s-%d", host, os.Getpid())
}
