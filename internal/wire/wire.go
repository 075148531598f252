// Package wire 提供应用依赖装配
package wire

import (
	"context"
	"fmt"

	"novel-translate-api/internal/application/catalog"
	"novel-translate-api/internal/application/translation"
	"novel-translate-api/internal/config"
	"novel-translate-api/internal/infrastructure/embedding"
	"novel-translate-api/internal/infrastructure/messaging"
	"novel-translate-api/internal/infrastructure/persistence/milvus"
	"novel-translate-api/internal/infrastructure/persistence/postgres"
	"novel-translate-api/internal/infrastructure/persistence/redis"
	"novel-translate-api/internal/interfaces/http/handler"
	"novel-translate-api/internal/interfaces/http/router"
	"novel-translate-api/pkg/logger"
)

// InitializeApp 装配 API 网关依赖并返回路由器。
// Milvus 连接失败不阻止启动：检索降级为空结果，设定索引暂不可用。
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	pgClient, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	redisClient, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		_ = pgClient.Close()
		return nil, nil, fmt.Errorf("failed to init redis: %w", err)
	}

	milvusClient, err := milvus.NewClient(ctx, &cfg.Vector.Milvus)
	if err != nil {
		logger.FromContext(ctx).Warn("milvus unavailable, lore retrieval degraded", "error", err)
		milvusClient = nil
	}
	vectorRepo := milvus.NewRepository(milvusClient)

	workRepo := postgres.NewWorkRepository(pgClient)
	chapterRepo := postgres.NewChapterRepository(pgClient)
	glossaryRepo := postgres.NewGlossaryRepository(pgClient)
	loreRepo := postgres.NewLoreRepository(pgClient)

	embedClient := embedding.NewClient(&cfg.Clients.Embedding, milvus.VectorDimension)

	producer := messaging.NewProducer(redisClient.Redis(), cfg.Messaging.RedisStream.MaxLen)

	catalogService := catalog.NewService(workRepo, chapterRepo, glossaryRepo, loreRepo, embedClient, vectorRepo)
	translationService := translation.NewService(chapterRepo, producer)

	handlers := router.Handlers{
		Health:   handler.NewHealthHandler(pgClient, redisClient, milvusClient),
		Work:     handler.NewWorkHandler(catalogService),
		Chapter:  handler.NewChapterHandler(catalogService, translationService),
		Glossary: handler.NewGlossaryHandler(catalogService),
		Lore:     handler.NewLoreHandler(catalogService),
	}

	r := router.New(cfg, handlers)

	cleanup := func() {
		if milvusClient != nil {
			_ = milvusClient.Close()
		}
		_ = redisClient.Close()
		_ = pgClient.Close()
	}

	return r, cleanup, nil
}
