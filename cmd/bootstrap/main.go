package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"novel-translate-api/internal/config"
	"novel-translate-api/internal/domain/entity"
	"novel-translate-api/internal/infrastructure/persistence/milvus"
	"novel-translate-api/internal/infrastructure/persistence/postgres"
)

func main() {
	_ = godotenv.Load()

	fmt.Println("Starting system bootstrap...")

	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// 2. PostgreSQL 表结构迁移
	pgClient, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		log.Fatalf("failed to connect postgres: %v", err)
	}
	defer func() { _ = pgClient.Close() }()

	fmt.Println("Migrating PostgreSQL schema...")
	if err := pgClient.DB().AutoMigrate(
		&entity.Work{},
		&entity.Chapter{},
		&entity.GlossaryTerm{},
		&entity.LoreEntry{},
	); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}
	fmt.Println("PostgreSQL schema ready.")

	// 3. Milvus 设定集合
	milvusClient, err := milvus.NewClient(ctx, &cfg.Vector.Milvus)
	if err != nil {
		log.Fatalf("failed to connect milvus: %v", err)
	}
	defer func() { _ = milvusClient.Close() }()

	vectorRepo := milvus.NewRepository(milvusClient)
	fmt.Println("Ensuring Milvus lore collection...")
	if err := vectorRepo.EnsureLoreCollection(ctx); err != nil {
		log.Fatalf("failed to ensure lore collection: %v", err)
	}
	fmt.Println("Milvus lore collection ready.")

	fmt.Println("Bootstrap completed successfully.")
}
