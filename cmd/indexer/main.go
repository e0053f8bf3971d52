package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/catalog"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/search"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/infrastructure/config"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/pkg/common"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// カタログの食材・料理をベクトル化して Qdrant に流し込むツール
// DB の JSON を更新したら再実行する
func main() {
	recreate := flag.Bool("recreate", false, "既存コレクションを作り直す")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	ctx := context.Background()

	cat, err := catalog.Load(cfg.Catalog.IngredientPath, cfg.Catalog.RecipePath)
	if err != nil {
		common.LogFatal("Failed to load catalog", zap.Error(err))
	}

	embedder, err := search.NewOllamaEmbedder(cfg.Embedding.Host, cfg.Embedding.Model, cfg.Embedding.Timeout)
	if err != nil {
		common.LogFatal("Failed to initialize embedder", zap.Error(err))
	}

	index, err := search.NewQdrantIndex(cfg.Search.Host, cfg.Search.Port,
		cfg.Search.IngredientCollection, cfg.Search.RecipeCollection, embedder)
	if err != nil {
		common.LogFatal("Failed to connect to Qdrant", zap.Error(err))
	}
	defer index.Close()

	// 次元数はモデル依存なので 1 本埋め込んで測る
	probe, err := embedder.Embed(ctx, "次元数確認")
	if err != nil {
		common.LogFatal("Failed to probe embedding dimension", zap.Error(err))
	}
	dimension := uint64(len(probe))

	common.LogInfo("インデックス作成開始",
		zap.Uint64("dimension", dimension),
		zap.String("embed_model", cfg.Embedding.Model),
		zap.Bool("recreate", *recreate),
	)

	if err := index.EnsureCollection(ctx, index.IngredientCollection(), dimension, *recreate); err != nil {
		common.LogFatal("Failed to setup ingredient collection", zap.Error(err))
	}
	if err := index.EnsureCollection(ctx, index.RecipeCollection(), dimension, *recreate); err != nil {
		common.LogFatal("Failed to setup recipe collection", zap.Error(err))
	}

	for i := range cat.Ingredients {
		entry := &cat.Ingredients[i]
		document := catalog.BuildIngredientDocument(entry)
		if err := index.UpsertDocument(ctx, index.IngredientCollection(), uint64(i), entry.Name, document); err != nil {
			common.LogFatal("Failed to index ingredient",
				zap.String("name", entry.Name),
				zap.Error(err),
			)
		}
	}
	common.LogInfo("食材インデックス完了", zap.Int("count", len(cat.Ingredients)))

	for i := range cat.Recipes {
		entry := &cat.Recipes[i]
		document := catalog.BuildRecipeDocument(entry)
		if err := index.UpsertDocument(ctx, index.RecipeCollection(), uint64(i), entry.Name, document); err != nil {
			common.LogFatal("Failed to index recipe",
				zap.String("name", entry.Name),
				zap.Error(err),
			)
		}
	}
	common.LogInfo("料理インデックス完了", zap.Int("count", len(cat.Recipes)))
}
