package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/yamawaki64-design/yuruyuru-chef/internal/api/handlers/health"
	sessionHandler "github.com/yamawaki64-design/yuruyuru-chef/internal/api/handlers/session"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/api/middleware"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/catalog"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/chef"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/narrate"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/search"
	sessionstore "github.com/yamawaki64-design/yuruyuru-chef/internal/core/session"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/infrastructure/config"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 相談 1 回にベクトル検索と生成呼び出しが 2〜3 回入る
	timeoutDuration = 60 * time.Second
	// リクエストボディ上限 (1MB)。受けるのはテキストだけ
	maxBodySize = 1 << 20
)

// SetupRouter ルーターを構築する
func SetupRouter(cfg *config.Config, store sessionstore.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// gin モード設定
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 基礎ミドルウェア
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	// CORS 設定
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ボディサイズ制限
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 二重送信対策
	router.Use(middleware.Deduplication(cfg))

	// レート制限
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.Bool("groq_enabled", cfg.Groq.Enabled),
		zap.String("groq_model", cfg.Groq.Model),
		zap.String("qdrant_host", cfg.Search.Host),
		zap.String("embed_model", cfg.Embedding.Model),
		zap.Duration("timeout", timeoutDuration),
	)

	// カタログ読み込み
	cat, err := catalog.Shared(cfg.Catalog.IngredientPath, cfg.Catalog.RecipePath)
	if err != nil {
		common.LogError("Failed to load catalog", zap.Error(err))
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	// 埋め込みクライアント
	embedder, err := search.NewOllamaEmbedder(cfg.Embedding.Host, cfg.Embedding.Model, cfg.Embedding.Timeout)
	if err != nil {
		common.LogError("Failed to initialize embedder", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize embedder: %w", err)
	}

	// ベクトル検索
	index, err := search.NewQdrantIndex(cfg.Search.Host, cfg.Search.Port,
		cfg.Search.IngredientCollection, cfg.Search.RecipeCollection, embedder)
	if err != nil {
		common.LogError("Failed to initialize search index", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize search index: %w", err)
	}

	// セリフ生成
	narrator := narrate.NewNarrator(narrate.NewGroqClient(cfg))

	// パイプライン
	pipeline := chef.NewPipeline(cat, index, narrator)

	common.LogInfo("Services initialized successfully",
		zap.Int("ingredients", cat.IngredientCount()),
		zap.Int("recipes", cat.RecipeCount()),
	)

	// 全ルート共通：タイムアウトとコンテキスト注入
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)
		c.Set("catalog", cat)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, common.ErrorResponse{
				Code:    common.ErrCodeGatewayTimeout,
				Message: "処理がタイムアウト",
				Details: timeoutDuration.String(),
			})
			c.Abort()
			return
		}
	})

	// 未定義ルート
	router.NoRoute(func(c *gin.Context) {
		c.JSON(common.ErrNotFound.Status, common.ErrorResponse{
			Code:    common.ErrNotFound.Code,
			Message: common.ErrNotFound.Message,
		})
	})

	// ヘルスチェック
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API ルートグループ
	api := router.Group("/api/v1")
	{
		h := sessionHandler.NewHandler(pipeline, store)

		sessions := api.Group("/sessions")
		{
			// セッション作成（トップ画面）
			sessions.POST("", h.HandleCreate)

			// 現在の画面の取得
			sessions.GET("/:id", h.HandleGet)

			// 食材相談 → 料理提案
			sessions.POST("/:id/consult", h.HandleConsult)

			// 作り方（詳細画面）
			sessions.POST("/:id/steps", h.HandleSteps)

			// お見送り
			sessions.POST("/:id/farewell", h.HandleFarewell)

			// トップ画面に戻る
			sessions.POST("/:id/reset", h.HandleReset)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
