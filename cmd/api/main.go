package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yamawaki64-design/yuruyuru-chef/internal/api"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/session"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/infrastructure/config"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/pkg/common"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env 読み込み
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 設定読み込み
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// logger 初期化（config 読み込み後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("設定読み込み",
		zap.Bool("groq_enabled", cfg.Groq.Enabled),
		zap.String("groq_model", cfg.Groq.Model),
		zap.String("qdrant", fmt.Sprintf("%s:%d", cfg.Search.Host, cfg.Search.Port)),
		zap.String("embed_model", cfg.Embedding.Model),
	)

	// セッションストア初期化
	store, err := session.NewStore(cfg)
	if err != nil {
		common.LogFatal("Failed to initialize session store", zap.Error(err))
	}
	defer store.Close()

	// ルーター構築
	router, err := api.SetupRouter(cfg, store)
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	// HTTP サーバ
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// サーバ起動
	go func() {
		common.LogInfo("アプリ起動",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("Failed to start server",
				zap.Error(err),
			)
			os.Exit(1)
		}
	}()

	// 中断シグナル待ち
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}
