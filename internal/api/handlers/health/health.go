package health

import (
	"net/http"
	"runtime"
	"time"

	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/catalog"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/infrastructure/config"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse ヘルスチェックレスポンス
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Catalog   *CatalogStatus         `json:"catalog,omitempty"`
}

// CatalogStatus カタログの読み込み状況
type CatalogStatus struct {
	Ingredients int `json:"ingredients"`
	Recipes     int `json:"recipes"`
}

// HealthCheck ヘルスチェックハンドラ
func HealthCheck(c *gin.Context) {
	cfg, exists := c.Get("config")
	if !exists {
		common.LogError("Configuration not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Configuration not found",
		})
		return
	}
	config, ok := cfg.(*config.Config)
	if !ok {
		common.LogError("Invalid configuration type in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid configuration type",
		})
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   config.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	// カタログの件数も載せる
	if cat, exists := c.Get("catalog"); exists {
		if cat, ok := cat.(*catalog.Catalog); ok {
			response.Catalog = &CatalogStatus{
				Ingredients: cat.IngredientCount(),
				Recipes:     cat.RecipeCount(),
			}
		}
	}

	common.LogInfo("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck レディネスチェック。カタログ未ロードなら 503
func ReadinessCheck(c *gin.Context) {
	cat, exists := c.Get("catalog")
	if !exists {
		c.JSON(common.ErrServiceUnavailable.Status, gin.H{
			"status": "not ready",
			"code":   common.ErrServiceUnavailable.Code,
		})
		return
	}
	if cat, ok := cat.(*catalog.Catalog); !ok || cat.RecipeCount() == 0 {
		c.JSON(common.ErrCatalogNotLoaded.Status, gin.H{
			"status": "not ready",
			"code":   common.ErrCatalogNotLoaded.Code,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 生存確認のみ。依存は見ない
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
