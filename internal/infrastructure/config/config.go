package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config アプリ設定
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	Groq        GroqConfig      `mapstructure:"groq"`
	Search      SearchConfig    `mapstructure:"search"`
	Embedding   EmbeddingConfig `mapstructure:"embedding"`
	Catalog     CatalogConfig   `mapstructure:"catalog"`
	Session     SessionConfig   `mapstructure:"session"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
}

// AppConfig アプリケーション設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig サーバ設定
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// GroqConfig セリフ生成（Groq）設定
type GroqConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	APIKey    string        `mapstructure:"api_key"`
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// SearchConfig ベクトル検索（Qdrant）設定
type SearchConfig struct {
	Host                 string `mapstructure:"host"`
	Port                 int    `mapstructure:"port"`
	RecipeCollection     string `mapstructure:"recipe_collection"`
	IngredientCollection string `mapstructure:"ingredient_collection"`
}

// EmbeddingConfig 埋め込み（Ollama）設定
type EmbeddingConfig struct {
	Host    string        `mapstructure:"host"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CatalogConfig 参照データ設定
type CatalogConfig struct {
	IngredientPath string `mapstructure:"ingredient_path"`
	RecipePath     string `mapstructure:"recipe_path"`
}

// SessionConfig セッションストア設定
type SessionConfig struct {
	TTL          time.Duration `mapstructure:"ttl"`
	RedisEnabled bool          `mapstructure:"redis_enabled"`
	RedisAddr    string        `mapstructure:"redis_addr"`
}

// RateLimitConfig レート制限設定
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig 設定を読み込む
func LoadConfig() (*Config, error) {
	// .env を読み込む（無くてもよい）
	_ = godotenv.Load()

	// デフォルト値
	setDefaults()

	// 環境変数プレフィックス
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 環境変数バインド
	viper.BindEnv("groq.api_key", "GROQ_API_KEY")
	viper.BindEnv("groq.model", "GROQ_MODEL")
	viper.BindEnv("groq.max_tokens", "GROQ_MAX_TOKENS")
	viper.BindEnv("search.host", "QDRANT_HOST")
	viper.BindEnv("search.port", "QDRANT_PORT")
	viper.BindEnv("embedding.host", "OLLAMA_HOST")
	viper.BindEnv("embedding.model", "EMBED_MODEL")
	viper.BindEnv("session.redis_enabled", "SESSION_REDIS_ENABLED")
	viper.BindEnv("session.redis_addr", "SESSION_REDIS_ADDR")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定ファイル
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// logger 初期化前なので fmt.Println で出す
	fmt.Println("Loading configuration",
		"groq_api_key:", maskAPIKey(viper.GetString("groq.api_key")),
		"groq_model:", viper.GetString("groq.model"))

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskAPIKey API キーをマスクする（先頭と末尾 4 文字のみ表示）
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults デフォルト値を設定する
func setDefaults() {
	// アプリケーション
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "yuruyuru-chef")

	// サーバ
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// Groq
	viper.SetDefault("groq.enabled", true)
	viper.SetDefault("groq.model", "llama-3.3-70b-versatile")
	viper.SetDefault("groq.max_tokens", 300)
	viper.SetDefault("groq.timeout", "60s")

	// Qdrant
	viper.SetDefault("search.host", "localhost")
	viper.SetDefault("search.port", 6334)
	viper.SetDefault("search.recipe_collection", "recipes")
	viper.SetDefault("search.ingredient_collection", "ingredients")

	// Ollama
	viper.SetDefault("embedding.host", "http://localhost:11434")
	viper.SetDefault("embedding.model", "kun432/cl-nagoya-ruri-base")
	viper.SetDefault("embedding.timeout", "30s")

	// 参照データ
	viper.SetDefault("catalog.ingredient_path", "./data/ingredient_db.json")
	viper.SetDefault("catalog.recipe_path", "./data/recipe_db.json")

	// セッション
	viper.SetDefault("session.ttl", "2h")
	viper.SetDefault("session.redis_enabled", false)
	viper.SetDefault("session.redis_addr", "localhost:6379")

	// レート制限
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	// 重複リクエスト排除
	viper.SetDefault("dedup_window", "1s")
}

// validateConfig 設定を検証する
func validateConfig(config *Config) error {
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	if config.Search.Host == "" || config.Search.Port == 0 {
		return fmt.Errorf("search host and port are required")
	}
	if config.Search.RecipeCollection == "" || config.Search.IngredientCollection == "" {
		return fmt.Errorf("search collection names are required")
	}

	if config.Catalog.IngredientPath == "" || config.Catalog.RecipePath == "" {
		return fmt.Errorf("catalog data paths are required")
	}

	if config.Session.TTL <= 0 {
		return fmt.Errorf("invalid session ttl")
	}
	if config.Session.RedisEnabled && config.Session.RedisAddr == "" {
		return fmt.Errorf("session redis addr is required when redis is enabled")
	}

	return nil
}
