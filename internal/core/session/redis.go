package session

import (
	"context"
	"fmt"
	"time"

	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/chef"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/infrastructure/config"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore Redis を使ったセッションストア。複数インスタンスで共有できる
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore Redis へ接続してストアを作成する
func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Session.RedisAddr,
	})

	// 接続確認
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("Redis セッションストア初期化",
		zap.String("addr", cfg.Session.RedisAddr),
		zap.Duration("ttl", cfg.Session.TTL),
	)

	return &RedisStore{
		client: client,
		ttl:    cfg.Session.TTL,
	}, nil
}

func sessionKey(id string) string {
	return "session:" + id
}

// Get セッションを取得する
func (s *RedisStore) Get(ctx context.Context, id string) (*chef.SessionState, error) {
	raw, err := s.client.Get(ctx, sessionKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	// 自前で書いたデータなので未知フィールドはスキーマずれとして弾く
	var state chef.SessionState
	if err := common.ParseJSONStrict(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &state, nil
}

// Save セッションを保存して TTL を更新する
func (s *RedisStore) Save(ctx context.Context, state *chef.SessionState) error {
	data, err := common.ToJSON(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(state.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete セッションを削除する
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Close Redis 接続を閉じる
func (s *RedisStore) Close() error {
	return s.client.Close()
}
