package session

import (
	"context"
	"errors"

	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/chef"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/infrastructure/config"
)

// ErrNotFound セッションが存在しない（または TTL 切れ）
var ErrNotFound = errors.New("session not found")

// Store セッションの保管場所
// 1 セッションは 1 ユーザーの操作列が独占する。書き込み競合は想定しない
type Store interface {
	Get(ctx context.Context, id string) (*chef.SessionState, error)
	Save(ctx context.Context, s *chef.SessionState) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// NewStore 設定に応じて Redis かメモリのストアを返す
func NewStore(cfg *config.Config) (Store, error) {
	if cfg.Session.RedisEnabled {
		return NewRedisStore(cfg)
	}
	return NewMemoryStore(cfg.Session.TTL), nil
}
