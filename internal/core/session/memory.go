package session

import (
	"context"
	"sync"
	"time"

	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/chef"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// cleanupInterval 期限切れセッションの掃除間隔
const cleanupInterval = 10 * time.Minute

// MemoryStore プロセス内のセッションストア。単一インスタンス運用向け
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	done    chan struct{}
}

type memoryEntry struct {
	state     *chef.SessionState
	expiresAt time.Time
}

// NewMemoryStore メモリストアを作成して掃除 goroutine を起動する
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	m := &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}

	go m.startCleanup()

	common.LogInfo("メモリセッションストア初期化",
		zap.Duration("ttl", ttl),
	)

	return m
}

// Get セッションを取得する。期限切れは NotFound 扱い
func (m *MemoryStore) Get(ctx context.Context, id string) (*chef.SessionState, error) {
	m.mu.RLock()
	entry, exists := m.entries[id]
	m.mu.RUnlock()

	if !exists {
		return nil, ErrNotFound
	}
	if time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, id)
		m.mu.Unlock()
		return nil, ErrNotFound
	}
	return entry.state, nil
}

// Save セッションを保存して TTL を更新する
func (m *MemoryStore) Save(ctx context.Context, s *chef.SessionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[s.ID] = memoryEntry{
		state:     s,
		expiresAt: time.Now().Add(m.ttl),
	}
	return nil
}

// Delete セッションを削除する
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, id)
	return nil
}

// Close 掃除 goroutine を止める
func (m *MemoryStore) Close() error {
	close(m.done)
	return nil
}

// startCleanup 期限切れエントリを定期的に掃除する
func (m *MemoryStore) startCleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			now := time.Now()
			evicted := 0

			m.mu.Lock()
			for id, entry := range m.entries {
				if now.After(entry.expiresAt) {
					delete(m.entries, id)
					evicted++
				}
			}
			m.mu.Unlock()

			if evicted > 0 {
				common.LogDebug("期限切れセッション掃除",
					zap.Int("evicted", evicted),
				)
			}
		}
	}
}
