package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string)}
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *mockStore) AdminSessionKey(sessionID string) string {
	return fmt.Sprintf("sess:%s", sessionID)
}

func TestManagerRegisterRevokeLifecycle(t *testing.T) {
	store := newMockStore()
	manager := &Manager{
		store: store,
		keyer: store,
		ttl:   time.Hour,
	}

	ctx := context.Background()
	sessionID := NewSessionID()

	if err := manager.Register(ctx, sessionID); err != nil {
		t.Fatalf("register: %v", err)
	}

	ok, err := manager.HasSession(ctx, sessionID)
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if !ok {
		t.Fatalf("expected session to exist after register")
	}

	if err := manager.Revoke(ctx, sessionID); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	ok, err = manager.HasSession(ctx, sessionID)
	if err != nil {
		t.Fatalf("has session after revoke: %v", err)
	}
	if ok {
		t.Fatalf("expected session to be gone after revoke")
	}
}

func TestManagerRejectsEmptySessionID(t *testing.T) {
	store := newMockStore()
	manager := &Manager{store: store, keyer: store, ttl: time.Hour}
	ctx := context.Background()

	if err := manager.Register(ctx, "  "); err == nil {
		t.Fatalf("expected error for blank session id")
	}
	if _, err := manager.HasSession(ctx, ""); err == nil {
		t.Fatalf("expected error for blank session id")
	}
}
