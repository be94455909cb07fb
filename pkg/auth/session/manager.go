package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pratododia/cardapio-backend/pkg/config"
	redisclient "github.com/pratododia/cardapio-backend/pkg/redis"
	redislib "github.com/redis/go-redis/v9"
)

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	AdminSessionKey(sessionID string) string
}

// Manager tracks which admin session IDs (JWT jti) are still live, so a
// logout revokes the cookie server-side before the token expires.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// SessionChecker exposes the read-only surface needed by middleware.
type SessionChecker interface {
	HasSession(ctx context.Context, sessionID string) (bool, error)
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := cfg.SessionTTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}

	return &Manager{
		store: client,
		keyer: client,
		ttl:   ttl,
	}, nil
}

// Register records a freshly minted session ID; the entry expires alongside
// the JWT so abandoned sessions clean themselves up.
func (m *Manager) Register(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	return m.store.Set(ctx, m.keyer.AdminSessionKey(sessionID), "1", m.ttl)
}

// Revoke deletes the session entry tied to the session identifier.
func (m *Manager) Revoke(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	return m.store.Del(ctx, m.keyer.AdminSessionKey(sessionID))
}

// HasSession reports whether the provided session ID is still active.
func (m *Manager) HasSession(ctx context.Context, sessionID string) (bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return false, fmt.Errorf("session id is required")
	}
	if _, err := m.store.Get(ctx, m.keyer.AdminSessionKey(sessionID)); err != nil {
		if errors.Is(err, redislib.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// NewSessionID produces a stable identifier used as the JWT jti/Redis key.
func NewSessionID() string {
	return uuid.NewString()
}
