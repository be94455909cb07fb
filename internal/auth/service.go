package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgauth "github.com/pratododia/cardapio-backend/pkg/auth"
	"github.com/pratododia/cardapio-backend/pkg/auth/session"
	"github.com/pratododia/cardapio-backend/pkg/config"
	pkgerrors "github.com/pratododia/cardapio-backend/pkg/errors"
	"github.com/pratododia/cardapio-backend/pkg/logger"
	"github.com/pratododia/cardapio-backend/pkg/security"
)

// SessionRegistry is the write surface the login/logout flow needs.
type SessionRegistry interface {
	Register(ctx context.Context, sessionID string) error
	Revoke(ctx context.Context, sessionID string) error
}

// Service handles the single-admin login and logout flow.
type Service interface {
	Login(ctx context.Context, password string) (string, error)
	Logout(ctx context.Context, token string) error
}

type service struct {
	jwt      config.JWTConfig
	admin    config.AdminConfig
	sessions SessionRegistry
	logg     *logger.Logger
	now      func() time.Time
}

// NewService wires the admin auth service.
func NewService(jwtCfg config.JWTConfig, adminCfg config.AdminConfig, sessions SessionRegistry, logg *logger.Logger) (Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session registry required")
	}
	if adminCfg.Password == "" && adminCfg.PasswordHash == "" {
		return nil, fmt.Errorf("admin credential is not configured")
	}
	return &service{
		jwt:      jwtCfg,
		admin:    adminCfg,
		sessions: sessions,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// Login verifies the admin password and, on success, mints a session token
// registered in Redis. Every failure mode answers the same UNAUTHORIZED.
func (s *service) Login(ctx context.Context, password string) (string, error) {
	if password == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	ok, err := s.verifyPassword(password)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "verify admin password", err)
		}
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	sessionID := session.NewSessionID()
	token, err := pkgauth.MintSessionToken(s.jwt, s.now(), sessionID)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token")
	}
	if err := s.sessions.Register(ctx, sessionID); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "register session")
	}

	return token, nil
}

// Logout revokes the server-side session tied to the token. An unparsable
// token is not an error: the cookie is cleared either way.
func (s *service) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}

	claims, err := pkgauth.ParseSessionToken(s.jwt, token)
	if err != nil {
		return nil
	}
	if err := s.sessions.Revoke(ctx, claims.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

// The argon2id hash wins when both credential forms are configured.
func (s *service) verifyPassword(password string) (bool, error) {
	if s.admin.PasswordHash != "" {
		return security.VerifyPassword(password, s.admin.PasswordHash)
	}
	return security.ConstantTimeEquals(password, s.admin.Password), nil
}
