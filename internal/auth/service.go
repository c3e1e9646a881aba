package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/brightwell-digital/cms-backend/internal/notifier"
	pkgauth "github.com/brightwell-digital/cms-backend/pkg/auth"
	"github.com/brightwell-digital/cms-backend/pkg/config"
	"github.com/brightwell-digital/cms-backend/pkg/db/models"
	"github.com/brightwell-digital/cms-backend/pkg/enums"
	pkgerrors "github.com/brightwell-digital/cms-backend/pkg/errors"
	"github.com/brightwell-digital/cms-backend/pkg/logger"
	"github.com/brightwell-digital/cms-backend/pkg/security"
)

// TokenStore holds one-time password reset tokens. The redis client
// satisfies this surface.
type TokenStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	PasswordResetKey(token string) string
}

// AuditSink records login activity.
type AuditSink interface {
	Record(ctx context.Context, entry *models.AuditLog)
}

// Service owns credential checks and the password reset flow.
type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}

// LoginResult carries the minted token and the account it belongs to.
type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type service struct {
	repo   Repository
	tokens TokenStore
	mailer notifier.Mailer
	audit  AuditSink
	logg   *logger.Logger

	jwtCfg   config.JWTConfig
	pwdCfg   config.PasswordConfig
	resetCfg config.PasswordResetConfig
}

// NewService wires auth dependencies. The token store may be nil, which
// disables the password reset flow.
func NewService(
	repo Repository,
	tokens TokenStore,
	mailer notifier.Mailer,
	audit AuditSink,
	logg *logger.Logger,
	jwtCfg config.JWTConfig,
	pwdCfg config.PasswordConfig,
	resetCfg config.PasswordResetConfig,
) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "user repository required")
	}
	if mailer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "mailer required")
	}
	if audit == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "audit sink required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{
		repo:     repo,
		tokens:   tokens,
		mailer:   mailer,
		audit:    audit,
		logg:     logg,
		jwtCfg:   jwtCfg,
		pwdCfg:   pwdCfg,
		resetCfg: resetCfg,
	}, nil
}

var errInvalidCredentials = pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")

func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password required")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if !user.Active {
		return nil, errInvalidCredentials
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, errInvalidCredentials
	}

	token, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}

	s.audit.Record(ctx, &models.AuditLog{
		Actor:  user.Email,
		Action: enums.AuditActionLogin,
	})
	return &LoginResult{Token: token, User: user}, nil
}

// RequestPasswordReset issues a one-time token and mails it. The
// response never reveals whether the account exists.
func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	if s.tokens == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "password reset unavailable")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email required")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if !user.Active {
		return nil
	}

	token, err := newResetToken()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate reset token")
	}
	key := s.tokens.PasswordResetKey(token)
	if err := s.tokens.Set(ctx, key, user.ID.String(), s.resetCfg.TokenTTL); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store reset token")
	}

	msg := notifier.Message{
		ToEmail: user.Email,
		ToName:  user.DisplayName,
		Subject: "Reset your password",
		Body: fmt.Sprintf("A password reset was requested for your account.\n\n%s/reset?token=%s\n\nThe link expires in %s. If you did not request this, ignore this message.",
			strings.TrimRight(s.resetCfg.BaseURL, "/"), token, s.resetCfg.TokenTTL),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		// Delivery problems must not leak account existence to the caller.
		s.logg.Error(ctx, "sending reset mail", err)
	}
	return nil
}

func (s *service) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if s.tokens == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "password reset unavailable")
	}
	if strings.TrimSpace(token) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "token required")
	}
	if len(newPassword) < 12 {
		return pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 12 characters")
	}

	key := s.tokens.PasswordResetKey(token)
	stored, err := s.tokens.Get(ctx, key)
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired reset token")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load reset token")
	}

	userID, err := uuid.Parse(stored)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode reset token subject")
	}

	hash, err := security.HashPassword(newPassword, s.pwdCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.repo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update password")
	}

	if err := s.tokens.Del(ctx, key); err != nil {
		s.logg.Error(ctx, "deleting reset token", err)
	}
	return nil
}

func newResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
