package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"wefixit/internal/apperr"
	"wefixit/internal/model"
	"wefixit/pkg/logger"
	"wefixit/pkg/util"
)

const maxLoginFailures = 5

// Authenticator verifies admin credentials and issues a bearer token.
type Authenticator interface {
	Verify(ctx context.Context, username, password string) (string, error)
}

// LoginLimiter counts failed logins per username. pkg/util.RetryCounter
// satisfies it.
type LoginLimiter interface {
	IncrementAndGet(ctx context.Context, key string) (int64, error)
	Get(ctx context.Context, key string) (int64, error)
	Reset(ctx context.Context, key string) error
}

type AuthService struct {
	admins    AdminStore
	limiter   LoginLimiter
	jwtSecret string
	tokenTTL  time.Duration
	logger    *zap.Logger
}

func NewAuthService(admins AdminStore, limiter LoginLimiter, jwtSecret string, tokenTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		admins:    admins,
		limiter:   limiter,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

var _ Authenticator = (*AuthService)(nil)

// Verify checks the credentials and returns a signed token.
func (s *AuthService) Verify(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", apperr.Unauthorized("invalid username or password")
	}

	key := util.FormatLoginKey(username)
	if s.limiter != nil {
		n, err := s.limiter.Get(ctx, key)
		if err != nil {
			s.logger.Warn("Login limiter unavailable", zap.Error(err))
		} else if n >= maxLoginFailures {
			return "", apperr.Unauthorized("too many failed attempts, try again later")
		}
	}

	a, err := s.admins.FindByUsername(ctx, username)
	if apperr.IsNotFound(err) {
		s.recordFailure(ctx, key)
		return "", apperr.Unauthorized("invalid username or password")
	}
	if err != nil {
		return "", err
	}

	if !util.CheckPassword(password, a.PasswordHash) {
		s.recordFailure(ctx, key)
		logger.WithTrace(ctx, s.logger).Info("Admin login rejected", zap.String("username", username))
		return "", apperr.Unauthorized("invalid username or password")
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, key); err != nil {
			s.logger.Warn("Failed to reset login counter", zap.Error(err))
		}
	}

	token, err := util.GenerateJWT(a.Username, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", err
	}
	logger.WithTrace(ctx, s.logger).Info("Admin logged in", zap.String("username", username))
	return token, nil
}

func (s *AuthService) recordFailure(ctx context.Context, key string) {
	if s.limiter == nil {
		return
	}
	if _, err := s.limiter.IncrementAndGet(ctx, key); err != nil {
		s.logger.Warn("Failed to count login failure", zap.Error(err))
	}
}

// Me resolves a bearer token to its admin.
func (s *AuthService) Me(ctx context.Context, token string) (*model.Admin, error) {
	username, err := util.ParseJWT(token, s.jwtSecret)
	if err != nil {
		return nil, apperr.Unauthorized("invalid token")
	}
	return s.Admin(ctx, username)
}

// Admin loads an admin by username. An unknown username is unauthorized,
// since it only comes from a token.
func (s *AuthService) Admin(ctx context.Context, username string) (*model.Admin, error) {
	a, err := s.admins.FindByUsername(ctx, username)
	if apperr.IsNotFound(err) {
		return nil, apperr.Unauthorized("unknown admin")
	}
	return a, err
}

// Bootstrap creates the configured admin when it does not exist yet. It
// does nothing when either value is empty.
func (s *AuthService) Bootstrap(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil
	}

	_, err := s.admins.FindByUsername(ctx, username)
	if err == nil {
		s.logger.Info("Bootstrap admin already exists", zap.String("username", username))
		return nil
	}
	if !apperr.IsNotFound(err) {
		return err
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.admins.Create(ctx, &model.Admin{Username: username, PasswordHash: hash}); err != nil {
		return err
	}
	s.logger.Info("Bootstrap admin created", zap.String("username", username))
	return nil
}
