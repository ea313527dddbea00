package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pbx-admin/backend/internal/auth"
	"github.com/pbx-admin/backend/internal/config"
	"github.com/pbx-admin/backend/internal/models"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore is the user lookup surface needed for login. Implemented by
// repositories.UserRepo.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type AuthService struct {
	users UserStore
	audit *AuditService
	cfg   *config.Config
	log   *zap.Logger
}

func NewAuthService(users UserStore, audit *AuditService, cfg *config.Config, log *zap.Logger) *AuthService {
	return &AuthService{users: users, audit: audit, cfg: cfg, log: log}
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login verifies the password and issues access and refresh tokens. Every
// attempt, failed or not, leaves a LOGIN audit record; audit write failures
// are logged and never block the login itself.
func (s *AuthService) Login(ctx context.Context, email, password, ip string) (*TokenPair, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.recordLogin(ctx, nil, ip, models.AuditStatusFailed, map[string]any{"email": email, "reason": "user_not_found"})
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		actorID := user.ID.String()
		s.recordLogin(ctx, &actorID, ip, models.AuditStatusFailed, map[string]any{"reason": "bad_password"})
		return nil, nil, ErrInvalidCredentials
	}

	subject := auth.Subject{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		IsAdmin:   user.IsAdmin,
		ProfileID: user.ProfileID,
	}

	accessToken, err := auth.GenerateJWT(s.cfg.JWTAccessSecret, subject, s.cfg.AccessExpiration)
	if err != nil {
		return nil, nil, err
	}
	refreshToken, err := auth.GenerateJWT(s.cfg.JWTRefreshSecret, subject, s.cfg.RefreshExpiration)
	if err != nil {
		return nil, nil, err
	}

	actorID := user.ID.String()
	s.recordLogin(ctx, &actorID, ip, models.AuditStatusSucceeded, nil)

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, user, nil
}

// Logout only records the event; token invalidation is the client dropping
// the pair.
func (s *AuthService) Logout(ctx context.Context, actorID, ip string) {
	if err := s.audit.RecordAuth(ctx, &actorID, ip, models.AuditActionLogout, models.AuditStatusSucceeded, nil); err != nil {
		s.log.Warn("logout audit write failed", zap.Error(err))
	}
}

func (s *AuthService) recordLogin(ctx context.Context, actorID *string, ip, status string, meta map[string]any) {
	if err := s.audit.RecordAuth(ctx, actorID, ip, models.AuditActionLogin, status, meta); err != nil {
		s.log.Warn("login audit write failed", zap.Error(err))
	}
}
