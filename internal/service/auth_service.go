package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/recouvrement-service/internal/auth"
	"github.com/spec-kit/recouvrement-service/internal/config"
	"github.com/spec-kit/recouvrement-service/internal/domain"
	"github.com/spec-kit/recouvrement-service/internal/events"
	"github.com/spec-kit/recouvrement-service/internal/repository"
	apperrors "github.com/spec-kit/recouvrement-service/pkg/util"
)

// TokenPair bundles the access/refresh tokens returned by login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RequestMeta carries caller metadata forwarded to audit events.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// AuthService coordinates login, refresh and logout flows.
type AuthService struct {
	users      repository.UserRepository
	codec      *auth.TokenCodec
	store      auth.RevocationStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
	now        func() time.Time
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Codec      *auth.TokenCodec
	Store      auth.RevocationStore
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		codec:      deps.Codec,
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: cfg.Auth.BcryptCost,
		now:        time.Now,
	}
}

// Codec exposes the token codec for middleware wiring.
func (s *AuthService) Codec() *auth.TokenCodec {
	return s.codec
}

// Login authenticates by email and password and issues a token pair.
// Unknown email and wrong password map to the same rejection.
func (s *AuthService) Login(ctx context.Context, email, password string, meta RequestMeta) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewInvalidCredentials()
		}
		return nil, nil, apperrors.MapError(err)
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, nil, apperrors.NewInvalidCredentials()
	}
	if !user.Actif {
		return nil, nil, apperrors.NewAccountDisabled()
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventAuthLogin, user, meta)
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The blacklist and
// the logout-all cutoff are not consulted here, matching the legacy behavior.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string, meta RequestMeta) (*TokenPair, error) {
	claims, err := s.codec.Decode(refreshToken)
	if err != nil {
		return nil, apperrors.NewInvalidToken()
	}
	if claims.TokenType != auth.TokenTypeRefresh {
		return nil, apperrors.NewInvalidToken()
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, apperrors.NewInvalidToken()
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewInvalidToken()
		}
		return nil, apperrors.MapError(err)
	}
	if !user.Actif {
		return nil, apperrors.NewInvalidToken()
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventAuthRefresh, user, meta)
	return pair, nil
}

// Logout revokes the presented access token for its remaining lifetime.
// The caller always sees success: once the client discards the token the
// intended effect holds even when the store write failed.
func (s *AuthService) Logout(ctx context.Context, rawToken string, user *domain.User, meta RequestMeta) {
	claims, err := s.codec.Decode(rawToken)
	if err == nil && claims.ExpiresAt != nil {
		remaining := time.Until(claims.ExpiresAt.Time)
		if err := s.store.RevokeToken(ctx, rawToken, remaining); err != nil {
			s.logger.Warn("token revocation failed, logout recorded anyway", zap.Error(err))
		}
	}

	s.publish(ctx, events.EventAuthLogout, user, meta)
}

// ChangePassword verifies the current password, stores the new hash and
// writes the logout-all cutoff so every outstanding session must
// re-authenticate with the new credentials.
func (s *AuthService) ChangePassword(ctx context.Context, user *domain.User, currentPassword, newPassword string, meta RequestMeta) error {
	if !auth.VerifyPassword(user.PasswordHash, currentPassword) {
		return apperrors.NewInvalidCredentials()
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.MapError(err)
	}

	if err := s.store.RevokeAllForUser(ctx, user.ID, s.codec.AccessTTL()); err != nil {
		return apperrors.NewStoreUnavailable(err)
	}

	s.publish(ctx, events.EventAuthLogoutAll, user, meta)
	return nil
}

// LogoutAll writes the per-user cutoff invalidating every token issued before
// now. Unlike single logout, a store failure is surfaced.
func (s *AuthService) LogoutAll(ctx context.Context, user *domain.User, meta RequestMeta) error {
	if err := s.store.RevokeAllForUser(ctx, user.ID, s.codec.AccessTTL()); err != nil {
		return apperrors.NewStoreUnavailable(err)
	}

	s.publish(ctx, events.EventAuthLogoutAll, user, meta)
	return nil
}

func (s *AuthService) issuePair(user *domain.User) (*TokenPair, error) {
	now := s.now()
	access, err := s.codec.IssueAccess(user, now)
	if err != nil {
		return nil, err
	}
	refresh, err := s.codec.IssueRefresh(user.ID, now)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, user *domain.User, meta RequestMeta) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    user.ID,
		Timestamp: s.now(),
		Payload: events.AuthEventPayload{
			Email:     user.Email,
			IPAddress: meta.IPAddress,
			UserAgent: meta.UserAgent,
		},
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("audit event publish failed", zap.String("event", string(eventType)), zap.Error(err))
	}
}
