package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/recouvrement-service/internal/domain"
	"github.com/spec-kit/recouvrement-service/internal/repository"
	apperrors "github.com/spec-kit/recouvrement-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	User     *domain.User
	Claims   *Claims
	RawToken string
}

// AuthMiddleware validates bearer tokens and loads principals. Checks run in
// a fixed order and every one is a hard gate: blacklist, then signature and
// expiry, then token kind, then the logout-all cutoff (which needs the
// verified iat), then user lookup and active-account status.
type AuthMiddleware struct {
	codec *TokenCodec
	store RevocationStore
	users repository.UserRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(codec *TokenCodec, store RevocationStore, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{codec: codec, store: store, users: users}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	rawToken, ok := bearerToken(c)
	if !ok {
		return apperrors.NewMissingCredentials()
	}

	if m.store.IsRevoked(c.Context(), rawToken) {
		return apperrors.NewRevoked()
	}

	claims, err := m.codec.Decode(rawToken)
	if err != nil {
		return apperrors.NewInvalidToken()
	}
	if claims.TokenType != TokenTypeAccess || claims.Subject == "" {
		return apperrors.NewInvalidToken()
	}
	userID, err := claims.UserID()
	if err != nil {
		return apperrors.NewInvalidToken()
	}

	issuedAt := time.Time{}
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}
	if m.store.IsLoggedOutSince(c.Context(), userID, issuedAt) {
		return apperrors.NewSessionExpired()
	}

	user, err := m.users.GetByID(c.Context(), userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewInvalidToken()
		}
		return apperrors.MapError(err)
	}
	if !user.Actif {
		return apperrors.NewAccountDisabled()
	}

	c.Locals(principalKey, &Principal{User: user, Claims: claims, RawToken: rawToken})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
