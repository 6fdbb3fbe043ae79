package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/recouvrement-service/internal/domain"
)

// Token kinds carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// ErrInvalidToken covers malformed, tampered, expired and wrong-algorithm tokens.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims describes the JWT payload. Access tokens carry the full identity
// snapshot so authenticated requests need no extra database round trip;
// refresh tokens carry the subject only.
type Claims struct {
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	AgenceID  *int64 `json:"agence_id,omitempty"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// UserID parses the string subject back into the numeric user id.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// TokenCodec issues and validates signed access/refresh tokens. Validation is
// stateless; revocation is the gate's concern.
type TokenCodec struct {
	secret     []byte
	method     *jwt.SigningMethodHMAC
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenCodec builds a codec for the given symmetric secret and algorithm
// identifier (HS256, HS384 or HS512).
func NewTokenCodec(secret, algorithm string, accessTTL, refreshTTL time.Duration) (*TokenCodec, error) {
	var method *jwt.SigningMethodHMAC
	switch algorithm {
	case "", "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenCodec{
		secret:     []byte(secret),
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// AccessTTL returns the configured access token lifetime. Revocation records
// for logout-all share this window.
func (tc *TokenCodec) AccessTTL() time.Duration {
	return tc.accessTTL
}

// IssueAccess signs an access token snapshotting the user's identity.
// The subject is always serialized as a string.
func (tc *TokenCodec) IssueAccess(user *domain.User, now time.Time) (string, error) {
	claims := &Claims{
		Email:     user.Email,
		Role:      string(user.Role),
		AgenceID:  user.AgenceID,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(tc.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(tc.method, claims).SignedString(tc.secret)
}

// IssueRefresh signs a refresh token carrying the subject only.
func (tc *TokenCodec) IssueRefresh(userID int64, now time.Time) (string, error) {
	claims := &Claims{
		TokenType: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(tc.refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(tc.method, claims).SignedString(tc.secret)
}

// Decode verifies signature and expiry and returns the claims. Any failure
// maps to ErrInvalidToken.
func (tc *TokenCodec) Decode(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != tc.method {
			return nil, ErrInvalidToken
		}
		return tc.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
