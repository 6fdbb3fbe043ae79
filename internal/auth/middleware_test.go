package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/recouvrement-service/internal/domain"
	apperrors "github.com/spec-kit/recouvrement-service/pkg/util"
)

type fakeUserRepo struct {
	users map[int64]*domain.User
}

func (f *fakeUserRepo) Create(context.Context, *domain.User) error { return nil }
func (f *fakeUserRepo) Update(context.Context, *domain.User) error { return nil }
func (f *fakeUserRepo) SetActive(context.Context, int64, bool) error {
	return nil
}
func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}
func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func newGateApp(t *testing.T, codec *TokenCodec, store RevocationStore, repo *fakeUserRepo) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil {
			domainErr := apperrors.ToDomainError(err)
			c.Status(domainErr.HTTPStatus)
			return c.JSON(fiber.Map{"error": fiber.Map{"code": domainErr.Code}})
		}
		return nil
	})
	middleware := NewAuthMiddleware(codec, store, repo)
	app.Get("/protected", middleware.Handle, func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		return c.JSON(fiber.Map{"user_id": principal.User.ID})
	})
	return app
}

func gateRequest(t *testing.T, app *fiber.App, authHeader string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body.Error.Code
}

func TestGateOrderedChecks(t *testing.T) {
	codec := newTestCodec(t)
	user := testUser()
	repo := &fakeUserRepo{users: map[int64]*domain.User{user.ID: user}}

	issue := func(u *domain.User) string {
		token, err := codec.IssueAccess(u, time.Now())
		require.NoError(t, err)
		return token
	}

	t.Run("missing header", func(t *testing.T) {
		app := newGateApp(t, codec, NewMemoryRevocationStore(), repo)
		status, code := gateRequest(t, app, "")
		require.Equal(t, http.StatusUnauthorized, status)
		require.Equal(t, "MISSING_CREDENTIALS", code)
	})

	t.Run("malformed header", func(t *testing.T) {
		app := newGateApp(t, codec, NewMemoryRevocationStore(), repo)
		status, code := gateRequest(t, app, "Basic abc123")
		require.Equal(t, http.StatusUnauthorized, status)
		require.Equal(t, "MISSING_CREDENTIALS", code)
	})

	t.Run("revoked token", func(t *testing.T) {
		store := NewMemoryRevocationStore()
		token := issue(user)
		require.NoError(t, store.RevokeToken(context.Background(), token, time.Hour))

		app := newGateApp(t, codec, store, repo)
		status, code := gateRequest(t, app, "Bearer "+token)
		require.Equal(t, http.StatusUnauthorized, status)
		require.Equal(t, "REVOKED", code)
	})

	t.Run("invalid token", func(t *testing.T) {
		app := newGateApp(t, codec, NewMemoryRevocationStore(), repo)
		status, code := gateRequest(t, app, "Bearer garbage")
		require.Equal(t, http.StatusUnauthorized, status)
		require.Equal(t, "INVALID_TOKEN", code)
	})

	t.Run("refresh token rejected on access route", func(t *testing.T) {
		refresh, err := codec.IssueRefresh(user.ID, time.Now())
		require.NoError(t, err)

		app := newGateApp(t, codec, NewMemoryRevocationStore(), repo)
		status, code := gateRequest(t, app, "Bearer "+refresh)
		require.Equal(t, http.StatusUnauthorized, status)
		require.Equal(t, "INVALID_TOKEN", code)
	})

	t.Run("logged out since", func(t *testing.T) {
		store := NewMemoryRevocationStore()
		token := issue(user)
		// cutoff recorded after the token's iat
		store.now = func() time.Time { return time.Now().Add(time.Minute) }
		require.NoError(t, store.RevokeAllForUser(context.Background(), user.ID, time.Hour))
		store.now = time.Now

		app := newGateApp(t, codec, store, repo)
		status, code := gateRequest(t, app, "Bearer "+token)
		require.Equal(t, http.StatusUnauthorized, status)
		require.Equal(t, "SESSION_EXPIRED", code)
	})

	t.Run("token issued after logout-all is accepted", func(t *testing.T) {
		store := NewMemoryRevocationStore()
		require.NoError(t, store.RevokeAllForUser(context.Background(), user.ID, time.Hour))

		token, err := codec.IssueAccess(user, time.Now().Add(time.Minute))
		require.NoError(t, err)

		app := newGateApp(t, codec, store, repo)
		status, _ := gateRequest(t, app, "Bearer "+token)
		require.Equal(t, http.StatusOK, status)
	})

	t.Run("unknown subject", func(t *testing.T) {
		ghost := testUser()
		ghost.ID = 999

		app := newGateApp(t, codec, NewMemoryRevocationStore(), repo)
		status, code := gateRequest(t, app, "Bearer "+issue(ghost))
		require.Equal(t, http.StatusUnauthorized, status)
		require.Equal(t, "INVALID_TOKEN", code)
	})

	t.Run("deactivated account", func(t *testing.T) {
		disabled := testUser()
		disabled.ID = 12
		disabled.Actif = false
		repoWithDisabled := &fakeUserRepo{users: map[int64]*domain.User{disabled.ID: disabled}}

		app := newGateApp(t, codec, NewMemoryRevocationStore(), repoWithDisabled)
		status, code := gateRequest(t, app, "Bearer "+issue(disabled))
		require.Equal(t, http.StatusForbidden, status)
		require.Equal(t, "ACCOUNT_DISABLED", code)
	})

	t.Run("authenticated", func(t *testing.T) {
		app := newGateApp(t, codec, NewMemoryRevocationStore(), repo)
		status, _ := gateRequest(t, app, "Bearer "+issue(user))
		require.Equal(t, http.StatusOK, status)
	})
}

func TestGateRevokedWinsOverInvalid(t *testing.T) {
	// the blacklist is consulted before decode, so even a token that would
	// fail validation reports REVOKED once blacklisted
	codec := newTestCodec(t)
	store := NewMemoryRevocationStore()
	repo := &fakeUserRepo{users: map[int64]*domain.User{}}

	expired, err := codec.IssueAccess(testUser(), time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	require.NoError(t, store.RevokeToken(context.Background(), expired, time.Hour))

	app := newGateApp(t, codec, store, repo)
	status, code := gateRequest(t, app, "Bearer "+expired)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "REVOKED", code)
}
