package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/recouvrement-service/internal/domain"
)

func TestRequireRole(t *testing.T) {
	codec := newTestCodec(t)
	agent := testUser()
	admin := testUser()
	admin.ID = 2
	admin.Email = "admin@b.com"
	admin.Role = domain.RoleAdmin

	repo := &fakeUserRepo{users: map[int64]*domain.User{agent.ID: agent, admin.ID: admin}}
	middleware := NewAuthMiddleware(codec, NewMemoryRevocationStore(), repo)

	app := fiber.New()
	app.Get("/admin", middleware.Handle, RequireRole(domain.RoleAdmin, domain.RoleDGA), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	app.Get("/any", middleware.Handle, RequireRole(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	request := func(path string, user *domain.User) int {
		token, err := codec.IssueAccess(user, time.Now())
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	require.Equal(t, http.StatusOK, request("/admin", admin))
	require.Equal(t, http.StatusForbidden, request("/admin", agent))
	require.Equal(t, http.StatusOK, request("/any", agent))
}
