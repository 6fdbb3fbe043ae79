package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/recouvrement-service/internal/api/dto"
	"github.com/spec-kit/recouvrement-service/internal/auth"
	"github.com/spec-kit/recouvrement-service/internal/service"
	apperrors "github.com/spec-kit/recouvrement-service/pkg/util"
)

const tokenTypeBearer = "bearer"

// AuthHandler exposes session endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login. OAuth2 password form: the username field
// carries the email.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("username")
	password := c.FormValue("password")
	if email == "" || password == "" {
		return fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	_, pair, err := h.auth.Login(c.Context(), email, password, requestMeta(c))
	if err != nil {
		return err
	}

	return c.JSON(dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    tokenTypeBearer,
	})
}

// LoginJSON handles POST /auth/login-json and additionally returns the
// identity snapshot.
func (h *AuthHandler) LoginJSON(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	user, pair, err := h.auth.Login(c.Context(), req.Email, req.Password, requestMeta(c))
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    tokenTypeBearer,
		User:         dto.NewUserProfile(user),
	})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.RefreshToken == "" {
		return fiber.NewError(http.StatusBadRequest, "refresh_token required")
	}

	pair, err := h.auth.Refresh(c.Context(), req.RefreshToken, requestMeta(c))
	if err != nil {
		return err
	}

	return c.JSON(dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    tokenTypeBearer,
	})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewMissingCredentials()
	}
	return c.JSON(dto.NewUserProfile(principal.User))
}

// Logout handles POST /auth/logout. Always reports success: once the client
// discards its token the logout holds regardless of the store write.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewMissingCredentials()
	}

	h.auth.Logout(c.Context(), principal.RawToken, principal.User, requestMeta(c))

	return c.JSON(fiber.Map{
		"message": "logged out",
		"detail":  "your token has been revoked",
	})
}

// ChangePassword handles POST /auth/change-password. Success revokes every
// outstanding session for the user.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewMissingCredentials()
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return fiber.NewError(http.StatusBadRequest, "current_password and new_password required")
	}

	if err := h.auth.ChangePassword(c.Context(), principal.User, req.CurrentPassword, req.NewPassword, requestMeta(c)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "password changed",
		"detail":  "all your sessions have been revoked",
	})
}

// LogoutAll handles POST /auth/logout-all.
func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewMissingCredentials()
	}

	if err := h.auth.LogoutAll(c.Context(), principal.User, requestMeta(c)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "logged out on all devices",
		"detail":  "all your tokens have been revoked",
	})
}

func requestMeta(c *fiber.Ctx) service.RequestMeta {
	return service.RequestMeta{
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
	}
}
