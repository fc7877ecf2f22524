package handlers

import (
	"errors"
	"strings"
	"time"

	"harambee-sacco/internal/config"
	"harambee-sacco/internal/core/services"
	"harambee-sacco/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, userService *services.UserService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		cfg:         cfg,
	}
}

// Register creates a new member account
// @Summary Register
// @Description Register a new member account
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body services.RegisterInput true "Registration input"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if input.Username == "" || input.Email == "" || len(input.Password) < 8 {
		return response.BadRequest(c, "Username, email and a password of at least 8 characters are required")
	}

	auth, err := h.authService.Register(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			return response.Conflict(c, "Username already taken.")
		case errors.Is(err, services.ErrEmailTaken):
			return response.Conflict(c, "Email already registered.")
		default:
			return response.InternalServerError(c, "Registration failed")
		}
	}

	h.setTokenCookies(c, auth.AccessToken, auth.RefreshToken)
	return response.Created(c, "Account created", auth)
}

// Login authenticates a member
// @Summary Login
// @Description Authenticate with username and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body services.LoginInput true "Login input"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	auth, err := h.authService.Login(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return response.Unauthorized(c, "Invalid username or password.")
		case errors.Is(err, services.ErrUserInactive):
			return response.Forbidden(c, "Account is inactive")
		default:
			return response.InternalServerError(c, "Login failed")
		}
	}

	h.setTokenCookies(c, auth.AccessToken, auth.RefreshToken)
	return response.Success(c, "Login successful", auth)
}

// Refresh rotates the token pair
// @Summary Refresh tokens
// @Description Exchange a valid refresh token for a new token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := h.extractRefreshToken(c)
	if refreshToken == "" {
		return response.Unauthorized(c, "Refresh token required")
	}

	auth, err := h.authService.Refresh(c.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTokenExpired):
			return response.Unauthorized(c, "Refresh token expired")
		case errors.Is(err, services.ErrTokenRevoked):
			return response.Unauthorized(c, "Refresh token revoked")
		default:
			return response.Unauthorized(c, "Invalid refresh token")
		}
	}

	h.setTokenCookies(c, auth.AccessToken, auth.RefreshToken)
	return response.Success(c, "Tokens refreshed", auth)
}

// Logout revokes the refresh token and clears cookies
// @Summary Logout
// @Description Revoke the current refresh token
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := h.extractRefreshToken(c); token != "" {
		_ = h.authService.Logout(c.Context(), token)
	}

	h.clearTokenCookies(c)
	return response.Success(c, "Logged out", nil)
}

// Me returns the authenticated user's profile
// @Summary Current user
// @Description Get the authenticated user's profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.userService.GetByID(c.Context(), userID)
	if err != nil {
		return response.NotFound(c, "User not found")
	}

	return response.Success(c, "Profile retrieved", user.ToResponse())
}

func (h *AuthHandler) extractRefreshToken(c *fiber.Ctx) string {
	if token := c.Cookies("refresh_token"); token != "" {
		return token
	}

	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&body); err == nil {
		return body.RefreshToken
	}
	return ""
}

func (h *AuthHandler) setTokenCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Expires:  time.Now().Add(time.Duration(h.cfg.JWT.AccessTokenMins) * time.Minute),
		HTTPOnly: true,
		Secure:   h.cfg.Cookie.Secure,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Expires:  time.Now().Add(time.Duration(h.cfg.JWT.RefreshTokenDays) * 24 * time.Hour),
		HTTPOnly: true,
		Secure:   h.cfg.Cookie.Secure,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
		Path:     "/",
	})
}

func (h *AuthHandler) clearTokenCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: "access_token", Value: "", Expires: expired, HTTPOnly: true, Path: "/"})
	c.Cookie(&fiber.Cookie{Name: "refresh_token", Value: "", Expires: expired, HTTPOnly: true, Path: "/"})
}
