package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/bareera786/ai-trading-bot-sub001/internal/errors"
	"github.com/bareera786/ai-trading-bot-sub001/internal/middleware"
	"github.com/bareera786/ai-trading-bot-sub001/internal/service"
)

// AuthHandler handles registration, login, token refresh, and logout.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register creates a new user. The first user registered on an empty store
// receives the ADMIN role.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(apperrors.ErrValidation)
	}
	if err := c.Validate(&req); err != nil {
		return errorJSON(apperrors.ErrValidation)
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return errorJSON(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "user registered successfully",
		"user": echo.Map{
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

// Login verifies credentials and returns an access/refresh token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(apperrors.ErrValidation)
	}
	if err := c.Validate(&req); err != nil {
		return errorJSON(apperrors.ErrValidation)
	}

	accessToken, refreshToken, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return errorJSON(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"user": echo.Map{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

// Refresh mints a new access token. The route is gated with the
// refresh-token secret class, so the claims on the context are already
// verified.
func (h *AuthHandler) Refresh(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return errorJSON(apperrors.ErrUnauthenticated)
	}

	accessToken, err := h.authService.Refresh(claims)
	if err != nil {
		return errorJSON(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"accessToken": accessToken})
}

// Logout acknowledges the request. Tokens are stateless and are not revoked
// server-side; the client is expected to discard them.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// errorJSON translates a domain error into an echo error carrying the
// standard {error, code} envelope.
func errorJSON(err error) *echo.HTTPError {
	he := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}
