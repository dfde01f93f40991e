package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "github.com/bareera786/ai-trading-bot-sub001/internal/errors"
	"github.com/bareera786/ai-trading-bot-sub001/internal/middleware"
	"github.com/bareera786/ai-trading-bot-sub001/internal/model"
	"github.com/bareera786/ai-trading-bot-sub001/internal/service"
)

// UserHandler handles the admin user-management routes and the per-user
// profile routes.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// ListUsers returns every user record. ADMIN only.
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return errorJSON(err)
	}

	public := make([]model.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}
	return c.JSON(http.StatusOK, echo.Map{"users": public})
}

// GetUser returns a single user by id. ADMIN only.
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errorJSON(apperrors.ErrValidation)
	}

	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return errorJSON(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user.Public()})
}

// UpdateUser applies partial field changes to a user. ADMIN only; this is
// the one route that may change a role.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errorJSON(apperrors.ErrValidation)
	}

	var update service.UserUpdate
	if err := c.Bind(&update); err != nil {
		return errorJSON(apperrors.ErrValidation)
	}

	changed, err := h.svc.UpdateUser(c.Request().Context(), id, update)
	if err != nil {
		return errorJSON(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": changed})
}

// DeleteUser removes a user record. ADMIN only.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errorJSON(apperrors.ErrValidation)
	}

	deleted, err := h.svc.DeleteUser(c.Request().Context(), id)
	if err != nil {
		return errorJSON(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": deleted})
}

// Me returns the calling user's own record, resolved from the gate's claims.
func (h *UserHandler) Me(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return errorJSON(apperrors.ErrUnauthenticated)
	}

	user, err := h.svc.GetUser(c.Request().Context(), claims.UserID)
	if err != nil {
		return errorJSON(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user.Public()})
}

// UpdateMe lets the calling user change their own email or password. Role
// and username stay fixed regardless of what the body carries.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return errorJSON(apperrors.ErrUnauthenticated)
	}

	var body service.UserUpdate
	if err := c.Bind(&body); err != nil {
		return errorJSON(apperrors.ErrValidation)
	}
	update := service.UserUpdate{
		Email:    body.Email,
		Password: body.Password,
	}

	changed, err := h.svc.UpdateUser(c.Request().Context(), claims.UserID, update)
	if err != nil {
		return errorJSON(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": changed})
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
