package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bareera786/ai-trading-bot-sub001/internal/engine"
	apperrors "github.com/bareera786/ai-trading-bot-sub001/internal/errors"
)

// BotHandler relays control commands to the external trading engine. All
// routes are ADMIN-gated.
type BotHandler struct {
	engine engine.Engine
}

// NewBotHandler creates a bot control handler.
func NewBotHandler(eng engine.Engine) *BotHandler {
	return &BotHandler{engine: eng}
}

// StrategyRequest selects the strategy the engine should trade with.
type StrategyRequest struct {
	Strategy string `json:"strategy" validate:"required"`
}

// Start asks the engine to begin trading.
func (h *BotHandler) Start(c echo.Context) error {
	if err := h.engine.Start(c.Request().Context()); err != nil {
		return errorJSON(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "bot started"})
}

// Stop asks the engine to halt trading.
func (h *BotHandler) Stop(c echo.Context) error {
	if err := h.engine.Stop(c.Request().Context()); err != nil {
		return errorJSON(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "bot stopped"})
}

// Status reports the engine's current state.
func (h *BotHandler) Status(c echo.Context) error {
	status, err := h.engine.Status(c.Request().Context())
	if err != nil {
		return errorJSON(err)
	}
	return c.JSON(http.StatusOK, status)
}

// SetStrategy switches the engine's trading strategy.
func (h *BotHandler) SetStrategy(c echo.Context) error {
	var req StrategyRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(apperrors.ErrValidation)
	}
	if err := c.Validate(&req); err != nil {
		return errorJSON(apperrors.ErrValidation)
	}

	if err := h.engine.SetStrategy(c.Request().Context(), req.Strategy); err != nil {
		return errorJSON(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "strategy updated", "strategy": req.Strategy})
}
