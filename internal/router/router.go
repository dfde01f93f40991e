package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/bareera786/ai-trading-bot-sub001/internal/auth"
	"github.com/bareera786/ai-trading-bot-sub001/internal/config"
	"github.com/bareera786/ai-trading-bot-sub001/internal/handler"
	"github.com/bareera786/ai-trading-bot-sub001/internal/middleware"
	"github.com/bareera786/ai-trading-bot-sub001/internal/model"
)

// Register wires routes and middleware. Every route passes its group's rate
// limiter first; protected routes then pass the token gate and, where
// required, the role gate.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	limiter *middleware.RateLimiter,
	tokens *auth.JWTService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	botHandler *handler.BotHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	authLimit := limiter.Middleware(cfg.AuthRouteCeiling)
	apiLimit := limiter.Middleware(cfg.APIRouteCeiling)

	accessGate := middleware.RequireToken(tokens, auth.AccessTokenClass)
	refreshGate := middleware.RequireToken(tokens, auth.RefreshTokenClass)
	adminOnly := middleware.RequireRole(model.RoleAdmin)
	userOnly := middleware.RequireRole(model.RoleUser)

	// Auth flows. Refresh is the only one behind a gate, and that gate uses
	// the refresh-token secret class.
	e.POST("/register", authHandler.Register, authLimit)
	e.POST("/login", authHandler.Login, authLimit)
	e.POST("/refresh", authHandler.Refresh, authLimit, refreshGate)
	e.POST("/logout", authHandler.Logout, authLimit)

	// Admin user management.
	users := e.Group("/users", apiLimit, accessGate)
	users.GET("", userHandler.ListUsers, adminOnly)
	users.GET("/:id", userHandler.GetUser, adminOnly)
	users.PUT("/:id", userHandler.UpdateUser, adminOnly)
	users.DELETE("/:id", userHandler.DeleteUser, adminOnly)

	// Profile self-service. The role check is flat equality, so these are
	// reachable by USER callers only.
	users.GET("/profile/me", userHandler.Me, userOnly)
	users.PUT("/profile/me", userHandler.UpdateMe, userOnly)

	// Trading engine controls.
	bot := e.Group("/bot", apiLimit, accessGate, adminOnly)
	bot.POST("/start", botHandler.Start)
	bot.POST("/stop", botHandler.Stop)
	bot.GET("/status", botHandler.Status)
	bot.PUT("/strategy", botHandler.SetStrategy)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
