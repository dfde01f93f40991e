package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/bareera786/ai-trading-bot-sub001/internal/auth"
	"github.com/bareera786/ai-trading-bot-sub001/internal/model"
)

func newGateService() *auth.JWTService {
	return auth.NewJWTService("gate-access", "gate-refresh", 15*time.Minute, time.Hour)
}

func gateRequest(t *testing.T, mw echo.MiddlewareFunc, authorization string) (int, *auth.Claims) {
	t.Helper()

	e := echo.New()
	var seen *auth.Claims
	handler := mw(func(c echo.Context) error {
		seen, _ = ClaimsFrom(c)
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler(c)
	if err != nil {
		he, ok := err.(*echo.HTTPError)
		assert.True(t, ok, "expected *echo.HTTPError, got %T", err)
		return he.Code, seen
	}
	return rec.Code, seen
}

func TestRequireToken_MissingTokenIs401(t *testing.T) {
	mw := RequireToken(newGateService(), auth.AccessTokenClass)

	code, _ := gateRequest(t, mw, "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRequireToken_InvalidTokenIs403(t *testing.T) {
	mw := RequireToken(newGateService(), auth.AccessTokenClass)

	code, _ := gateRequest(t, mw, "Bearer garbage")
	assert.Equal(t, http.StatusForbidden, code)
}

func TestRequireToken_ExpiredTokenIs403(t *testing.T) {
	expired := auth.NewJWTService("gate-access", "gate-refresh", -time.Minute, -time.Minute)
	token, err := expired.IssueAccessToken(1, model.RoleUser)
	assert.NoError(t, err)

	mw := RequireToken(newGateService(), auth.AccessTokenClass)
	code, _ := gateRequest(t, mw, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestRequireToken_RefreshTokenRejectedByAccessGate(t *testing.T) {
	svc := newGateService()
	refreshToken, err := svc.IssueRefreshToken(1, model.RoleUser)
	assert.NoError(t, err)

	mw := RequireToken(svc, auth.AccessTokenClass)
	code, _ := gateRequest(t, mw, "Bearer "+refreshToken)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestRequireToken_RefreshGateAcceptsRefreshToken(t *testing.T) {
	svc := newGateService()
	token, err := svc.IssueRefreshToken(7, model.RoleUser)
	assert.NoError(t, err)

	mw := RequireToken(svc, auth.RefreshTokenClass)
	code, claims := gateRequest(t, mw, "Bearer "+token)
	assert.Equal(t, http.StatusOK, code)
	assert.NotNil(t, claims)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, model.RoleUser, claims.Role)
}

func TestRequireToken_AttachesClaims(t *testing.T) {
	svc := newGateService()
	token, err := svc.IssueAccessToken(42, model.RoleAdmin)
	assert.NoError(t, err)

	mw := RequireToken(svc, auth.AccessTokenClass)
	code, claims := gateRequest(t, mw, "Bearer "+token)
	assert.Equal(t, http.StatusOK, code)
	assert.NotNil(t, claims)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestRequireRole_FlatEquality(t *testing.T) {
	svc := newGateService()

	tests := []struct {
		name     string
		role     string
		required string
		want     int
	}{
		{name: "admin passes admin gate", role: model.RoleAdmin, required: model.RoleAdmin, want: http.StatusOK},
		{name: "user passes user gate", role: model.RoleUser, required: model.RoleUser, want: http.StatusOK},
		{name: "user rejected by admin gate", role: model.RoleUser, required: model.RoleAdmin, want: http.StatusForbidden},
		// No role hierarchy: ADMIN does not satisfy a USER-only gate.
		{name: "admin rejected by user gate", role: model.RoleAdmin, required: model.RoleUser, want: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.IssueAccessToken(1, tt.role)
			assert.NoError(t, err)

			gate := RequireToken(svc, auth.AccessTokenClass)
			roleGate := RequireRole(tt.required)

			e := echo.New()
			handler := gate(roleGate(func(c echo.Context) error {
				return c.String(http.StatusOK, "ok")
			}))

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := handler(c); err != nil {
				he, ok := err.(*echo.HTTPError)
				assert.True(t, ok)
				assert.Equal(t, tt.want, he.Code)
				return
			}
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequireRole_NoClaimsIs401(t *testing.T) {
	e := echo.New()
	handler := RequireRole(model.RoleAdmin)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}
