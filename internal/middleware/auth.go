package middleware

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/bareera786/ai-trading-bot-sub001/internal/auth"
	apperrors "github.com/bareera786/ai-trading-bot-sub001/internal/errors"
)

// ClaimsContextKey is where RequireToken stores verified claims on the echo
// context for downstream handlers.
const ClaimsContextKey = "authClaims"

// RequireToken returns middleware that extracts the bearer token from the
// Authorization header and verifies it against the given class's secret.
// A missing token answers 401; a failed verification answers 403. On success
// the typed claims are attached to the request context.
func RequireToken(tokens *auth.JWTService, class auth.TokenClass) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  ClaimsContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return tokens.Verify(tokenString, class)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			switch {
			case errors.Is(err, apperrors.ErrExpiredToken):
				return httpError(apperrors.ErrExpiredToken)
			case errors.Is(err, apperrors.ErrInvalidToken):
				return httpError(apperrors.ErrInvalidToken)
			default:
				// No usable token in the Authorization header.
				return httpError(apperrors.ErrUnauthenticated)
			}
		},
	})
}

// RequireRole returns middleware that rejects requests whose attached claims
// do not carry exactly the required role. The comparison is flat equality;
// ADMIN does not implicitly satisfy a USER-only gate.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return httpError(apperrors.ErrUnauthenticated)
			}
			if claims.Role != role {
				return httpError(apperrors.ErrForbidden)
			}
			return next(c)
		}
	}
}

// ClaimsFrom returns the verified claims attached by RequireToken.
func ClaimsFrom(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(ClaimsContextKey).(*auth.Claims)
	return claims, ok
}

func httpError(err error) *echo.HTTPError {
	he := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}
