package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	apperrors "github.com/bareera786/ai-trading-bot-sub001/internal/errors"
)

// TokenClass selects which signing secret a token is bound to. Access and
// refresh tokens use distinct secrets so neither class can stand in for the
// other.
type TokenClass int

const (
	// AccessTokenClass marks short-lived tokens authorizing individual requests.
	AccessTokenClass TokenClass = iota
	// RefreshTokenClass marks longer-lived tokens used only to mint new access tokens.
	RefreshTokenClass
)

// Claims is the identity payload embedded in every token.
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies signed, time-bounded tokens. Verification is
// purely computational; no store is consulted, so a token cannot be revoked
// before its natural expiry.
type JWTService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTService creates a token service with per-class secrets and lifetimes.
func NewJWTService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTService {
	return &JWTService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccessToken signs a short-lived token carrying {id, role}.
func (s *JWTService) IssueAccessToken(userID uint, role string) (string, error) {
	return s.issue(userID, role, s.accessSecret, s.accessTTL, "")
}

// IssueRefreshToken signs a long-lived token carrying {id, role} with a
// unique JTI.
func (s *JWTService) IssueRefreshToken(userID uint, role string) (string, error) {
	return s.issue(userID, role, s.refreshSecret, s.refreshTTL, uuid.New().String())
}

func (s *JWTService) issue(userID uint, role string, secret []byte, ttl time.Duration, jti string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Verify validates a token against the given class's secret and returns its
// claims. It returns ErrExpiredToken when the embedded expiry has elapsed and
// ErrInvalidToken for any signature, shape, or class mismatch.
func (s *JWTService) Verify(tokenString string, class TokenClass) (*Claims, error) {
	secret := s.accessSecret
	if class == RefreshTokenClass {
		secret = s.refreshSecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrExpiredToken
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
