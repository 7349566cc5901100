// internal/auth/jwt.go
package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tap-order-pay/internal/config"
)

var ErrInvalidClaims = errors.New("invalid token claims")

// Claims bind a session to one restaurant.
type Claims struct {
	RestaurantID int64 `json:"restaurant_id"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secretKey []byte
	expiresIn time.Duration
	now       func() time.Time
}

func NewTokenService(cfg config.Config) *TokenService {
	return &TokenService{
		secretKey: []byte(cfg.JWTSecret),
		expiresIn: cfg.JWTExpiresIn,
		now:       time.Now,
	}
}

func (s *TokenService) GenerateToken(restaurantID int64) (string, error) {
	if restaurantID <= 0 {
		return "", fmt.Errorf("%w: restaurant_id must be positive", ErrInvalidClaims)
	}
	issuedAt := s.now()
	claims := Claims{
		RestaurantID: restaurantID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.expiresIn)),
		},
	}

	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	slog.Info("JWT generated", "restaurant_id", restaurantID, "expires_at", claims.ExpiresAt.Format(time.DateTime))
	return tokenStr, nil
}

// ParseToken returns the restaurant id carried by a valid HS256 token.
func (s *TokenService) ParseToken(tokenStr string) (int64, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return 0, err
	}
	if claims.RestaurantID <= 0 {
		return 0, ErrInvalidClaims
	}

	slog.Debug("JWT parsed successfully", "restaurant_id", claims.RestaurantID)
	return claims.RestaurantID, nil
}
