package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tap-order-pay/internal/config"
)

func newService(secret string) *TokenService {
	return NewTokenService(config.Config{JWTSecret: secret, JWTExpiresIn: time.Hour})
}

func TestGenerateAndParse(t *testing.T) {
	s := newService("secret")
	tok, err := s.GenerateToken(42)
	require.NoError(t, err)

	id, err := s.ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestGenerateRejectsNonPositiveID(t *testing.T) {
	_, err := newService("secret").GenerateToken(0)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestParseWrongSecret(t *testing.T) {
	tok, err := newService("one").GenerateToken(7)
	require.NoError(t, err)

	_, err = newService("two").ParseToken(tok)
	assert.Error(t, err)
}

func TestParseExpired(t *testing.T) {
	s := newService("secret")
	tok, err := s.GenerateToken(7)
	require.NoError(t, err)

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = s.ParseToken(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseMissingClaim(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	str, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = newService("secret").ParseToken(str)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestParseRejectsOtherAlgorithms(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RestaurantID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	str, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = newService("secret").ParseToken(str)
	assert.Error(t, err)
}

func TestParseRequiresExpiry(t *testing.T) {
	str, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{RestaurantID: 7}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = newService("secret").ParseToken(str)
	assert.Error(t, err)
}
