package auth

import (
	"errors"
	"testing"
	"time"

	"loanlink-backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCfg = config.AuthConfig{JWTSecret: "top-secret", Issuer: "loanlink", TokenTTL: time.Hour}

func TestMintAndParse(t *testing.T) {
	tok, err := Mint(testCfg, time.Now(), "  Ann@Example.COM ")
	require.NoError(t, err)

	claims, err := Parse(testCfg, tok)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.Equal(t, "loanlink", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestParse_Expired(t *testing.T) {
	tok, err := Mint(testCfg, time.Now().Add(-2*time.Hour), "ann@example.com")
	require.NoError(t, err)

	_, err = Parse(testCfg, tok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestParse_WrongSecretOrIssuer(t *testing.T) {
	tok, err := Mint(testCfg, time.Now(), "ann@example.com")
	require.NoError(t, err)

	other := testCfg
	other.JWTSecret = "different"
	_, err = Parse(other, tok)
	assert.Error(t, err)

	other = testCfg
	other.Issuer = "someone-else"
	_, err = Parse(other, tok)
	assert.Error(t, err)
}

func TestParse_MissingEmail(t *testing.T) {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    testCfg.Issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testCfg.JWTSecret))
	require.NoError(t, err)

	_, err = Parse(testCfg, tok)
	assert.ErrorIs(t, err, ErrMissingEmail)
}

func TestMint_Rejects(t *testing.T) {
	_, err := Mint(config.AuthConfig{}, time.Now(), "a@b.c")
	assert.Error(t, err)
	_, err = Mint(testCfg, time.Now(), "  ")
	assert.ErrorIs(t, err, ErrMissingEmail)
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("Bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", tok)

	_, ok = BearerToken("Basic Zm9v")
	assert.False(t, ok)
	_, ok = BearerToken("Bearer ")
	assert.False(t, ok)
	_, ok = BearerToken("")
	assert.False(t, ok)
}
