package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse(t *testing.T) {
	tok, err := Generate(secret, "u-1", "ana@lumina.test", "admin", "lumina-test", 60)
	require.NoError(t, err)

	claims, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "ana@lumina.test", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.ID, "cada token lleva un jti propio")
	assert.InDelta(t, time.Hour.Seconds(), claims.ExpiresIn(time.Now()).Seconds(), 5)
}

func TestGenerate_DistinctTokenIDs(t *testing.T) {
	a, err := Generate(secret, "u-1", "a@b.c", "user", "i", 5)
	require.NoError(t, err)
	b, err := Generate(secret, "u-1", "a@b.c", "user", "i", 5)
	require.NoError(t, err)

	ca, _ := Parse(secret, a)
	cb, _ := Parse(secret, b)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := Generate(secret, "u-1", "a@b.c", "user", "i", 5)
	require.NoError(t, err)

	_, err = Parse("otro-secreto", tok)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	tok, err := Generate(secret, "u-1", "a@b.c", "user", "i", -1)
	require.NoError(t, err)

	_, err = Parse(secret, tok)
	assert.Error(t, err)
}

func TestEmptySecret(t *testing.T) {
	_, err := Generate("", "u", "e", "r", "i", 1)
	assert.Error(t, err)
	_, err = Parse("", "x")
	assert.Error(t, err)
}
