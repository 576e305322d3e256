package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignParse(t *testing.T) {
	SetSecret("test-secret")

	tok, err := Sign("alice", time.Hour)
	require.NoError(t, err)

	claims, err := Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.UserID)
	assert.Equal(t, issuer, claims.Issuer)
}

func TestParseRejects(t *testing.T) {
	SetSecret("test-secret")

	expired, err := Sign("alice", -time.Minute)
	require.NoError(t, err)
	_, err = Parse(expired)
	assert.Error(t, err)

	foreign, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, Claims{UserID: "alice"}).SignedString([]byte("other"))
	require.NoError(t, err)
	_, err = Parse(foreign)
	assert.Error(t, err)

	noIssuer, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, Claims{UserID: "alice"}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = Parse(noIssuer)
	assert.Error(t, err)

	_, err = Parse("not-a-token")
	assert.Error(t, err)
}
