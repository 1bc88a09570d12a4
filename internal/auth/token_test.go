package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_RoundTrip(t *testing.T) {
	tokens, err := NewTokens("test-secret", time.Hour)
	require.NoError(t, err)

	s, err := tokens.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, s)

	id, err := tokens.Verify(s)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestTokens_EmptySecret(t *testing.T) {
	_, err := NewTokens("", time.Hour)
	assert.Error(t, err)
}

func TestTokens_WrongSecret(t *testing.T) {
	issuer, err := NewTokens("secret-a", time.Hour)
	require.NoError(t, err)
	verifier, err := NewTokens("secret-b", time.Hour)
	require.NoError(t, err)

	s, err := issuer.Issue(1)
	require.NoError(t, err)

	_, err = verifier.Verify(s)
	assert.Error(t, err)
}

func TestTokens_Garbage(t *testing.T) {
	tokens, err := NewTokens("test-secret", time.Hour)
	require.NoError(t, err)

	_, err = tokens.Verify("not-a-token")
	assert.Error(t, err)

	_, err = tokens.Verify("")
	assert.Error(t, err)
}

func TestTokens_Expired(t *testing.T) {
	tokens, err := NewTokens("test-secret", time.Millisecond)
	require.NoError(t, err)

	s, err := tokens.Issue(7)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = tokens.Verify(s)
	assert.Error(t, err)
}
