package token_test

import (
	"testing"
	"time"

	"devconnector-backend/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	svc := token.NewService("test-secret", time.Minute)

	signed, err := svc.Issue("user-123")
	require.NoError(t, err)
	assert.NotEmpty(t, signed)

	userID, err := svc.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := token.NewService("test-secret", -time.Minute)

	signed, err := svc.Issue("user-123")
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, token.ErrExpiredToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := token.NewService("secret-a", time.Minute)
	verifier := token.NewService("secret-b", time.Minute)

	signed, err := issuer.Issue("user-123")
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerifyMalformedToken(t *testing.T) {
	svc := token.NewService("test-secret", time.Minute)

	_, err := svc.Verify("not-a-token")
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestDefaultTTL(t *testing.T) {
	assert.Equal(t, 360000*time.Second, token.DefaultTTL)
}
