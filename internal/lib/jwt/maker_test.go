package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTMaker_IssueAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	tokenTTL := 15 * time.Minute
	maker := NewJWTMaker(secretKey, tokenTTL)

	tests := []struct {
		name    string
		subject string
	}{
		{
			name:    "uuid subject",
			subject: uuid.New().String(),
		},
		{
			name:    "fixed uuid subject",
			subject: "550e8400-e29b-41d4-a716-446655440000",
		},
		{
			name:    "plain string subject",
			subject: "user123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.IssueToken(tt.subject)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			subject, err := maker.ParseToken(token)
			require.NoError(t, err)
			assert.Equal(t, tt.subject, subject)
		})
	}
}

func TestJWTMaker_IssueToken_EmptySubject(t *testing.T) {
	maker := NewJWTMaker("test_secret_key", 15*time.Minute)

	token, err := maker.IssueToken("")
	assert.ErrorIs(t, err, ErrEmptySubject)
	assert.Empty(t, token)
}

func TestJWTMaker_ParseToken_InvalidTokens(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	maker := NewJWTMaker(secretKey, 15*time.Minute)

	validToken, err := maker.IssueToken("testsubject")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "malformed token",
			token: "invalid.token.here",
		},
		{
			name:  "expired token",
			token: createExpiredToken(t, secretKey),
		},
		{
			name:  "wrong secret key",
			token: createTokenWithWrongSecret(t),
		},
		{
			name:  "tampered token",
			token: validToken + "tampered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, err := maker.ParseToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Empty(t, subject)
		})
	}
}

func TestJWTMaker_DifferentSecretKeys(t *testing.T) {
	maker1 := NewJWTMaker("first_secret_key", 15*time.Minute)
	maker2 := NewJWTMaker("different_secret_key", 15*time.Minute)

	token, err := maker1.IssueToken("testsubject")
	require.NoError(t, err)

	subject, err := maker2.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Empty(t, subject)

	subject, err = maker1.ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "testsubject", subject)
}

func TestJWTMaker_TokenExpiration(t *testing.T) {
	maker := NewJWTMaker("test_secret_key", 100*time.Millisecond)

	token, err := maker.IssueToken("testsubject")
	require.NoError(t, err)

	subject, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "testsubject", subject)

	time.Sleep(150 * time.Millisecond)

	_, err = maker.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func createExpiredToken(t *testing.T, secretKey string) string {
	maker := NewJWTMaker(secretKey, -time.Hour)
	token, err := maker.IssueToken("testsubject")
	require.NoError(t, err)
	return token
}

func createTokenWithWrongSecret(t *testing.T) string {
	wrongMaker := NewJWTMaker("wrong_secret_key", 15*time.Minute)
	token, err := wrongMaker.IssueToken("testsubject")
	require.NoError(t, err)
	return token
}
