package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{
			name:     "regular password",
			password: "password123",
		},
		{
			name:     "password with special chars",
			password: "p@ssw0rd!@#$%^&*()",
		},
		{
			name:     "password of exactly max length",
			password: strings.Repeat("a", MaxPasswordLength),
		},
		{
			name:     "empty password",
			password: "",
			wantErr:  ErrEmptyPassword,
		},
		{
			name:     "password over max length",
			password: strings.Repeat("a", MaxPasswordLength+1),
			wantErr:  ErrPasswordTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotHash, err := GetHash(tt.password)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(gotHash, "$argon2id$"))

			ok, err := CompareHash(gotHash, tt.password)
			require.NoError(t, err)
			assert.True(t, ok, "generated hash doesn't verify with original password")
		})
	}
}

func TestCompareHash(t *testing.T) {
	correctHash, err := GetHash("correct_password")
	require.NoError(t, err)

	anotherHash, err := GetHash("another_password")
	require.NoError(t, err)

	tests := []struct {
		name        string
		hash        string
		password    string
		shouldMatch bool
		wantErr     error
	}{
		{
			name:        "matching password",
			hash:        correctHash,
			password:    "correct_password",
			shouldMatch: true,
		},
		{
			name:        "wrong password",
			hash:        correctHash,
			password:    "wrong_password",
			shouldMatch: false,
		},
		{
			name:        "different hash same password",
			hash:        anotherHash,
			password:    "correct_password",
			shouldMatch: false,
		},
		{
			name:     "empty password",
			hash:     correctHash,
			password: "",
			wantErr:  ErrEmptyPassword,
		},
		{
			name:     "too long password",
			hash:     correctHash,
			password: strings.Repeat("x", MaxPasswordLength+1),
			wantErr:  ErrPasswordTooLong,
		},
		{
			name:     "corrupted hash",
			hash:     "$bcrypt$not-argon2",
			password: "correct_password",
			wantErr:  ErrInvalidHash,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := CompareHash(tt.hash, tt.password)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.shouldMatch, ok)
		})
	}
}

func TestGetHash_SamePasswordProducesDifferentHashes(t *testing.T) {
	hash1, err := GetHash("password1")
	require.NoError(t, err)

	hash2, err := GetHash("password1")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2, "fresh salt must make hashes differ")

	for _, h := range []string{hash1, hash2} {
		ok, err := CompareHash(h, "password1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}
