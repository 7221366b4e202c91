package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signClaims(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestTokenManager_IssueThenParse(t *testing.T) {
	m := NewTokenManager(testSecret, 30*time.Minute)

	token, expiresAt, err := m.Issue(42)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiresAt, 5*time.Second)

	id, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestTokenManager_ParseRejectsExpired(t *testing.T) {
	m := NewTokenManager(testSecret, time.Minute)
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }

	token, _, err := m.Issue(7)
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_ParseFailures(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name:    "garbage",
			token:   "not-a-token",
			wantErr: ErrInvalidToken,
		},
		{
			name:    "wrong secret",
			token:   signClaims(t, jwt.SigningMethodHS256, []byte("other"), jwt.RegisteredClaims{Subject: "1", ExpiresAt: future}),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "none algorithm",
			token:   signClaims(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.RegisteredClaims{Subject: "1", ExpiresAt: future}),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "no expiry",
			token:   signClaims(t, jwt.SigningMethodHS256, testSecret, jwt.RegisteredClaims{Subject: "1"}),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "missing subject",
			token:   signClaims(t, jwt.SigningMethodHS256, testSecret, jwt.RegisteredClaims{ExpiresAt: future}),
			wantErr: ErrMissingSubject,
		},
		{
			name:    "non-numeric subject",
			token:   signClaims(t, jwt.SigningMethodHS256, testSecret, jwt.RegisteredClaims{Subject: "alice", ExpiresAt: future}),
			wantErr: ErrInvalidSubject,
		},
		{
			name:    "zero subject",
			token:   signClaims(t, jwt.SigningMethodHS256, testSecret, jwt.RegisteredClaims{Subject: "0", ExpiresAt: future}),
			wantErr: ErrInvalidSubject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Parse(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
