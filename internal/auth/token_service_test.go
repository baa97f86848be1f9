package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTokenService_IssueVerifyRoundtrip(t *testing.T) {
	svc := NewTokenService("test-secret")
	subject := uuid.New().String()

	token, err := svc.Issue(subject, "test@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, ok := svc.Verify(token)
	assert.True(t, ok)
	assert.Equal(t, subject, claims.Subject)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, TokenIssuer, claims.Issuer)
	assert.Contains(t, claims.Audience, TokenAudience)

	// Expiration is exactly 7 days after issuance.
	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, SessionTokenExpiry, lifetime)
}

func TestTokenService_Verify_Failures(t *testing.T) {
	svc := NewTokenService("test-secret")
	subject := uuid.New().String()

	signWith := func(secret, issuer, audience string, expiresAt time.Time) string {
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   subject,
				Issuer:    issuer,
				Audience:  jwt.ClaimStrings{audience},
				ExpiresAt: jwt.NewNumericDate(expiresAt),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		assert.NoError(t, err)
		return token
	}

	future := time.Now().Add(time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "garbage token",
			token: "not-a-token",
		},
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "signed with a different key",
			token: signWith("other-secret", TokenIssuer, TokenAudience, future),
		},
		{
			name:  "wrong issuer",
			token: signWith("test-secret", "someone-else", TokenAudience, future),
		},
		{
			name:  "wrong audience",
			token: signWith("test-secret", TokenIssuer, "other-audience", future),
		},
		{
			name:  "expired",
			token: signWith("test-secret", TokenIssuer, TokenAudience, time.Now().Add(-time.Minute)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, ok := svc.Verify(tt.token)
			assert.False(t, ok)
			assert.Nil(t, claims)
		})
	}
}
