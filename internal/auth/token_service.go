package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	// SessionTokenExpiry is the lifetime of a session token. Tokens are not
	// persisted server-side, so one stays valid for this long even after
	// sign-out.
	SessionTokenExpiry = 7 * 24 * time.Hour

	// TokenIssuer and TokenAudience scope tokens to this application.
	TokenIssuer   = "expense-tracker"
	TokenAudience = "expense-tracker-users"
)

// Claims is the decoded content of a verified session token. Subject carries
// the user id.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-limited session tokens.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service with the given signing key.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue produces a signed token for the given subject, expiring exactly
// SessionTokenExpiry after issuance.
func (s *TokenService) Issue(subject, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    TokenIssuer,
			Audience:  jwt.ClaimStrings{TokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates signature, issuer, audience and expiry. It reports false
// on any failure and never exposes the parse error: a bad token is simply not
// a session.
func (s *TokenService) Verify(tokenString string) (*Claims, bool) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, false
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, false
	}
	if !claims.VerifyIssuer(TokenIssuer, true) {
		return nil, false
	}
	if !claims.VerifyAudience(TokenAudience, true) {
		return nil, false
	}
	return claims, true
}
