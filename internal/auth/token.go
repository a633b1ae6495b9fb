package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenManager issues signed JWTs for authenticated principals.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Generate signs an HS256 token for the principal. user_id is only present
// for principals backed by a directory entry.
func (t *TokenManager) Generate(p Principal) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":      t.issuer,
		"username": p.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(t.ttl).Unix(),
	}
	if p.ID != 0 {
		claims["user_id"] = p.ID
	}
	if p.Email != "" {
		claims["email"] = p.Email
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}
