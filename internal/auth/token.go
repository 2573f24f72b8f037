package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers a bad signature, a malformed token and an
// expired token alike.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenTTL is the fixed lifetime of an issued token.
const TokenTTL = 7 * 24 * time.Hour

// Claims are the identity facts embedded in a bearer token. They are
// immutable once issued; a role change requires a new token.
type Claims struct {
	UserID uint   `json:"user_id"`
	Number string `json:"number"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 bearer tokens with a
// process-wide secret.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: TokenTTL}
}

// Issue produces a signed token for the given identity, expiring TokenTTL
// from now.
func (s *TokenService) Issue(userID uint, number, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Number: number,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token, returning its claims.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ExtractBearer pulls the token out of an "Authorization: Bearer <token>"
// header value. An absent or malformed header yields ok=false; the caller
// decides how to react.
func ExtractBearer(headerValue string) (string, bool) {
	if headerValue == "" {
		return "", false
	}
	parts := strings.SplitN(headerValue, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
