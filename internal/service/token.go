package service

import (
	"fmt"
	"quizwhiz/internal/domain"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionTokenType = "session"

// SessionTokenService issues and validates the per-session bearer tokens
// handed out when a quiz starts. Sessions are anonymous; the token is the
// only proof of ownership.
type SessionTokenService interface {
	Issue(sessionID string) (string, error)
	Validate(token string) (sessionID string, err error)
}

type sessionTokenClaims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type sessionTokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionTokenService creates a token service signing with HS256.
func NewSessionTokenService(secret string, ttl time.Duration) (SessionTokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("session token secret cannot be empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &sessionTokenService{secret: []byte(secret), ttl: ttl}, nil
}

func (s *sessionTokenService) Issue(sessionID string) (string, error) {
	now := time.Now()
	claims := sessionTokenClaims{
		TokenType: sessionTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", domain.NewInternalError("failed to sign session token", err)
	}
	return signed, nil
}

func (s *sessionTokenService) Validate(tokenString string) (string, error) {
	claims := &sessionTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", domain.NewUnauthorizedError(fmt.Sprintf("invalid session token: %v", err))
	}
	if !token.Valid || claims.TokenType != sessionTokenType || claims.Subject == "" {
		return "", domain.NewUnauthorizedError("invalid session token")
	}
	return claims.Subject, nil
}
