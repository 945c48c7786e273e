package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/georgemunganga/gastrotech-backend/internal/platform/logger"
)

const tokenTTL = 24 * time.Hour

type service struct {
	secret   []byte
	operator Operator
	log      *logger.Logger
}

// NewService creates a new auth service signing HS256 tokens with secret.
func NewService(secret string, operator Operator, log *logger.Logger) Service {
	return &service{secret: []byte(secret), operator: operator, log: log.WithComponent("auth")}
}

func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if !strings.EqualFold(email, s.operator.Email) {
		s.log.Warn("login rejected", "reason", "unknown email")
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.operator.PasswordHash), []byte(password)); err != nil {
		s.log.Warn("login rejected", "reason", "wrong password")
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := &jwt.StandardClaims{
		Subject:   s.operator.Email,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}

	s.log.Info("operator logged in", "subject", claims.Subject)
	return tokenString, nil
}

func (s *service) Verify(tokenString string) (string, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrUnauthorized
	}
	return claims.Subject, nil
}
