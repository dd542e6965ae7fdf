package api

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/WiktorStarczewski/miden-arena/internal/constants"
	"github.com/golang-jwt/jwt/v5"
)

type sessionClaims struct {
	Account string `json:"account"`
	Name    string `json:"name"`
	jwt.RegisteredClaims
}

// Without SESSION_SECRET a random per-process key is used, so sessions die
// with the process. Fine for development; set the variable in production.
var devSecret []byte

func sessionSecret() ([]byte, error) {
	if configured := os.Getenv(constants.EnvSessionSecret); configured != "" {
		return []byte(configured), nil
	}
	if devSecret == nil {
		devSecret = make([]byte, 32)
		if _, err := crand.Read(devSecret); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
	}
	return devSecret, nil
}

func createSessionToken(account, name string, ttl time.Duration) (string, error) {
	secret, err := sessionSecret()
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := sessionClaims{
		Account: account,
		Name:    name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parseAndValidateSession(token string) (*sessionClaims, error) {
	secret, err := sessionSecret()
	if err != nil {
		return nil, err
	}
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid || claims.Account == "" {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}
