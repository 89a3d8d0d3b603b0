package token

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Source yields the bearer token used against the storefront API. An empty
// string means the client is unauthenticated.
type Source interface {
	Token() string
}

type StaticSource struct {
	mu    sync.RWMutex
	token string
}

func NewStaticSource(token string) *StaticSource {
	return &StaticSource{token: token}
}

func (s *StaticSource) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *StaticSource) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Expired inspects the token's exp claim without verifying the signature,
// so callers can pre-flight privileged calls without the signing key.
func Expired(tokenString string, now time.Time) (bool, error) {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	_, _, err := parser.ParseUnverified(tokenString, &claims)
	if err != nil {
		return true, fmt.Errorf("failed parsing claims with error=%w", err)
	}
	if claims.ExpiresAt == nil {
		return false, nil
	}
	return !claims.ExpiresAt.After(now), nil
}
