package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "09120000000",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(expiresAt.Add(-time.Hour)),
	})
	signed, err := jwtToken.SignedString([]byte("test-secret"))
	assert.NoError(t, err)
	return signed
}

func TestExpired(t *testing.T) {
	now := time.Now()

	expired, err := Expired(signedToken(t, now.Add(time.Hour)), now)
	assert.NoError(t, err)
	assert.False(t, expired)

	expired, err = Expired(signedToken(t, now.Add(-time.Hour)), now)
	assert.NoError(t, err)
	assert.True(t, expired)
}

func TestExpiredMalformedToken(t *testing.T) {
	expired, err := Expired("not-a-jwt", time.Now())

	assert.Error(t, err)
	assert.True(t, expired)
}

func TestStaticSource(t *testing.T) {
	source := NewStaticSource("")
	assert.Equal(t, "", source.Token())

	source.Set("test-token")
	assert.Equal(t, "test-token", source.Token())
}
