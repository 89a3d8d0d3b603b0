package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	inErrors "github.com/heram/storefront/internal/errors"
	inHttp "github.com/heram/storefront/internal/http"
	"github.com/heram/storefront/internal/log"
	"github.com/heram/storefront/internal/token"
)

// Auth verifies the bearer token minted by the auth endpoints and attaches
// the token subject to the request context.
func Auth(secretKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context()).
				With().
				Str(log.KEY_TAG, "middleware auth").
				Logger()
			c := logger.WithContext(r.Context())

			authorization := r.Header.Get("Authorization")
			if authorization == "" {
				logger.Error().
					Err(inErrors.ErrEmptyAuth).
					Msg(inErrors.ErrEmptyAuth.Error())
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrEmptyAuth.Error(),
				})
				return
			}

			tokenString := strings.TrimPrefix(authorization, "Bearer ")
			tokenString = strings.TrimPrefix(tokenString, "bearer ")
			jwtToken, err := token.Verify(c, tokenString, secretKey)
			if err != nil {
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrTokenInvalid.Error(),
				})
				return
			}

			subject, err := jwtToken.Claims.GetSubject()
			if err != nil || subject == "" {
				logger.Error().Err(inErrors.ErrTokenInvalid).Msg("token has no subject")
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrTokenInvalid.Error(),
				})
				return
			}
			c = token.AttachSubjectToContext(c, subject)

			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}
