package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CabinService/internal/api/handlers"
	"github.com/m04kA/SMC-CabinService/internal/integrations/authservice"
)

const (
	msgMissingToken = "missing or malformed authorization header"
	msgInvalidToken = "invalid or expired token"
	msgAdminOnly    = "admin access required"
	msgAuthFailed   = "authorization service unavailable"
)

// TokenVerifier проверяет bearer-токен во внешнем сервисе аутентификации
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*authservice.Identity, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type identityContextKey struct{}

// IdentityFromContext возвращает личность пользователя из контекста запроса
func IdentityFromContext(ctx context.Context) (*authservice.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey{}).(*authservice.Identity)
	return identity, ok
}

// WithIdentity кладет личность пользователя в контекст
func WithIdentity(ctx context.Context, identity *authservice.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// Auth middleware аутентификации: проверяет bearer-токен через внешний
// сервис и кладет подтвержденную личность в контекст запроса
func Auth(verifier TokenVerifier, log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			identity, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				if errors.Is(err, authservice.ErrTokenInvalid) {
					handlers.RespondUnauthorized(w, msgInvalidToken)
					return
				}
				log.Error("auth middleware: token verification failed: %v", err)
				handlers.RespondError(w, http.StatusBadGateway, msgAuthFailed)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// RequireAdmin middleware доступа только для администраторов.
// Должен стоять после Auth.
func RequireAdmin(log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}
			if !identity.IsAdmin {
				log.Warn("admin route denied for user_id=%d", identity.UserID)
				handlers.RespondForbidden(w, msgAdminOnly)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken извлекает токен из заголовка Authorization
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if header == "" || !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}
