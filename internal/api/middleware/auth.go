package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-WorkshopService/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

const (
	msgMissingToken = "sesi tidak ditemukan, silakan login"
	msgInvalidToken = "sesi tidak valid atau sudah berakhir"
	msgForbidden    = "akses ditolak"
)

type sessionKey struct{}

// TokenParser проверяет bearer токен и возвращает сессию
type TokenParser interface {
	ParseToken(token string) (*domain.Session, error)
}

// Auth требует заголовок Authorization: Bearer <jwt> и кладет сессию в контекст
func Auth(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			session, err := parser.ParseToken(strings.TrimSpace(token))
			if err != nil {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// RequireRole пропускает только сессии с одной из ролей. Ставится после Auth
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetSession(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}
			if !session.HasRole(roles...) {
				handlers.RespondForbidden(w, msgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithSession кладет сессию в контекст
func WithSession(ctx context.Context, session *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSession достает сессию из контекста
func GetSession(ctx context.Context) (*domain.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(*domain.Session)
	return session, ok && session != nil
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	session, ok := GetSession(ctx)
	if !ok {
		return 0, false
	}
	return session.UserID, true
}

// GetRole извлекает роль пользователя из контекста
func GetRole(ctx context.Context) (domain.Role, bool) {
	session, ok := GetSession(ctx)
	if !ok {
		return "", false
	}
	return session.Role, true
}
