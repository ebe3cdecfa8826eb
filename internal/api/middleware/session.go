package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

const (
	// HeaderUserID идентификатор пользователя, проставляемый шлюзом
	HeaderUserID = "X-User-ID"
	// HeaderUserEmail email пользователя, проставляемый шлюзом
	HeaderUserEmail = "X-User-Email"

	msgInvalidIdentity  = "некорректные данные пользователя"
	msgIdentityNotReady = "не удалось определить пользователя"
)

type contextKey string

const sessionKey contextKey = "session"

// SessionResolver разрешает идентичность вызывающего
type SessionResolver interface {
	Resolve(ctx context.Context, rawUserID, email string) (domain.SessionContext, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Session кладет SessionContext в контекст запроса.
// Запрос без X-User-ID обслуживается как гостевой.
func Session(resolver SessionResolver, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := resolver.Resolve(r.Context(), r.Header.Get(HeaderUserID), r.Header.Get(HeaderUserEmail))
			if err != nil {
				if errors.Is(err, domain.ErrInvalidInput) {
					logger.Warn("%s %s - Invalid identity headers: %v", r.Method, r.URL.Path, err)
					handlers.RespondUnauthorized(w, msgInvalidIdentity)
					return
				}
				logger.Error("%s %s - Failed to resolve session: %v", r.Method, r.URL.Path, err)
				handlers.RespondError(w, http.StatusServiceUnavailable, msgIdentityNotReady)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// WithSession возвращает контекст с сессией
func WithSession(ctx context.Context, session domain.SessionContext) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// GetSession достает сессию из контекста. Без сессии возвращается гость.
func GetSession(ctx context.Context) domain.SessionContext {
	session, ok := ctx.Value(sessionKey).(domain.SessionContext)
	if !ok {
		return domain.GuestSession()
	}
	return session
}
