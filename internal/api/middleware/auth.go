package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/spa-booking-service/internal/api/handlers"
)

// ActorIDHeader заголовок с идентификатором сотрудника
const ActorIDHeader = "X-Actor-ID"

const msgMissingActorID = "отсутствует заголовок X-Actor-ID"

type contextKey string

const actorIDKey contextKey = "actor_id"

// Auth требует заголовок X-Actor-ID и кладёт его значение в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actorID := strings.TrimSpace(r.Header.Get(ActorIDHeader))
		if actorID == "" {
			handlers.RespondUnauthorized(w, msgMissingActorID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActorID(r.Context(), actorID)))
	})
}

// OptionalAuth кладёт X-Actor-ID в контекст, если заголовок передан
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if actorID := strings.TrimSpace(r.Header.Get(ActorIDHeader)); actorID != "" {
			r = r.WithContext(WithActorID(r.Context(), actorID))
		}
		next.ServeHTTP(w, r)
	})
}

// WithActorID возвращает контекст с идентификатором сотрудника
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorIDKey, actorID)
}

// GetActorID извлекает идентификатор сотрудника из контекста
func GetActorID(ctx context.Context) (string, bool) {
	actorID, ok := ctx.Value(actorIDKey).(string)
	return actorID, ok && actorID != ""
}
