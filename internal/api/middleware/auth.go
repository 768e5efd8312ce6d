package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-MeetingService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingService/internal/integrations/accessservice"
)

const (
	UserIDHeader = "X-User-ID"

	msgMissingUserID = "отсутствует заголовок X-User-ID"
	msgInvalidUserID = "некорректный X-User-ID"
	msgUnknownUser   = "пользователь не найден"
)

// Auth определяет участника запроса по заголовку X-User-ID и ролям из сервиса доступов.
// При недоступности сервиса доступов запрос продолжается без ролей
func Auth(resolver ActorResolver, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(UserIDHeader)
			if raw == "" {
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || userID <= 0 {
				log.Warn("Auth: invalid %s header %q", UserIDHeader, raw)
				handlers.RespondUnauthorized(w, msgInvalidUserID)
				return
			}

			actor, err := resolver.GetActor(r.Context(), userID)
			if err != nil {
				switch {
				case errors.Is(err, accessservice.ErrServiceDegraded) && actor != nil:
					log.Warn("Auth: degraded access for user_id=%d: %v", userID, err)

				case errors.Is(err, accessservice.ErrUserNotFound):
					log.Warn("Auth: unknown user_id=%d", userID)
					handlers.RespondUnauthorized(w, msgUnknownUser)
					return

				default:
					log.Error("Auth: failed to resolve user_id=%d: %v", userID, err)
					handlers.RespondInternalError(w)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}
