package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/FSP-BookingService/internal/api/handlers"
)

// Admin возвращает middleware, проверяющий админский токен в заголовке
// X-Admin-Token. Сравнение константное по времени.
func Admin(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get("X-Admin-Token")
			if provided == "" {
				handlers.RespondUnauthorized(w, "отсутствует админский токен")
				return
			}
			if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				handlers.RespondForbidden(w, "доступ запрещен")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
