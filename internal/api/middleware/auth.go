package middleware

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SLN-BookingService/internal/api/handlers"
)

// HeaderUserID заголовок с идентификатором аутентифицированного пользователя
// Проставляется API-шлюзом после проверки подписанного токена
const HeaderUserID = "X-User-ID"

// Auth проверяет наличие корректного X-User-ID заголовка
// Сама проверка токена выполняется снаружи, здесь только контракт шлюза
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "отсутствует заголовок X-User-ID")
			return
		}

		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			handlers.RespondError(w, http.StatusUnauthorized, "некорректный заголовок X-User-ID")
			return
		}

		next.ServeHTTP(w, r)
	})
}
