package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/TCM-VisitService/internal/api/handlers"
	"github.com/m04kA/TCM-VisitService/internal/domain"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"

	// HeaderUserID заголовок с ID аутентифицированного пользователя
	HeaderUserID = "X-User-ID"
	// HeaderUserRole заголовок с ролью пользователя (pilgrim | operator)
	HeaderUserRole = "X-User-Role"
)

const (
	msgMissingUserID = "отсутствует заголовок X-User-ID"
	msgInvalidUserID = "некорректный заголовок X-User-ID"
)

// Auth извлекает идентификацию пользователя из заголовков запроса.
// Аутентификацию выполняет API gateway выше по стеку - сервис доверяет
// заголовкам. Отсутствующая или некорректная роль приводится к pilgrim,
// привилегии оператора без явного заголовка не выдаются.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawUserID := r.Header.Get(HeaderUserID)
		if rawUserID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(rawUserID, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		role := domain.ActorRole(r.Header.Get(HeaderUserRole))
		if role != domain.RoleOperator {
			role = domain.RolePilgrim
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, userRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// GetUserRole возвращает роль пользователя из контекста запроса
func GetUserRole(ctx context.Context) (domain.ActorRole, bool) {
	role, ok := ctx.Value(userRoleKey).(domain.ActorRole)
	return role, ok
}
