package middlewarectx

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/resume-analyzer/internal/http/response"
	"github.com/magabrotheeeer/resume-analyzer/internal/models"
)

// RoleMiddleware возвращает HTTP middleware, который пропускает запрос,
// только если роль пользователя из контекста входит в allowedRoles.
//
// Закрывается в безопасную сторону: отсутствие пользователя в контексте
// (JWTMiddleware не отработал) даёт 401. Порядок и повторы ролей в
// allowedRoles значения не имеют. Обращений к хранилищу нет.
func RoleMiddleware(log *slog.Logger, allowedRoles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RoleMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			user, ok := UserFromContext(r.Context())
			if !ok {
				log.Error("no authenticated user in context")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user not authorized"))
				return
			}

			if !slices.Contains(allowedRoles, user.Role) {
				log.Warn("role not allowed",
					slog.String("user_id", user.ID),
					slog.String("role", string(user.Role)))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("permission denied"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
