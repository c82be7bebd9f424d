// Package middlewarectx содержит HTTP middleware аутентификации и авторизации.
//
// JWTMiddleware извлекает токен из cookie "token" или заголовка
// Authorization, проверяет его подпись и срок действия, разрешает субъект
// в пользователя одним чтением из хранилища и кладёт пользователя в
// контекст запроса. RoleMiddleware проверяет роль уже аутентифицированного
// пользователя против разрешённого набора.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/resume-analyzer/internal/http/response"
	"github.com/magabrotheeeer/resume-analyzer/internal/lib/sl"
	"github.com/magabrotheeeer/resume-analyzer/internal/metrics"
	"github.com/magabrotheeeer/resume-analyzer/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserKey — ключ, под которым аутентифицированный пользователь лежит в контексте.
const UserKey Key = "user"

// TokenCookieName — имя cookie с токеном. Cookie имеет приоритет над заголовком.
const TokenCookieName = "token"

// UserFromContext возвращает пользователя, положенного в контекст JWTMiddleware.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok
}

// ContextWithUser кладёт пользователя в контекст под UserKey.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// JWTMiddleware возвращает HTTP middleware, который аутентифицирует запрос.
//
// Кандидат токена берётся из cookie "token", затем из заголовка
// "Authorization: Bearer". Сбой хранилища при разрешении субъекта наружу
// не отличим от отсутствия пользователя: оба дают 401 "user not found",
// чтобы не раскрывать существование учётных записей.
func JWTMiddleware(maker TokenParser, resolver IdentityResolver, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr, ok := extractToken(r)
			if !ok {
				log.Error("no token in cookie or authorization header")
				metrics.AuthRejections.WithLabelValues("no_token").Inc()
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("token not provided"))
				return
			}

			subject, err := maker.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				metrics.AuthRejections.WithLabelValues("invalid_token").Inc()
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			user, err := resolver.ResolveUser(r.Context(), subject)
			if err != nil {
				log.Error("could not resolve token subject", sl.Err(err))
				metrics.AuthRejections.WithLabelValues("user_not_found").Inc()
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user not found"))
				return
			}

			ctx := ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken достаёт кандидата токена: сначала cookie, затем Bearer-заголовок.
func extractToken(r *http.Request) (string, bool) {
	if cookie, err := r.Cookie(TokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token != "" {
			return token, true
		}
	}
	return "", false
}
