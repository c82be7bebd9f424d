package middlewarectx

import (
	"context"

	"github.com/magabrotheeeer/resume-analyzer/internal/models"
)

// TokenParser проверяет токен и возвращает его субъект.
type TokenParser interface {
	ParseToken(tokenStr string) (string, error)
}

// IdentityResolver разрешает субъект токена в пользователя.
type IdentityResolver interface {
	ResolveUser(ctx context.Context, subject string) (*models.User, error)
}
