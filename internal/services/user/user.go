// Package user содержит логику бизнес-уровня для просмотра и изменения
// учётных записей пользователей.
package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/resume-analyzer/internal/lib/password"
	"github.com/magabrotheeeer/resume-analyzer/internal/models"
)

// ErrWrongOldPassword возвращается при смене пароля с неверным текущим паролем.
var ErrWrongOldPassword = errors.New("old password does not match")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	ListUsers(ctx context.Context, page, limit int) ([]*models.User, error)
	CountUsers(ctx context.Context) (int64, error)
	UpdateUserName(ctx context.Context, id, name string) (*models.User, error)
	UpdateUserRole(ctx context.Context, id string, role models.Role) (*models.User, error)
	UpdateUserPassword(ctx context.Context, id, passwordHash string) (*models.User, error)
}

// UserService реализует операции над учётными записями.
type UserService struct {
	users UserRepository
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(users UserRepository) *UserService {
	return &UserService{users: users}
}

// List возвращает страницу пользователей и общее количество записей.
func (s *UserService) List(ctx context.Context, page, limit int) ([]*models.User, int64, error) {
	const op = "user.List"

	users, err := s.users.ListUsers(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return users, count, nil
}

// UpdateName изменяет отображаемое имя пользователя.
func (s *UserService) UpdateName(ctx context.Context, userID, name string) (*models.User, error) {
	const op = "user.UpdateName"

	updated, err := s.users.UpdateUserName(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// UpdateRole изменяет роль пользователя.
func (s *UserService) UpdateRole(ctx context.Context, userID string, role models.Role) (*models.User, error) {
	const op = "user.UpdateRole"

	updated, err := s.users.UpdateUserRole(ctx, userID, role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// UpdatePassword меняет пароль пользователя после проверки текущего пароля.
func (s *UserService) UpdatePassword(ctx context.Context, user *models.User, oldPassword, newPassword string) (*models.User, error) {
	const op = "user.UpdatePassword"

	matched, err := password.CompareHash(user.PasswordHash, oldPassword)
	if err != nil || !matched {
		return nil, ErrWrongOldPassword
	}

	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.users.UpdateUserPassword(ctx, user.ID, hashed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}
