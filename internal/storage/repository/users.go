package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/resume-analyzer/internal/models"
)

const uniqueViolationCode = "23505"

const userColumns = `id, name, email, password_hash, role, verified,
			      verification_token, token_expiration, created_at, updated_at`

// SaveUser сохраняет нового пользователя и возвращает созданную запись.
// Нарушение уникальности email транслируется в ErrEmailTaken.
func (s *Storage) SaveUser(ctx context.Context, name, email, passwordHash, verificationToken string, tokenExpiration time.Time) (*models.User, error) {
	const op = "storage.SaveUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (name, email, password_hash, role, verification_token, token_expiration)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + userColumns
	row := s.DB.QueryRowContext(ctx, query,
		name, email, passwordHash, models.RoleUser, verificationToken, tokenExpiration)

	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// GetUserByID возвращает пользователя по его идентификатору.
func (s *Storage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.GetUserByID"
	return s.getUserBy(ctx, op, "id", id)
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	return s.getUserBy(ctx, op, "email", email)
}

// GetUserByName возвращает пользователя по имени.
func (s *Storage) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	const op = "storage.GetUserByName"
	return s.getUserBy(ctx, op, "name", name)
}

// GetUserByVerificationToken возвращает пользователя по токену подтверждения email.
func (s *Storage) GetUserByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	const op = "storage.GetUserByVerificationToken"
	return s.getUserBy(ctx, op, "verification_token", token)
}

func (s *Storage) getUserBy(ctx context.Context, op, column, value string) (*models.User, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE ` + column + ` = $1`
	row := s.DB.QueryRowContext(ctx, query, value)

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// ListUsers возвращает страницу пользователей, отсортированных по дате создания.
func (s *Storage) ListUsers(ctx context.Context, page, limit int) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	offset := (page - 1) * limit
	query := `SELECT ` + userColumns + `
			  FROM users
			  ORDER BY created_at DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountUsers возвращает общее количество пользователей.
func (s *Storage) CountUsers(ctx context.Context) (int64, error) {
	const op = "storage.CountUsers"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int64
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// UpdateUserName обновляет имя пользователя и возвращает обновлённую запись.
func (s *Storage) UpdateUserName(ctx context.Context, id, name string) (*models.User, error) {
	const op = "storage.UpdateUserName"
	return s.updateUserField(ctx, op, id, "name", name)
}

// UpdateUserRole обновляет роль пользователя и возвращает обновлённую запись.
func (s *Storage) UpdateUserRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	const op = "storage.UpdateUserRole"
	return s.updateUserField(ctx, op, id, "role", string(role))
}

// UpdateUserPassword обновляет хэш пароля пользователя и возвращает обновлённую запись.
func (s *Storage) UpdateUserPassword(ctx context.Context, id, passwordHash string) (*models.User, error) {
	const op = "storage.UpdateUserPassword"
	return s.updateUserField(ctx, op, id, "password_hash", passwordHash)
}

func (s *Storage) updateUserField(ctx context.Context, op, id, column, value string) (*models.User, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET ` + column + ` = $1, updated_at = now()
			  WHERE id = $2
			  RETURNING ` + userColumns
	row := s.DB.QueryRowContext(ctx, query, value, id)

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var verificationToken sql.NullString
	var tokenExpiration sql.NullTime
	var role string

	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.Verified,
		&verificationToken, &tokenExpiration, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}

	parsed, ok := models.ParseRole(role)
	if !ok {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	u.Role = parsed

	if verificationToken.Valid {
		u.VerificationToken = &verificationToken.String
	}
	if tokenExpiration.Valid {
		u.TokenExpiration = &tokenExpiration.Time
	}
	return u, nil
}
