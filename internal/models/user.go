// Package models содержит доменные структуры сервиса: пользователей
// и загруженные резюме. Структуры используются в бизнес-логике и при
// работе с хранилищем.
package models

import "time"

// Role — закрытый набор ролей пользователя.
type Role string

const (
	// RoleAdmin — администратор, имеет доступ к управлению ролями и списку пользователей.
	RoleAdmin Role = "admin"
	// RoleUser — обычный пользователь.
	RoleUser Role = "user"
)

// ParseRole проверяет, что строка является известной ролью.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleUser:
		return RoleUser, true
	default:
		return "", false
	}
}

// User представляет зарегистрированного пользователя системы.
// Хэш пароля и токен подтверждения не сериализуются в JSON-ответы.
type User struct {
	ID                string     `json:"id"`       // Уникальный идентификатор пользователя (uuid)
	Name              string     `json:"name"`     // Отображаемое имя
	Email             string     `json:"email"`    // Email, уникален в рамках системы
	PasswordHash      string     `json:"-"`        // Хэш пароля (argon2id)
	Role              Role       `json:"role"`     // Роль пользователя
	Verified          bool       `json:"verified"` // Подтвержден ли email
	VerificationToken *string    `json:"-"`        // Токен подтверждения email (nil, если не выдан)
	TokenExpiration   *time.Time `json:"-"`        // Срок действия токена подтверждения
	CreatedAt         time.Time  `json:"created_at"` // Дата создания записи
	UpdatedAt         time.Time  `json:"updated_at"` // Дата последнего обновления
}
