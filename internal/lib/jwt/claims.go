// Package jwt реализует выпуск и проверку JWT токенов идентичности.
//
// Токен содержит только стандартные claims: subject (идентификатор
// пользователя), время выпуска и время истечения. Maker определяет
// интерфейс для выпуска и проверки токенов, MakerImpl — конкретную
// реализацию с секретным ключом и сроком жизни.
package jwt

import (
	"errors"
	"time"
)

var (
	// ErrEmptySubject возвращается при попытке выпустить токен без субъекта.
	ErrEmptySubject = errors.New("token subject must not be empty")
	// ErrInvalidToken возвращается для токена с неверной подписью,
	// некорректным форматом или истёкшим сроком действия.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Maker описывает интерфейс для выпуска и проверки токенов идентичности.
type Maker interface {
	// IssueToken выпускает подписанный токен для заданного субъекта.
	IssueToken(subject string) (string, error)
	// ParseToken проверяет подпись и срок действия токена и возвращает субъект.
	ParseToken(tokenStr string) (string, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена. Единица задаётся явно конфигом.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
