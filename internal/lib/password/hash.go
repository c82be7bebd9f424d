// Package password реализует функции для безопасного хеширования и проверки паролей.
//
// GetHash создает argon2id-хеш пароля со случайной солью для безопасного хранения.
// CompareHash проверяет соответствие пароля ранее сохранённому хешу.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// MaxPasswordLength — максимальная длина пароля в байтах.
const MaxPasswordLength = 64

var (
	// ErrEmptyPassword возвращается при пустом пароле.
	ErrEmptyPassword = errors.New("password must not be empty")
	// ErrPasswordTooLong возвращается, если пароль длиннее MaxPasswordLength байт.
	ErrPasswordTooLong = fmt.Errorf("password must not exceed %d bytes", MaxPasswordLength)
	// ErrInvalidHash возвращается, если сохранённый хеш имеет неверный формат.
	ErrInvalidHash = errors.New("invalid password hash format")
)

// Параметры argon2id.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

// GetHash принимает пароль пользователя и возвращает его argon2id-хэш
// в PHC-формате. Каждый вызов использует новую случайную соль, поэтому
// два хэша одного пароля не совпадают и не сравнимы напрямую.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"

	if err := checkLength(password); err != nil {
		return "", err
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// CompareHash сравнивает argon2id-хэш с введённым паролем.
//
// Возвращает true, если пароль соответствует хэшу, и false при несовпадении.
// Ошибка возвращается только при некорректном входе или повреждённом хэше.
func CompareHash(encodedHash, password string) (bool, error) {
	const op = "password.CompareHash"

	if err := checkLength(password); err != nil {
		return false, err
	}

	salt, key, memory, time, threads, err := decodeHash(encodedHash)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	otherKey := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, otherKey) == 1, nil
}

func checkLength(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

func decodeHash(encoded string) (salt, key []byte, memory uint32, time uint32, threads uint8, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, ErrInvalidHash
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, 0, 0, 0, ErrInvalidHash
	}
	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return nil, nil, 0, 0, 0, ErrInvalidHash
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, 0, 0, 0, ErrInvalidHash
	}
	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, 0, 0, 0, ErrInvalidHash
	}
	return salt, key, memory, time, threads, nil
}
