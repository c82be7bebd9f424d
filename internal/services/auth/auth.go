// Package auth содержит логику бизнес-уровня для регистрации,
// аутентификации и разрешения идентичности пользователей.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/resume-analyzer/internal/lib/jwt"
	"github.com/magabrotheeeer/resume-analyzer/internal/lib/password"
	"github.com/magabrotheeeer/resume-analyzer/internal/lib/sl"
	"github.com/magabrotheeeer/resume-analyzer/internal/models"
	"github.com/magabrotheeeer/resume-analyzer/internal/rabbitmq"
	"github.com/magabrotheeeer/resume-analyzer/internal/storage/repository"
)

// ErrInvalidCredentials возвращается при неверной паре email/пароль.
// Отсутствие пользователя и несовпадение пароля наружу не различаются.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Срок действия токена подтверждения email.
const verificationTokenTTL = 24 * time.Hour

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// SaveUser сохраняет нового пользователя и возвращает созданную запись.
	SaveUser(ctx context.Context, name, email, passwordHash, verificationToken string, tokenExpiration time.Time) (*models.User, error)

	// GetUserByEmail возвращает пользователя по email или repository.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID возвращает пользователя по идентификатору или repository.ErrUserNotFound.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// EventPublisher публикует событие регистрации для отправки
// письма с подтверждением email. Вызов best-effort.
type EventPublisher interface {
	PublishRegistration(msg rabbitmq.RegistrationMessage) error
}

// AuthService отвечает за регистрацию, авторизацию и разрешение JWT-субъекта.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	events   EventPublisher
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
// events может быть nil — тогда уведомления о регистрации не публикуются.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, events EventPublisher, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		events:   events,
		log:      log,
	}
}

// Register создает нового пользователя с хэшированием пароля, дефолтной ролью
// "user" и токеном подтверждения email. Занятый email транслируется наверх
// как repository.ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword string) (*models.User, error) {
	const op = "auth.Register"

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	verificationToken := uuid.New().String()
	tokenExpiration := time.Now().UTC().Add(verificationTokenTTL)

	user, err := s.users.SaveUser(ctx, name, email, hashed, verificationToken, tokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.events != nil {
		msg := rabbitmq.RegistrationMessage{
			Name:              user.Name,
			Email:             user.Email,
			VerificationToken: verificationToken,
		}
		if err := s.events.PublishRegistration(msg); err != nil {
			s.log.Warn("failed to publish registration event", sl.Err(err))
		}
	}

	return user, nil
}

// Login проверяет пароль пользователя и выпускает JWT с его идентификатором
// в качестве субъекта.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	matched, err := password.CompareHash(user.PasswordHash, rawPassword)
	if err != nil || !matched {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwtMaker.IssueToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}

// ResolveUser возвращает пользователя по субъекту проверенного токена.
// Отсутствие пользователя отдаётся как repository.ErrUserNotFound.
func (s *AuthService) ResolveUser(ctx context.Context, subject string) (*models.User, error) {
	const op = "auth.ResolveUser"

	user, err := s.users.GetUserByID(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
