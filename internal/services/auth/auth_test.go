package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/resume-analyzer/internal/lib/jwt"
	"github.com/magabrotheeeer/resume-analyzer/internal/lib/password"
	"github.com/magabrotheeeer/resume-analyzer/internal/models"
	"github.com/magabrotheeeer/resume-analyzer/internal/rabbitmq"
	"github.com/magabrotheeeer/resume-analyzer/internal/storage/repository"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) SaveUser(ctx context.Context, name, email, passwordHash, verificationToken string, tokenExpiration time.Time) (*models.User, error) {
	args := m.Called(ctx, name, email, passwordHash, verificationToken, tokenExpiration)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepositoryMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepositoryMock) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) PublishRegistration(msg rabbitmq.RegistrationMessage) error {
	args := m.Called(msg)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestAuthService_Register(t *testing.T) {
	repo := new(UserRepositoryMock)
	events := new(PublisherMock)
	maker := jwt.NewJWTMaker("test_secret", 15*time.Minute)
	svc := NewAuthService(repo, maker, events, newNoopLogger())

	saved := &models.User{
		ID:    "550e8400-e29b-41d4-a716-446655440000",
		Name:  "John Doe",
		Email: "john@example.com",
		Role:  models.RoleUser,
	}

	repo.On("SaveUser", mock.Anything, "John Doe", "john@example.com",
		mock.MatchedBy(func(hash string) bool {
			ok, err := password.CompareHash(hash, "password123")
			return err == nil && ok
		}),
		mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Return(saved, nil).Once()
	events.On("PublishRegistration", mock.MatchedBy(func(msg rabbitmq.RegistrationMessage) bool {
		return msg.Email == "john@example.com" && msg.VerificationToken != ""
	})).Return(nil).Once()

	user, err := svc.Register(context.Background(), "John Doe", "john@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, saved, user)

	repo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	repo := new(UserRepositoryMock)
	maker := jwt.NewJWTMaker("test_secret", 15*time.Minute)
	svc := NewAuthService(repo, maker, nil, newNoopLogger())

	repo.On("SaveUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, repository.ErrEmailTaken).Once()

	user, err := svc.Register(context.Background(), "John Doe", "taken@example.com", "password123")
	assert.ErrorIs(t, err, repository.ErrEmailTaken)
	assert.Nil(t, user)
}

func TestAuthService_Register_PasswordTooLong(t *testing.T) {
	repo := new(UserRepositoryMock)
	maker := jwt.NewJWTMaker("test_secret", 15*time.Minute)
	svc := NewAuthService(repo, maker, nil, newNoopLogger())

	// 64 руны, 128 байт: ошибка хэшера должна дойти до вызывающего как сентинел.
	user, err := svc.Register(context.Background(), "John Doe", "john@example.com", strings.Repeat("я", 64))
	assert.ErrorIs(t, err, password.ErrPasswordTooLong)
	assert.Nil(t, user)
	repo.AssertNotCalled(t, "SaveUser")
}

func TestAuthService_Register_PublishFailureIsSwallowed(t *testing.T) {
	repo := new(UserRepositoryMock)
	events := new(PublisherMock)
	maker := jwt.NewJWTMaker("test_secret", 15*time.Minute)
	svc := NewAuthService(repo, maker, events, newNoopLogger())

	saved := &models.User{ID: "id", Email: "a@x.com"}
	repo.On("SaveUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(saved, nil).Once()
	events.On("PublishRegistration", mock.Anything).Return(errors.New("broker down")).Once()

	user, err := svc.Register(context.Background(), "John", "a@x.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, saved, user)
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := password.GetHash("correct_password")
	require.NoError(t, err)

	storedUser := &models.User{
		ID:           "550e8400-e29b-41d4-a716-446655440000",
		Email:        "john@example.com",
		PasswordHash: hashed,
		Role:         models.RoleUser,
	}

	tests := []struct {
		name      string
		email     string
		password  string
		setupMock func(*UserRepositoryMock)
		wantErr   error
	}{
		{
			name:     "successful login",
			email:    "john@example.com",
			password: "correct_password",
			setupMock: func(m *UserRepositoryMock) {
				m.On("GetUserByEmail", mock.Anything, "john@example.com").Return(storedUser, nil).Once()
			},
		},
		{
			name:     "wrong password",
			email:    "john@example.com",
			password: "wrong_password",
			setupMock: func(m *UserRepositoryMock) {
				m.On("GetUserByEmail", mock.Anything, "john@example.com").Return(storedUser, nil).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "correct_password",
			setupMock: func(m *UserRepositoryMock) {
				m.On("GetUserByEmail", mock.Anything, "nobody@example.com").
					Return(nil, repository.ErrUserNotFound).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	maker := jwt.NewJWTMaker("test_secret", 15*time.Minute)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepositoryMock)
			tt.setupMock(repo)
			svc := NewAuthService(repo, maker, nil, newNoopLogger())

			token, user, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, user)

			// Токен валидируется обратно в идентификатор пользователя
			subject, err := maker.ParseToken(token)
			require.NoError(t, err)
			assert.Equal(t, storedUser.ID, subject)

			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_ResolveUser(t *testing.T) {
	repo := new(UserRepositoryMock)
	maker := jwt.NewJWTMaker("test_secret", 15*time.Minute)
	svc := NewAuthService(repo, maker, nil, newNoopLogger())

	storedUser := &models.User{ID: "some-id", Email: "a@x.com"}
	repo.On("GetUserByID", mock.Anything, "some-id").Return(storedUser, nil).Once()

	user, err := svc.ResolveUser(context.Background(), "some-id")
	require.NoError(t, err)
	assert.Equal(t, storedUser, user)

	repo.On("GetUserByID", mock.Anything, "missing").Return(nil, repository.ErrUserNotFound).Once()
	user, err = svc.ResolveUser(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	assert.Nil(t, user)
}
