package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/resume-analyzer/internal/http/middlewarectx"
	"github.com/magabrotheeeer/resume-analyzer/internal/models"
	"github.com/magabrotheeeer/resume-analyzer/internal/services/auth"
)

// MockService реализует интерфейс login.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	args := m.Called(ctx, email, rawPassword)
	if res := args.Get(1); res != nil {
		return args.String(0), res.(*models.User), args.Error(2)
	}
	return args.String(0), nil, args.Error(2)
}

func TestLoginHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
		wantCookie     bool
	}{
		{
			name: "успешный вход",
			body: `{"email":"test@example.com","password":"secret123"}`,
			setupMock: func(m *MockService) {
				user := &models.User{ID: "u1", Email: "test@example.com", Role: models.RoleUser}
				m.On("Login", mock.Anything, "test@example.com", "secret123").
					Return("issued.jwt.token", user, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"token":"issued.jwt.token"`,
			wantCookie:     true,
		},
		{
			name:           "некорректный JSON",
			body:           `{"email":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
		{
			name:           "короткий пароль",
			body:           `{"email":"test@example.com","password":"123"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `Password`,
		},
		{
			name: "неверные учетные данные",
			body: `{"email":"test@example.com","password":"wrongpass"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "test@example.com", "wrongpass").
					Return("", nil, auth.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `invalid email or password`,
		},
		{
			name: "внутренняя ошибка сервиса",
			body: `{"email":"test@example.com","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "test@example.com", "secret123").
					Return("", nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `failed to login`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService, 15*time.Minute)

			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			if tt.wantCookie {
				cookies := w.Result().Cookies()
				require.Len(t, cookies, 1)
				cookie := cookies[0]
				assert.Equal(t, middlewarectx.TokenCookieName, cookie.Name)
				assert.Equal(t, "issued.jwt.token", cookie.Value)
				assert.Equal(t, "/", cookie.Path)
				assert.True(t, cookie.HttpOnly)
				assert.Equal(t, int((15 * time.Minute).Seconds()), cookie.MaxAge)
			}

			mockService.AssertExpectations(t)
		})
	}
}
