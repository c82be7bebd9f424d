package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/resume-analyzer/internal/models"
)

// MockService реализует интерфейс list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, page, limit int) ([]*models.User, int64, error) {
	args := m.Called(ctx, page, limit)
	if res := args.Get(0); res != nil {
		return res.([]*models.User), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	users := []*models.User{
		{ID: "u1", Name: "first", Role: models.RoleAdmin},
		{ID: "u2", Name: "second", Role: models.RoleUser},
	}

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "параметры по умолчанию",
			url:  "/users",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, 1, 10).Return(users, int64(2), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"total":2`,
		},
		{
			name: "явные page и limit",
			url:  "/users?page=3&limit=25",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, 3, 25).Return([]*models.User{}, int64(2), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"page":3`,
		},
		{
			name: "limit обрезается до максимума",
			url:  "/users?limit=500",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, 1, 50).Return(users, int64(2), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"limit":50`,
		},
		{
			name: "некорректные параметры заменяются дефолтами",
			url:  "/users?page=abc&limit=-5",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, 1, 10).Return(users, int64(2), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"page":1`,
		},
		{
			name: "ошибка сервиса",
			url:  "/users",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, 1, 10).Return(nil, int64(0), errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `failed to list users`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
