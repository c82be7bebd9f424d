package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_SaveResume(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	data := GetTestUserData()
	userID := factory.CreateUser(t, data.Name, data.Email, data.PasswordHash, data.Role)

	ctx := context.Background()

	t.Run("с результатом анализа", func(t *testing.T) {
		result := json.RawMessage(`{"skills":["go","sql"]}`)
		resume, err := storage.SaveResume(ctx, userID, "uploads/temp/cv.pdf", result)
		require.NoError(t, err)
		assert.NotEmpty(t, resume.ID)
		assert.Equal(t, userID, resume.UserID)
		assert.Equal(t, "uploads/temp/cv.pdf", resume.FilePath)
		assert.JSONEq(t, string(result), string(resume.AnalysisResult))
	})

	t.Run("без результата анализа", func(t *testing.T) {
		resume, err := storage.SaveResume(ctx, userID, "uploads/temp/raw.pdf", nil)
		require.NoError(t, err)
		assert.Nil(t, resume.AnalysisResult)
	})
}

func TestStorage_GetResume(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	data := GetTestUserData()
	userID := factory.CreateUser(t, data.Name, data.Email, data.PasswordHash, data.Role)
	otherData := GetTestUserData()
	otherID := factory.CreateUser(t, otherData.Name, otherData.Email, otherData.PasswordHash, otherData.Role)

	resumeID := factory.CreateResume(t, userID, "uploads/temp/cv.pdf", json.RawMessage(`{"ok":true}`))

	ctx := context.Background()

	got, err := storage.GetResume(ctx, userID, resumeID)
	require.NoError(t, err)
	assert.Equal(t, resumeID, got.ID)
	assert.Equal(t, "uploads/temp/cv.pdf", got.FilePath)

	// Чужое резюме недоступно
	_, err = storage.GetResume(ctx, otherID, resumeID)
	require.ErrorIs(t, err, ErrResumeNotFound)
}

func TestStorage_DeleteResume(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	data := GetTestUserData()
	userID := factory.CreateUser(t, data.Name, data.Email, data.PasswordHash, data.Role)
	resumeID := factory.CreateResume(t, userID, "uploads/temp/cv.pdf", nil)

	ctx := context.Background()

	err := storage.DeleteResume(ctx, userID, resumeID)
	require.NoError(t, err)

	verification := NewTestVerification(storage)
	verification.VerifyResumeNotExists(t, resumeID)

	// Повторное удаление
	err = storage.DeleteResume(ctx, userID, resumeID)
	require.ErrorIs(t, err, ErrResumeNotFound)
}

func TestStorage_ListResumes(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	data := GetTestUserData()
	userID := factory.CreateUser(t, data.Name, data.Email, data.PasswordHash, data.Role)
	otherData := GetTestUserData()
	otherID := factory.CreateUser(t, otherData.Name, otherData.Email, otherData.PasswordHash, otherData.Role)

	for range 3 {
		factory.CreateResume(t, userID, "uploads/temp/cv.pdf", nil)
	}
	factory.CreateResume(t, otherID, "uploads/temp/other.pdf", nil)

	ctx := context.Background()

	resumes, err := storage.ListResumes(ctx, userID, 1, 2)
	require.NoError(t, err)
	assert.Len(t, resumes, 2)

	resumes, err = storage.ListResumes(ctx, userID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, resumes, 1)

	// Пустая страница за пределами данных
	resumes, err = storage.ListResumes(ctx, userID, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, resumes)
}
