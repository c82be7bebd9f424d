package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/resume-analyzer/internal/models"
)

// SaveResume сохраняет запись о загруженном резюме и возвращает её.
// analysisResult может быть nil — запись создаётся в любом случае.
func (s *Storage) SaveResume(ctx context.Context, userID, filePath string, analysisResult json.RawMessage) (*models.Resume, error) {
	const op = "storage.SaveResume"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO resumes (user_id, file_path, analysis_result)
			  VALUES ($1, $2, $3)
			  RETURNING id, user_id, file_path, analysis_result, uploaded_at`
	var result sql.NullString
	var arg any
	if analysisResult != nil {
		arg = string(analysisResult)
	}
	r := &models.Resume{}
	if err := s.DB.QueryRowContext(ctx, query, userID, filePath, arg).
		Scan(&r.ID, &r.UserID, &r.FilePath, &result, &r.UploadedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if result.Valid {
		r.AnalysisResult = json.RawMessage(result.String)
	}
	return r, nil
}

// GetResume возвращает резюме по идентификатору в рамках одного владельца.
func (s *Storage) GetResume(ctx context.Context, userID, resumeID string) (*models.Resume, error) {
	const op = "storage.GetResume"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, file_path, analysis_result, uploaded_at
			  FROM resumes
			  WHERE user_id = $1 AND id = $2`
	var result sql.NullString
	r := &models.Resume{}
	err := s.DB.QueryRowContext(ctx, query, userID, resumeID).
		Scan(&r.ID, &r.UserID, &r.FilePath, &result, &r.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrResumeNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if result.Valid {
		r.AnalysisResult = json.RawMessage(result.String)
	}
	return r, nil
}

// DeleteResume удаляет резюме по идентификатору в рамках одного владельца.
func (s *Storage) DeleteResume(ctx context.Context, userID, resumeID string) error {
	const op = "storage.DeleteResume"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM resumes WHERE user_id = $1 AND id = $2`, userID, resumeID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrResumeNotFound)
	}
	return nil
}

// ListResumes возвращает страницу резюме пользователя,
// отсортированных по времени загрузки.
func (s *Storage) ListResumes(ctx context.Context, userID string, page, limit int) ([]*models.Resume, error) {
	const op = "storage.ListResumes"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	offset := (page - 1) * limit
	query := `SELECT id, user_id, file_path, analysis_result, uploaded_at
			  FROM resumes
			  WHERE user_id = $1
			  ORDER BY uploaded_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var resumes []*models.Resume
	for rows.Next() {
		var result sql.NullString
		r := &models.Resume{}
		if err = rows.Scan(&r.ID, &r.UserID, &r.FilePath, &result, &r.UploadedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if result.Valid {
			r.AnalysisResult = json.RawMessage(result.String)
		}
		resumes = append(resumes, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return resumes, nil
}
