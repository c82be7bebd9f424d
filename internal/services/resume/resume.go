// Package resume реализует конвейер загрузки резюме: сохранение файла во
// временное хранилище, best-effort вызов внешнего сервиса анализа и
// создание записи в базе данных. Запись создаётся на каждый загруженный
// файл независимо от исхода анализа.
package resume

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/magabrotheeeer/resume-analyzer/internal/lib/sl"
	"github.com/magabrotheeeer/resume-analyzer/internal/metrics"
	"github.com/magabrotheeeer/resume-analyzer/internal/models"
)

// ResumeRepository описывает контракт для работы с резюме в базе данных.
type ResumeRepository interface {
	SaveResume(ctx context.Context, userID, filePath string, analysisResult json.RawMessage) (*models.Resume, error)
	GetResume(ctx context.Context, userID, resumeID string) (*models.Resume, error)
	DeleteResume(ctx context.Context, userID, resumeID string) error
	ListResumes(ctx context.Context, userID string, page, limit int) ([]*models.Resume, error)
}

// Analyzer описывает клиент внешнего сервиса анализа резюме.
type Analyzer interface {
	Analyze(ctx context.Context, fileName string, data []byte) (json.RawMessage, error)
}

// ResultCache кэширует результаты анализа по дайджесту содержимого файла.
type ResultCache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// ResumeService реализует конвейер загрузки и операции чтения/удаления резюме.
type ResumeService struct {
	repo      ResumeRepository
	analyzer  Analyzer
	cache     ResultCache
	uploadDir string
	log       *slog.Logger
}

// NewResumeService создает новый экземпляр ResumeService.
// cache может быть nil — тогда каждый файл анализируется заново.
func NewResumeService(repo ResumeRepository, analyzer Analyzer, cache ResultCache, uploadDir string, log *slog.Logger) *ResumeService {
	return &ResumeService{
		repo:      repo,
		analyzer:  analyzer,
		cache:     cache,
		uploadDir: uploadDir,
		log:       log,
	}
}

// Ingest обрабатывает один загруженный файл: сохраняет его во временное
// хранилище, запрашивает анализ и создаёт запись в базе. Ошибка анализа
// не прерывает обработку — запись создаётся без результата. Ошибки
// файлового хранилища и базы фатальны для вызова.
func (s *ResumeService) Ingest(ctx context.Context, userID, fileName string, data []byte) (*models.Resume, error) {
	const op = "resume.Ingest"

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	filePath := filepath.Join(s.uploadDir, fileName)
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	analysisResult := s.analyze(ctx, fileName, data)

	saved, err := s.repo.SaveResume(ctx, userID, filePath, analysisResult)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.ResumesUploaded.Inc()
	s.log.Info("resume ingested",
		slog.String("user_id", userID),
		slog.String("file_path", filePath),
		slog.Bool("analyzed", analysisResult != nil))
	return saved, nil
}

// analyze возвращает результат анализа файла или nil, если анализ не удался.
func (s *ResumeService) analyze(ctx context.Context, fileName string, data []byte) json.RawMessage {
	cacheKey := analysisCacheKey(data)

	if s.cache != nil {
		var cached json.RawMessage
		found, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			s.log.Warn("analysis cache read failed", sl.Err(err))
		}
		if found {
			metrics.AnalysisCacheHits.Inc()
			return cached
		}
	}

	result, err := s.analyzer.Analyze(ctx, fileName, data)
	if err != nil {
		metrics.AnalysisFailures.Inc()
		s.log.Warn("analysis service call failed", slog.String("file_name", fileName), sl.Err(err))
		return nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, result); err != nil {
			s.log.Warn("analysis cache write failed", sl.Err(err))
		}
	}
	return result
}

// Get возвращает резюме пользователя по идентификатору.
func (s *ResumeService) Get(ctx context.Context, userID, resumeID string) (*models.Resume, error) {
	const op = "resume.Get"

	found, err := s.repo.GetResume(ctx, userID, resumeID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return found, nil
}

// Remove удаляет запись о резюме и затем файл из временного хранилища.
// Источник истины — запись в базе: ошибка удаления файла только логируется.
func (s *ResumeService) Remove(ctx context.Context, userID, resumeID string) error {
	const op = "resume.Remove"

	found, err := s.repo.GetResume(ctx, userID, resumeID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeleteResume(ctx, userID, resumeID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Remove(found.FilePath); err != nil {
		s.log.Warn("could not delete staged file",
			slog.String("file_path", found.FilePath), sl.Err(err))
	}
	return nil
}

// List возвращает страницу резюме пользователя.
func (s *ResumeService) List(ctx context.Context, userID string, page, limit int) ([]*models.Resume, error) {
	const op = "resume.List"

	resumes, err := s.repo.ListResumes(ctx, userID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return resumes, nil
}

func analysisCacheKey(data []byte) string {
	digest := sha256.Sum256(data)
	return "analysis:" + hex.EncodeToString(digest[:])
}
