// Package upload реализует HTTP-обработчик загрузки резюме.
//
// Тело запроса — multipart/form-data; каждая часть обрабатывается
// последовательно: файл сохраняется на диск, отправляется во внешний
// сервис анализа и записывается в хранилище. Сбой анализа одной части
// не прерывает обработку, сбой записи на диск или в хранилище — прерывает.
package upload

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/resume-analyzer/internal/http/middlewarectx"
	"github.com/magabrotheeeer/resume-analyzer/internal/http/response"
	"github.com/magabrotheeeer/resume-analyzer/internal/lib/sl"
	"github.com/magabrotheeeer/resume-analyzer/internal/models"
)

// Service описывает бизнес-логику приема одного файла.
type Service interface {
	Ingest(ctx context.Context, userID, fileName string, data []byte) (*models.Resume, error)
}

// Handler обрабатывает HTTP-запросы загрузки резюме.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Загрузка резюме
// @Description Принимает multipart/form-data с одним или несколькими файлами резюме.
// @Tags Resumes
// @Accept  multipart/form-data
// @Produce  json
// @Param file formData file true "Файл резюме"
// @Success 200 {object} response.Response "Резюме загружены"
// @Failure 400 {object} response.ErrorResponse "Некорректное multipart-тело"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /resume [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.resume.upload"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user not authorized"))
		return
	}

	reader, err := r.MultipartReader()
	if err != nil {
		log.Error("failed to open multipart reader", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid multipart body"))
		return
	}

	uploaded := make([]*models.Resume, 0, 1)
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Error("failed to read multipart part", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid multipart body"))
			return
		}

		fileName := part.FileName()
		if fileName == "" {
			fileName = uuid.New().String()
		}

		data, err := io.ReadAll(part)
		if err != nil {
			log.Error("failed to read part body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid multipart body"))
			return
		}

		log.Info("file received",
			slog.String("field", part.FormName()),
			slog.String("file_name", fileName),
			slog.Int("size", len(data)))

		resume, err := h.service.Ingest(r.Context(), user.ID, fileName, data)
		if err != nil {
			log.Error("failed to ingest resume", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to upload resume"))
			return
		}
		uploaded = append(uploaded, resume)
	}

	log.Info("resumes uploaded", slog.Int("count", len(uploaded)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"resumes": uploaded,
		"message": "resume uploaded successfully",
	}))
}
