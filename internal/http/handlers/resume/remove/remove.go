// Package remove реализует HTTP-обработчик удаления резюме.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/resume-analyzer/internal/http/middlewarectx"
	"github.com/magabrotheeeer/resume-analyzer/internal/http/response"
	"github.com/magabrotheeeer/resume-analyzer/internal/lib/sl"
	"github.com/magabrotheeeer/resume-analyzer/internal/storage/repository"
)

// Service описывает бизнес-логику удаления резюме.
type Service interface {
	Remove(ctx context.Context, userID, resumeID string) error
}

// Handler обрабатывает HTTP-запросы удаления резюме.
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
// @Summary Удаление резюме
// @Description Удаляет запись резюме и пытается удалить файл с диска.
// @Tags Resumes
// @Produce  json
// @Param id path string true "Идентификатор резюме (uuid)"
// @Success 200 {object} response.Response "Резюме удалено"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Резюме не найдено"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /resume/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.resume.remove"

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

	resumeID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(resumeID); err != nil {
		log.Error("invalid resume id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid resume id"))
		return
	}

	if err := h.service.Remove(r.Context(), user.ID, resumeID); err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			log.Error("resume not found", slog.String("resume_id", resumeID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("resume not found"))
			return
		}
		log.Error("failed to delete resume", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete resume"))
		return
	}

	log.Info("resume deleted", slog.String("resume_id", resumeID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "resume deleted successfully",
	}))
}
