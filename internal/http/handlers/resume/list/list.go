// Package list реализует HTTP-обработчик списка резюме пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/resume-analyzer/internal/http/middlewarectx"
	"github.com/magabrotheeeer/resume-analyzer/internal/http/response"
	"github.com/magabrotheeeer/resume-analyzer/internal/lib/sl"
	"github.com/magabrotheeeer/resume-analyzer/internal/models"
)

const maxLimit = 50

// Service описывает бизнес-логику получения списка резюме.
type Service interface {
	List(ctx context.Context, userID string, page, limit int) ([]*models.Resume, error)
}

// Handler обрабатывает HTTP-запросы списка резюме.
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
// @Summary Список резюме
// @Description Возвращает страницу резюме текущего пользователя.
// @Tags Resumes
// @Produce  json
// @Param page query int false "Номер страницы (по умолчанию 1)"
// @Param limit query int false "Размер страницы (по умолчанию 10, максимум 50)"
// @Success 200 {object} response.Response "Список резюме"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /resumes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.resume.list"

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

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	resumes, err := h.service.List(r.Context(), user.ID, page, limit)
	if err != nil {
		log.Error("failed to list resumes", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list resumes"))
		return
	}

	log.Info("resumes listed", slog.Int("count", len(resumes)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"resumes": resumes,
		"count":   len(resumes),
		"page":    page,
		"limit":   limit,
	}))
}
