// Package updaterole реализует HTTP-обработчик смены роли пользователя.
//
// Маршрут закрыт ролью admin на уровне роутера; обработчик дополнительно
// проверяет, что присланная роль входит в закрытый набор.
package updaterole

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/resume-analyzer/internal/http/middlewarectx"
	"github.com/magabrotheeeer/resume-analyzer/internal/http/response"
	"github.com/magabrotheeeer/resume-analyzer/internal/lib/sl"
	"github.com/magabrotheeeer/resume-analyzer/internal/models"
)

// Request — входные данные для смены роли.
type Request struct {
	Role string `json:"role" validate:"required,oneof=admin user"`
}

// Service описывает бизнес-логику обновления роли.
type Service interface {
	UpdateRole(ctx context.Context, userID string, role models.Role) (*models.User, error)
}

// Handler обрабатывает HTTP-запросы смены роли.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Смена роли
// @Description Обновляет роль текущего пользователя. Доступно только администраторам.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body Request true "Новая роль (admin или user)"
// @Success 200 {object} response.Response "Обновленный профиль"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /users/role [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.updaterole"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	role, ok := models.ParseRole(req.Role)
	if !ok {
		log.Error("unknown role", slog.String("role", req.Role))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("unknown role"))
		return
	}

	updated, err := h.service.UpdateRole(r.Context(), user.ID, role)
	if err != nil {
		log.Error("failed to update role", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update role"))
		return
	}

	log.Info("role updated", slog.String("user_id", updated.ID), slog.String("role", string(updated.Role)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"user": updated,
	}))
}
