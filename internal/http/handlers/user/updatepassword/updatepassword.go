// Package updatepassword реализует HTTP-обработчик смены пароля.
package updatepassword

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/resume-analyzer/internal/http/middlewarectx"
	"github.com/magabrotheeeer/resume-analyzer/internal/http/response"
	"github.com/magabrotheeeer/resume-analyzer/internal/lib/password"
	"github.com/magabrotheeeer/resume-analyzer/internal/lib/sl"
	"github.com/magabrotheeeer/resume-analyzer/internal/models"
	"github.com/magabrotheeeer/resume-analyzer/internal/services/user"
)

// Request — входные данные для смены пароля. Новый пароль подтверждается
// повторным вводом, старый проверяется по хэшу.
type Request struct {
	OldPassword        string `json:"old_password" validate:"required,min=6,max=64"`
	NewPassword        string `json:"new_password" validate:"required,min=6,max=64"`
	ConfirmNewPassword string `json:"confirm_new_password" validate:"required,eqfield=NewPassword"`
}

// Service описывает бизнес-логику смены пароля.
type Service interface {
	UpdatePassword(ctx context.Context, user *models.User, oldPassword, newPassword string) (*models.User, error)
}

// Handler обрабатывает HTTP-запросы смены пароля.
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
// @Summary Смена пароля
// @Description Проверяет старый пароль и сохраняет хэш нового.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body Request true "Старый и новый пароли"
// @Success 200 {object} response.Response "Пароль обновлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или неверный старый пароль"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /users/password [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.updatepassword"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	usr, ok := middlewarectx.UserFromContext(r.Context())
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

	if _, err := h.service.UpdatePassword(r.Context(), usr, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, user.ErrWrongOldPassword) {
			log.Error("old password does not match", slog.String("user_id", usr.ID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("old password is incorrect"))
			return
		}
		// Лимит пароля задан в байтах, а validate:"max" считает руны:
		// многобайтовый новый пароль проходит валидацию и отклоняется хэшером.
		if errors.Is(err, password.ErrPasswordTooLong) || errors.Is(err, password.ErrEmptyPassword) {
			log.Error("new password rejected", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("password is empty or longer than 64 bytes"))
			return
		}
		log.Error("failed to update password", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update password"))
		return
	}

	log.Info("password updated", slog.String("user_id", usr.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "password updated successfully",
	}))
}
