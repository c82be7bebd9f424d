// Package resumeanalyzer предоставляет маршруты для основного приложения.
package resumeanalyzer

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/resume-analyzer/internal/config"
	"github.com/magabrotheeeer/resume-analyzer/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/resume-analyzer/internal/http/handlers/auth/register"
	resumelist "github.com/magabrotheeeer/resume-analyzer/internal/http/handlers/resume/list"
	resumeread "github.com/magabrotheeeer/resume-analyzer/internal/http/handlers/resume/read"
	resumeremove "github.com/magabrotheeeer/resume-analyzer/internal/http/handlers/resume/remove"
	resumeupload "github.com/magabrotheeeer/resume-analyzer/internal/http/handlers/resume/upload"
	userlist "github.com/magabrotheeeer/resume-analyzer/internal/http/handlers/user/list"
	"github.com/magabrotheeeer/resume-analyzer/internal/http/handlers/user/me"
	"github.com/magabrotheeeer/resume-analyzer/internal/http/handlers/user/updatename"
	"github.com/magabrotheeeer/resume-analyzer/internal/http/handlers/user/updatepassword"
	"github.com/magabrotheeeer/resume-analyzer/internal/http/handlers/user/updaterole"
	"github.com/magabrotheeeer/resume-analyzer/internal/http/middlewarectx"
	"github.com/magabrotheeeer/resume-analyzer/internal/lib/jwt"
	"github.com/magabrotheeeer/resume-analyzer/internal/models"
	authservice "github.com/magabrotheeeer/resume-analyzer/internal/services/auth"
	resumeservice "github.com/magabrotheeeer/resume-analyzer/internal/services/resume"
	userservice "github.com/magabrotheeeer/resume-analyzer/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	cfg *config.Config,
	jwtMaker jwt.Maker,
	authService *authservice.AuthService,
	userService *userservice.UserService,
	resumeService *resumeservice.ResumeService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService, cfg.TokenTTL).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger, 10, 20))

			// Уберите models.RoleUser из списка, чтобы оставить маршрут только администраторам
			r.With(middlewarectx.RoleMiddleware(logger, models.RoleAdmin, models.RoleUser)).
				Get("/users/me", me.New(logger).ServeHTTP)
			r.With(middlewarectx.RoleMiddleware(logger, models.RoleAdmin, models.RoleUser)).
				Get("/users", userlist.New(logger, userService).ServeHTTP)

			r.Put("/users/name", updatename.New(logger, userService).ServeHTTP)
			r.With(middlewarectx.RoleMiddleware(logger, models.RoleAdmin)).
				Put("/users/role", updaterole.New(logger, userService).ServeHTTP)
			r.Put("/users/password", updatepassword.New(logger, userService).ServeHTTP)

			r.Post("/resume", resumeupload.New(logger, resumeService).ServeHTTP)
			r.Get("/resume/{id}", resumeread.New(logger, resumeService).ServeHTTP)
			r.Delete("/resume/{id}", resumeremove.New(logger, resumeService).ServeHTTP)
			r.Get("/resumes", resumelist.New(logger, resumeService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
