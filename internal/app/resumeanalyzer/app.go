// Package resumeanalyzer собирает приложение: подключения к PostgreSQL,
// Redis и RabbitMQ, бизнес-сервисы, HTTP-роутер и жизненный цикл сервера.
package resumeanalyzer

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/resume-analyzer/internal/analyzer"
	"github.com/magabrotheeeer/resume-analyzer/internal/cache"
	"github.com/magabrotheeeer/resume-analyzer/internal/config"
	"github.com/magabrotheeeer/resume-analyzer/internal/lib/jwt"
	"github.com/magabrotheeeer/resume-analyzer/internal/lib/sl"
	"github.com/magabrotheeeer/resume-analyzer/internal/migrations"
	"github.com/magabrotheeeer/resume-analyzer/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/resume-analyzer/internal/services/auth"
	resumeservice "github.com/magabrotheeeer/resume-analyzer/internal/services/resume"
	userservice "github.com/magabrotheeeer/resume-analyzer/internal/services/user"
	"github.com/magabrotheeeer/resume-analyzer/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и внешние подключения приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New создает приложение: поднимает подключения, прогоняет миграции,
// собирает сервисы и роутер. RabbitMQ необязателен: при недоступности
// брокера приложение стартует без публикации событий регистрации.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	var events authservice.EventPublisher
	conn, err := rabbitmq.Connect(cfg.AddressRabbit, cfg.RetriesRabbit, cfg.DelayRabbit)
	if err != nil {
		logger.Warn("rabbitmq unavailable, registration events disabled", sl.Err(err))
	} else {
		ch, err := rabbitmq.SetupChannel(conn, []rabbitmq.QueueConfig{
			{QueueName: rabbitmq.RegistrationQueue, RoutingKey: rabbitmq.RegistrationRoutingKey},
		})
		if err != nil {
			logger.Warn("rabbitmq channel setup failed, registration events disabled", sl.Err(err))
		} else {
			events = rabbitmq.NewPublisher(ch)
		}
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	analyzerClient := analyzer.NewClient(cfg.AnalyzerAddress, cfg.AnalyzerTimeout)

	authService := authservice.NewAuthService(db, jwtMaker, events, logger)
	userService := userservice.NewUserService(db)
	resumeService := resumeservice.NewResumeService(db, analyzerClient, cacheRedis, cfg.UploadDir, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, jwtMaker, authService, userService, resumeService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста или ошибки.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
