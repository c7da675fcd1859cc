package bootstrap

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/samber/do"
	"github.com/yukikurage/task-manager/internal/config"
	"github.com/yukikurage/task-manager/internal/database"
	"github.com/yukikurage/task-manager/internal/handlers"
	"github.com/yukikurage/task-manager/internal/logger"
	"github.com/yukikurage/task-manager/internal/repository"
	"github.com/yukikurage/task-manager/internal/router"
	"github.com/yukikurage/task-manager/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuildContainer registers every component lazily; nothing connects until invoked.
func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.LogLevel)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		return database.Connect(do.MustInvoke[*config.Config](i), do.MustInvoke[*zap.Logger](i))
	})

	// Sessions
	do.Provide(inj, func(i *do.Injector) (sessions.Store, error) {
		return NewSessionStore(do.MustInvoke[*config.Config](i))
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repository.ProjectRepository, error) {
		return repository.NewProjectRepository(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repository.PositionRepository, error) {
		return repository.NewPositionRepository(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repository.TaskTypeRepository, error) {
		return repository.NewTaskTypeRepository(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repository.WorkerRepository, error) {
		return repository.NewWorkerRepository(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repository.TaskRepository, error) {
		return repository.NewTaskRepository(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (*services.AuthService, error) {
		return services.NewAuthService(do.MustInvoke[repository.WorkerRepository](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*services.ProjectService, error) {
		return services.NewProjectService(do.MustInvoke[repository.ProjectRepository](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*services.CatalogService, error) {
		return services.NewCatalogService(
			do.MustInvoke[repository.PositionRepository](i),
			do.MustInvoke[repository.TaskTypeRepository](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*services.WorkerService, error) {
		return services.NewWorkerService(
			do.MustInvoke[repository.WorkerRepository](i),
			do.MustInvoke[repository.PositionRepository](i),
			do.MustInvoke[repository.ProjectRepository](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*services.TaskService, error) {
		return services.NewTaskService(
			do.MustInvoke[repository.TaskRepository](i),
			do.MustInvoke[repository.TaskTypeRepository](i),
			do.MustInvoke[repository.ProjectRepository](i),
			do.MustInvoke[repository.WorkerRepository](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*services.HomeService, error) {
		return services.NewHomeService(
			do.MustInvoke[repository.ProjectRepository](i),
			do.MustInvoke[repository.TaskRepository](i),
			do.MustInvoke[repository.WorkerRepository](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handlers.AuthHandler, error) {
		return handlers.NewAuthHandler(do.MustInvoke[*services.AuthService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handlers.ProjectHandler, error) {
		return handlers.NewProjectHandler(do.MustInvoke[*services.ProjectService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handlers.CatalogHandler, error) {
		return handlers.NewCatalogHandler(do.MustInvoke[*services.CatalogService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handlers.WorkerHandler, error) {
		return handlers.NewWorkerHandler(
			do.MustInvoke[*services.WorkerService](i),
			do.MustInvoke[*services.CatalogService](i),
			do.MustInvoke[*services.ProjectService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handlers.TaskHandler, error) {
		return handlers.NewTaskHandler(
			do.MustInvoke[*services.TaskService](i),
			do.MustInvoke[*services.CatalogService](i),
			do.MustInvoke[*services.ProjectService](i),
			do.MustInvoke[*services.WorkerService](i),
		), nil
	})

	// Router
	do.Provide(inj, func(i *do.Injector) (*gin.Engine, error) {
		cfg := do.MustInvoke[*config.Config](i)
		gin.SetMode(cfg.GinMode)
		return router.NewRouter(router.RouterDeps{
			Log:            do.MustInvoke[*zap.Logger](i),
			SessionStore:   do.MustInvoke[sessions.Store](i),
			Workers:        do.MustInvoke[*services.AuthService](i),
			Tasks:          do.MustInvoke[*services.TaskService](i),
			HomeService:    do.MustInvoke[*services.HomeService](i),
			AuthHandler:    do.MustInvoke[*handlers.AuthHandler](i),
			ProjectHandler: do.MustInvoke[*handlers.ProjectHandler](i),
			WorkerHandler:  do.MustInvoke[*handlers.WorkerHandler](i),
			TaskHandler:    do.MustInvoke[*handlers.TaskHandler](i),
			CatalogHandler: do.MustInvoke[*handlers.CatalogHandler](i),
		}), nil
	})

	return inj
}

// NewSessionStore builds the session backend named by cfg.SessionStore.
func NewSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.SessionStore {
	case "redis", "":
		s, err := redisStore.NewStore(
			10,              // Redis pool size
			"tcp",           // network type
			cfg.RedisAddr(), // Redis address from config
			"",              // username (empty for default user)
			"",              // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}
		store = s
	case "cookie":
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	default:
		return nil, fmt.Errorf("unsupported session store %q", cfg.SessionStore)
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
