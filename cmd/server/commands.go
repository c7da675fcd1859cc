package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/do"
	"github.com/spf13/cobra"
	"github.com/yukikurage/task-manager/internal/bootstrap"
	"github.com/yukikurage/task-manager/internal/config"
	"github.com/yukikurage/task-manager/internal/database"
	"github.com/yukikurage/task-manager/internal/services"
	"github.com/yukikurage/task-manager/internal/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		inj := bootstrap.BuildContainer()
		defer func() { _ = inj.Shutdown() }()

		return migrate(inj)
	},
}

var superuser struct {
	username string
	email    string
	password string
}

var createSuperuserCmd = &cobra.Command{
	Use:   "create-superuser",
	Short: "Create a worker with every permission",
	RunE: func(cmd *cobra.Command, args []string) error {
		inj := bootstrap.BuildContainer()
		defer func() { _ = inj.Shutdown() }()

		if err := migrate(inj); err != nil {
			return err
		}

		worker, err := do.MustInvoke[*services.AuthService](inj).CreateSuperuser(services.SignUpInput{
			Username:  superuser.username,
			Email:     superuser.email,
			Password1: superuser.password,
			Password2: superuser.password,
		})
		if err != nil {
			if fieldErrs, ok := validation.As(err); ok {
				return fmt.Errorf("invalid superuser: %s", fieldErrs.Error())
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Superuser %q created (id %d)\n", worker.Username, worker.ID)
		return nil
	},
}

func init() {
	createSuperuserCmd.Flags().StringVarP(&superuser.username, "username", "u", "", "login name")
	createSuperuserCmd.Flags().StringVarP(&superuser.email, "email", "e", "", "email address")
	createSuperuserCmd.Flags().StringVarP(&superuser.password, "password", "p", "", "password")
	_ = createSuperuserCmd.MarkFlagRequired("username")
	_ = createSuperuserCmd.MarkFlagRequired("password")
}

func migrate(inj *do.Injector) error {
	db, err := do.Invoke[*gorm.DB](inj)
	if err != nil {
		return err
	}
	return database.Migrate(db, do.MustInvoke[*zap.Logger](inj))
}

func runServe(cmd *cobra.Command, args []string) error {
	// build dependency injection container
	inj := bootstrap.BuildContainer()
	defer func() { _ = inj.Shutdown() }()

	cfg, err := do.Invoke[*config.Config](inj)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log, err := do.Invoke[*zap.Logger](inj)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if err := migrate(inj); err != nil {
		return err
	}

	engine, err := do.Invoke[*gin.Engine](inj)
	if err != nil {
		return err
	}

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: engine}

	go func() {
		log.Sugar().Infow("starting http server", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Sugar().Fatalw("listen error", "err", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Sugar().Errorw("server shutdown", "err", err)
	}
	log.Sugar().Info("server exited")
	return nil
}
