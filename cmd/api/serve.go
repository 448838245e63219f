package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PedrohFolster/inkspiration/internal/audit"
	"github.com/PedrohFolster/inkspiration/internal/cache"
	"github.com/PedrohFolster/inkspiration/internal/config"
	dbpkg "github.com/PedrohFolster/inkspiration/internal/db"
	apDomain "github.com/PedrohFolster/inkspiration/internal/domain/appointment"
	infraRepo "github.com/PedrohFolster/inkspiration/internal/infra/repository"
	"github.com/PedrohFolster/inkspiration/internal/logger"
	"github.com/PedrohFolster/inkspiration/internal/routes"
	"github.com/PedrohFolster/inkspiration/internal/storage"
	"github.com/PedrohFolster/inkspiration/internal/timezone"
	ucAppointment "github.com/PedrohFolster/inkspiration/internal/usecase/appointment"
	"github.com/PedrohFolster/inkspiration/internal/worker"
)

func newServeCommand() *cobra.Command {
	var (
		migrate         bool
		shutdownTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the background workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return serve(cfg, migrate, shutdownTimeout)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "run schema migration before serving")
	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 15*time.Second, "maximum time to wait for graceful shutdown")

	return cmd
}

func serve(cfg *config.Config, migrate bool, shutdownTimeout time.Duration) error {
	log, err := logger.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}
	if migrate {
		if err := dbpkg.Migrate(db); err != nil {
			return err
		}
	}

	profCache, err := cache.New(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = cache.Close(profCache) }()

	// A nil *S3Store must not end up inside the interface.
	var store storage.ObjectStore
	if cfg.S3Enabled() {
		s3, err := storage.NewS3(cfg)
		if err != nil {
			return err
		}
		store = s3
	} else {
		log.Info("storage.s3.disabled")
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)
	defer auditDispatcher.Close()

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	if err := routes.RegisterRoutes(r, routes.Deps{
		DB:     db,
		Config: cfg,
		Logger: log,
		Cache:  profCache,
		Store:  store,
		Audit:  auditDispatcher,
	}); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ======================================================
	// ⏱️ WORKER
	// ======================================================
	mode, err := apDomain.ParseOverlapMode(cfg.OverlapMode)
	if err != nil {
		return err
	}
	expired := ucAppointment.NewCompleteExpired(
		infraRepo.NewAppointmentGormRepository(db, mode),
		auditDispatcher,
		timezone.Location(cfg.StudioTimezone),
	)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.NewAutoComplete(expired, cfg.AutoCompleteInterval(), log).Run(ctx)
	}()

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server.started", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			stop()
			<-workerDone
			return err
		}
	}

	log.Info("server.shutting_down")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server.shutdown_failed", zap.Error(err))
	}
	<-workerDone
	auditDispatcher.Close()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Info("server.stopped")
	return nil
}
