// Package server wires configuration, storage, services and the HTTP
// server together and runs them until a shutdown signal arrives.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/logging"
	"github.com/dmitrijs2005/edupilot/internal/server/config"
	"github.com/dmitrijs2005/edupilot/internal/server/httpapi"
	"github.com/dmitrijs2005/edupilot/internal/server/jobs"
	"github.com/dmitrijs2005/edupilot/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/edupilot/internal/server/services"
	"github.com/dmitrijs2005/edupilot/internal/server/views"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	users       *services.UserService
	httpServer  *httpapi.Server
	scheduler   *jobs.Scheduler
}

// openStorage is a test seam.
var openStorage = repomanager.Open

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	rm, err := openStorage(c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := rm.RunMigrations(ctx); err != nil {
		rm.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	ts := services.NewTaskService(rm, logger)
	ls := services.NewStudyLogService(rm, logger)
	us := services.NewUserService(rm, c, logger)
	es := services.NewExportService(rm, c, logger)

	pages, err := views.New(ts, ls, logger)
	if err != nil {
		rm.Close()
		return nil, err
	}

	srv := httpapi.NewServer(c, logger, httpapi.Deps{
		Tasks:          ts,
		StudyLogs:      ls,
		Users:          us,
		Exports:        es,
		Health:         rm,
		Views:          pages,
		ProtectedPaths: views.ProtectedPaths(),
		LoginPath:      views.LoginPath,
	})

	return &App{
		config:      c,
		logger:      logger,
		repomanager: rm,
		users:       us,
		httpServer:  srv,
		scheduler:   jobs.NewScheduler(time.UTC, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startScheduler(ctx context.Context) {
	if _, err := app.scheduler.SchedulePurge(ctx, app.config.SessionPurgeSchedule, app.users); err != nil {
		app.logger.Error(ctx, "invalid session purge schedule", "schedule", app.config.SessionPurgeSchedule, "error", err)
	}
	app.scheduler.Run(ctx)
}

// Run blocks until ctx is cancelled, a signal arrives or the HTTP server
// fails, then closes storage.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "driver", app.config.StorageDriver)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startScheduler(ctx)
	}()

	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(ctx, "close storage", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
