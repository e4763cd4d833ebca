package main

import (
	"context"
	"expvar"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/tasktide/tasktide/app/tasktide/api"
	"github.com/tasktide/tasktide/app/tasktide/config"
	"github.com/tasktide/tasktide/bridge/scaffolding/mid"
	"github.com/tasktide/tasktide/core/repositories/tasksrepo"
	"github.com/tasktide/tasktide/core/repositories/tasksrepo/stores/taskspgxstore"
	"github.com/tasktide/tasktide/core/repositories/usersrepo"
	"github.com/tasktide/tasktide/core/repositories/usersrepo/stores/userspgxstore"
	"github.com/tasktide/tasktide/infrastructure/postgresdb"
	"github.com/tasktide/tasktide/infrastructure/web"
	"github.com/tasktide/tasktide/sdk/logger"
	"github.com/tasktide/tasktide/sdk/telemetry"
)

var build = "develop"
var appName = "TASKTIDE"

func main() {
	godotenv.Load()
	ctx := context.Background()

	log, err := logger.NewFromEnv(appName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "building logger:", err)
		os.Exit(1)
	}

	if err := run(ctx, log); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	pg, err := postgresdb.NewFromEnv(appName)
	if err != nil {
		return fmt.Errorf("configuring postgres support: %w", err)
	}
	defer func() {
		log.InfoContext(ctx, "shutdown", "status", "closing database connection")
		pg.Close()
	}()

	log.InfoContext(ctx, "startup", "status", "initializing repository support")

	cfg := config.TaskTide{
		Build:     build,
		Logger:    log,
		Telemetry: telemetry.NewTelemetry(),
		Repositories: config.Repositories{
			Tasks: tasksrepo.NewRepository(log, taskspgxstore.NewStore(log, pg)),
			Users: usersrepo.NewRepository(log, userspgxstore.NewStore(log, pg)),
		},
	}

	handler, err := webHandler(cfg)
	if err != nil {
		return fmt.Errorf("building web handler: %w", err)
	}

	server, err := web.NewServerFromEnv(appName,
		web.WithHandler(handler),
		web.WithErrorLog(logger.NewStdLogger(log, slog.LevelError)),
	)
	if err != nil {
		return fmt.Errorf("webserver: %w", err)
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "startup", "status", "api router started", "host", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig.String())
		defer log.InfoContext(ctx, "shutdown", "status", "shutdown complete")

		ctx, cancel := context.WithTimeout(ctx, server.Config.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func webHandler(cfg config.TaskTide) (*web.WebHandler, error) {
	app, err := web.NewWebHandlerFromEnv(appName,
		web.WithLogging(cfg.Logger.Logger),
		web.WithTelemetry(cfg.Telemetry),
		web.WithGlobalMiddleware(
			mid.Logger(cfg.Logger),
			mid.Errors(cfg.Logger),
			mid.Metrics(),
			mid.Panics(),
		),
	)
	if err != nil {
		return nil, err
	}

	api.AddHandlers(app, cfg)

	// Program counters maintained by the metrics middleware.
	app.HandleRaw("GET /debug/vars", expvar.Handler())

	return app, nil
}
