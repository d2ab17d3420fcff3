package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/luminahq/lumina/app/lumina/api"
	"github.com/luminahq/lumina/app/lumina/config"
	"github.com/luminahq/lumina/app/lumina/site"
	"github.com/luminahq/lumina/bridge/scaffolding/mid"
	"github.com/luminahq/lumina/core/preferences"
	"github.com/luminahq/lumina/core/repositories/notesrepo"
	"github.com/luminahq/lumina/core/repositories/notesrepo/stores/notespgxstore"
	"github.com/luminahq/lumina/core/repositories/profilesrepo"
	"github.com/luminahq/lumina/core/repositories/profilesrepo/stores/profilespgxstore"
	"github.com/luminahq/lumina/core/repositories/tasksrepo"
	"github.com/luminahq/lumina/core/repositories/tasksrepo/stores/taskspgxstore"
	"github.com/luminahq/lumina/core/repositories/usersrepo"
	"github.com/luminahq/lumina/core/repositories/usersrepo/stores/userspgxstore"
	"github.com/luminahq/lumina/core/repositories/usersessionsrepo"
	"github.com/luminahq/lumina/core/repositories/usersessionsrepo/stores/usersessionspgxstore"
	"github.com/luminahq/lumina/core/sessionsweep"
	"github.com/luminahq/lumina/infrastructure/payments/stripecheckout"
	"github.com/luminahq/lumina/infrastructure/postgresdb"
	"github.com/luminahq/lumina/infrastructure/web"
	"github.com/luminahq/lumina/infrastructure/workers"
	"github.com/luminahq/lumina/sdk/logger"
	"github.com/luminahq/lumina/sdk/telemetry"
)

var build = "develop"

const appName = "LUMINA"

// sessionTTL bounds how long a login stays valid.
const sessionTTL = 24 * time.Hour

func main() {
	godotenv.Load()
	ctx := context.Background()

	log, err := logger.NewFromEnv(appName)
	if err != nil {
		log = logger.NewDefault()
		log.WarnContext(ctx, "startup", "status", "falling back to default logger", "err", err)
	}

	if err := run(ctx, log); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	tel := telemetry.NewTelemetry()

	// :*: START DATABASES :*:
	pg, err := postgresdb.NewFromEnv(appName)
	if err != nil {
		return fmt.Errorf("configuring postgres support: %w", err)
	}
	defer func() {
		log.InfoContext(ctx, "shutdown", "status", "closing database connection")
		pg.Close()
	}()

	if err := postgresdb.Migrate(ctx, pg); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	// END DATABASES //

	// REPOSITORIES //
	log.InfoContext(ctx, "startup", "status", "initializing repository support")
	users := usersrepo.NewRepository(log, userspgxstore.NewStore(log, pg))
	sessions := usersessionsrepo.NewRepository(log, usersessionspgxstore.NewStore(log, pg))
	tasks := tasksrepo.NewRepository(log, taskspgxstore.NewStore(log, pg))
	notes := notesrepo.NewRepository(log, notespgxstore.NewStore(log, pg))
	profiles := profilesrepo.NewRepository(log, profilespgxstore.NewStore(log, pg))
	prefs := preferences.NewStore(log, profiles)
	// END REPOSITORIES //

	checkout, err := stripecheckout.NewFromEnv(appName, log)
	if err != nil {
		return fmt.Errorf("configuring checkout support: %w", err)
	}

	// Expired sessions get purged in the background.
	sweeper, err := workers.NewFromEnv[sessionsweep.SweepTask](appName, sessionsweep.NewProcessor(log, sessions), workers.WithLogger(log.Logger))
	if err != nil {
		return fmt.Errorf("configuring session sweeper: %w", err)
	}
	if err := sweeper.Start(ctx); err != nil {
		return fmt.Errorf("starting session sweeper: %w", err)
	}
	defer sweeper.Stop()

	webCfg, err := web.LoadServerConfig(appName)
	if err != nil {
		return fmt.Errorf("webserver: %w", err)
	}

	cfg := config.Lumina{
		Build:     build,
		Logger:    log,
		Telemetry: tel,
		DB:        pg,
		Repositories: config.Repositories{
			Users:    users,
			Sessions: sessions,
			Tasks:    tasks,
			Notes:    notes,
			Profiles: profiles,
		},
		Preferences: prefs,
		Checkout:    checkout,
		SessionTTL:  sessionTTL,
	}

	server := web.NewWebServer(webCfg, webHandler(webCfg, cfg), logger.NewStdLogger(log, slog.LevelError))

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
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		defer log.InfoContext(ctx, "shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(ctx, webCfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func webHandler(webCfg web.ServerConfig, cfg config.Lumina) http.Handler {
	app := web.NewApp(cfg.Logger, cfg.Telemetry,
		mid.CORS(webCfg.CORSOrigins...),
		mid.Logger(cfg.Logger),
		mid.Errors(cfg.Logger),
		mid.Metrics(),
		mid.Panics(),
	)

	// API
	api.AddHandlers(app, webCfg.APIRoute, cfg)

	// LANDING SITE
	site.AddHandlers(app)

	return app
}
