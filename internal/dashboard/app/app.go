package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/google"
	httpapi "github.com/gautamkumarcode/youtube-video-management/internal/dashboard/http"
	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/service"
	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/store"
	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/store/drivers/sqlite"
	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/youtube"
	"github.com/gautamkumarcode/youtube-video-management/pkg/cryptox"
	"github.com/gautamkumarcode/youtube-video-management/pkg/jwtx"
	"github.com/gautamkumarcode/youtube-video-management/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the dashboard backend with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	tokenStore          *service.TokenStore
	authService         *service.AuthService
	videoService        *service.VideoService
	noteService         *service.NoteService
	eventService        *service.EventService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "yt-dashboard",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET is required")
	}
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" || cfg.GoogleRedirectURI == "" {
		return nil, errors.New("GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET and GOOGLE_REDIRECT_URI are required")
	}

	if cfg.TokenSealKeyFile != "" {
		cryptox.SetSealKeyPath(cfg.TokenSealKeyFile)
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	// Restore persisted OAuth credentials so a restart does not force a
	// fresh login.
	if app.tokenStore.Load(context.Background()) {
		app.logger.Info("oauth credentials restored from database")
	} else {
		app.logger.Info("no stored oauth credentials, login required")
	}

	app.housekeepingService.Start()

	app.logger.Info("dashboard backend starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down dashboard backend...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("dashboard backend stopped")
	return nil
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initServices() error {
	signer, err := jwtx.NewSigner([]byte(app.cfg.SessionSecret), app.cfg.SessionIssuer)
	if err != nil {
		return err
	}

	provider := google.NewClient(
		app.cfg.GoogleClientID,
		app.cfg.GoogleClientSecret,
		app.cfg.GoogleRedirectURI,
	)

	app.tokenStore = service.NewTokenStore(app.db, app.logger)

	app.authService = &service.AuthService{
		Provider:   provider,
		Guard:      service.NewCodeGuard(),
		Tokens:     app.tokenStore,
		Signer:     signer,
		SessionTTL: jwtx.DefaultSessionTTL,
	}

	ytClient := youtube.NewClient(app.cfg.YouTubeAPIKey, app.tokenStore)
	app.videoService = &service.VideoService{
		YouTube: ytClient,
		Store:   app.db,
	}

	app.noteService = &service.NoteService{Store: app.db}
	app.eventService = &service.EventService{Store: app.db, Logger: app.logger}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.EventRetention,
	)

	return nil
}

func (app *Application) initHTTP() {
	verifier, err := jwtx.NewVerifier([]byte(app.cfg.SessionSecret), app.cfg.SessionIssuer)
	if err != nil {
		// Secret already validated when building the signer.
		panic(err)
	}

	router := httpapi.NewRouter(
		verifier,
		BuildVersion,
		app.db,
		app.logger,
		app.cfg.FrontendURLs,
	)

	router.AuthService = app.authService
	router.VideoService = app.videoService
	router.NoteService = app.noteService
	router.EventService = app.eventService
	router.TokenStore = app.tokenStore
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
