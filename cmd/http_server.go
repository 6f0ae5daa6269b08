package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/frahmantamala/activity-tracker/internal"
	"github.com/frahmantamala/activity-tracker/internal/activity"
	"github.com/frahmantamala/activity-tracker/internal/appstate"
	"github.com/frahmantamala/activity-tracker/internal/auth"
	"github.com/frahmantamala/activity-tracker/internal/export"
	"github.com/frahmantamala/activity-tracker/internal/session"
	"github.com/frahmantamala/activity-tracker/internal/storage"
	"github.com/frahmantamala/activity-tracker/internal/transport/rest"
	"github.com/frahmantamala/activity-tracker/internal/user"
	"github.com/frahmantamala/activity-tracker/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	Adapter  *storage.Adapter
	Router   *chi.Mux
	Sessions *session.Manager
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	deps.Sessions.StartLivenessLoop(deps.Config.Security.LivenessInterval)
	go func() {
		for userID := range deps.Sessions.Expired() {
			deps.Logger.Info("session force-closed by liveness check", "user_id", userID)
		}
	}()

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		deps.Sessions.Stop()
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.L()

	backend, err := initBackend(config.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage backend: %w", err)
	}
	adapter := storage.NewAdapter(backend, lg)

	sessions := session.NewManager(adapter, config.Security.SessionTimeout, lg)

	userStore := user.NewStore(adapter, lg)
	userService := user.NewService(userStore, sessions, lg)

	activityStore := activity.NewStore(adapter, lg)
	activityService := activity.NewService(activityStore, lg)

	state := appstate.New(userService, activityService, lg)

	credentials := auth.NewCredentialStore(adapter, config.Security.BCryptCost, lg)
	tokens := auth.NewJWTTokenGenerator(config.Security.AccessTokenSecret, config.Security.AccessTokenDuration)
	authService := auth.NewService(userStore, credentials, sessions, tokens, lg)
	authService.OnUserCreated(state.UserCreated)

	exportService := export.NewService(adapter, lg)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(
		router,
		adapter,
		auth.NewHandler(authService, sessions),
		user.NewHandler(state.Users()),
		activity.NewHandler(state.Activities()),
		appstate.NewHandler(state),
		export.NewHandler(exportService),
		lg,
	)

	return &Dependencies{
		Config:   config,
		Adapter:  adapter,
		Router:   router,
		Sessions: sessions,
		Logger:   lg,
	}, nil
}

// initBackend selects the key-value backend from config. The gorm-backed
// stores keep the same table-per-row contract as the file and memory
// backends.
func initBackend(cfg internal.StorageConfig) (storage.Backend, error) {
	switch cfg.Backend {
	case internal.BackendMemory:
		return storage.NewMemoryBackend(), nil
	case internal.BackendFile:
		return storage.NewFileBackend(cfg.DataDir)
	case internal.BackendSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.Source), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return storage.NewGormBackend(db)
	case internal.BackendPostgres:
		db, err := gorm.Open(postgres.Open(cfg.Source), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		return storage.NewGormBackend(db)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
