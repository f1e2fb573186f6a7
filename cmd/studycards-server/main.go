package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/lernapp-2025/studycards-v3/internal/app"
	"github.com/lernapp-2025/studycards-v3/internal/bootstrap"
	"github.com/lernapp-2025/studycards-v3/internal/config"
	"github.com/lernapp-2025/studycards-v3/internal/database"
	"github.com/lernapp-2025/studycards-v3/internal/logging"
	"github.com/lernapp-2025/studycards-v3/internal/server"
)

var (
	configFile string
	debugMode  bool
	migrate    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "studycards-server",
		Short:         "Studycards folder and card layout HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug mode")
	rootCmd.Flags().BoolVar(&migrate, "migrate", false, "Apply pending migrations before serving (sql store only)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	logger, logCloser := logging.New(cfg.Log, os.Stderr, debugMode)
	slog.SetDefault(logger)
	lifecycle := bootstrap.New(logger, bootstrap.DefaultShutdownTimeout)
	lifecycle.AddShutdownHook("log", func(context.Context) error {
		return logCloser.Close()
	})

	if migrate {
		if err := migrateDatabase(ctx, cfg, logger); err != nil {
			_ = logCloser.Close()
			return err
		}
	}

	services, err := app.Open(ctx, cfg, logger)
	if err != nil {
		_ = logCloser.Close()
		return fmt.Errorf("app.Open() > %w", err)
	}
	lifecycle.AddShutdownHook("store", func(context.Context) error {
		return services.Close()
	})

	srv := newHTTPServer(cfg, services, logger)
	lifecycle.AddShutdownHook("http", srv.Shutdown)

	return lifecycle.Run(ctx, func(ctx context.Context) error {
		logger.Info("starting server", "addr", srv.Addr, "store", cfg.Store.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

func migrateDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.Store.Backend == "postgrest" {
		return errors.New("--migrate needs store.backend sql")
	}
	db, err := database.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("database.Connect() > %w", err)
	}
	defer func() { _ = db.Close() }()

	applied, err := database.Migrate(ctx, db, logger)
	if err != nil {
		return fmt.Errorf("database.Migrate() > %w", err)
	}
	logger.Info("migrations applied", "count", len(applied))
	return nil
}

// newHTTPServer serves the API over HTTP/1.1 and cleartext HTTP/2.
func newHTTPServer(cfg *config.Config, services *app.Services, logger *slog.Logger) *http.Server {
	handler := server.NewHandler(services.Folders, services.Cards, logger, server.Options{
		AtomicReorder: cfg.Folders.AtomicReorder,
	})
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.CORS(cfg.Server.CORS.AllowedOrigins, h2c.NewHandler(handler.Routes(), &http2.Server{})),
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}
