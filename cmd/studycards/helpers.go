package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lernapp-2025/studycards-v3/internal/app"
	"github.com/lernapp-2025/studycards-v3/internal/config"
	"github.com/lernapp-2025/studycards-v3/internal/logging"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// setupLogger installs the configured logger as the default one. Logs go to
// the command's error stream so they never mix with command output.
func setupLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, io.Closer) {
	logger, closer := logging.New(cfg.Log, cmd.ErrOrStderr(), debugMode)
	slog.SetDefault(logger)
	return logger, closer
}

// resolveUser prefers the --user flag over the configured default.
func resolveUser(cfg *config.Config) (string, error) {
	if userFlag != "" {
		return userFlag, nil
	}
	if cfg.CLI.UserID != "" {
		return cfg.CLI.UserID, nil
	}
	return "", errors.New("no user id: pass --user or set cli.user_id")
}

type session struct {
	cfg      *config.Config
	logger   *slog.Logger
	services *app.Services
	userID   string
}

// withSession loads the configuration, opens the store and runs fn.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) (err error) {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, logCloser := setupLogger(cmd, cfg)
	defer func() { _ = logCloser.Close() }()

	userID, err := resolveUser(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	services, err := app.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if closeErr := services.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close store: %w", closeErr))
		}
	}()

	return fn(ctx, &session{cfg: cfg, logger: logger, services: services, userID: userID})
}
