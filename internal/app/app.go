// Package app builds the folder and card services from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/lernapp-2025/studycards-v3/internal/card"
	"github.com/lernapp-2025/studycards-v3/internal/config"
	"github.com/lernapp-2025/studycards-v3/internal/database"
	"github.com/lernapp-2025/studycards-v3/internal/folder"
	"github.com/lernapp-2025/studycards-v3/internal/postgrest"
)

// Services are the engines wired to the configured store.
type Services struct {
	Folders   *folder.Service
	Cards     *card.Service
	Validator *folder.Validator

	closers []func() error
}

// Close releases the store connections.
func (s *Services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}

// Open connects to the store selected by cfg.Store.Backend.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Services, error) {
	validator, err := folder.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("create folder validator: %w", err)
	}

	switch cfg.Store.Backend {
	case "postgrest":
		client := postgrest.NewClient(cfg.PostgREST)
		logger.Debug("using postgrest store", "url", cfg.PostgREST.URL)
		return &Services{
			Folders:   folder.NewService(postgrest.NewFolderRepository(client), validator, logger),
			Cards:     card.NewService(postgrest.NewCardRepository(client), logger),
			Validator: validator,
			closers:   []func() error{client.Close},
		}, nil
	case "sql", "":
		db, err := database.Connect(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		logger.Debug("using sql store", "driver", db.DriverName())
		return NewSQL(db, validator, logger), nil
	}
	return nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
}

// NewSQL wires the services to an open database. Closing the Services closes db.
func NewSQL(db *sqlx.DB, validator *folder.Validator, logger *slog.Logger) *Services {
	return &Services{
		Folders:   folder.NewService(folder.NewDBRepository(db), validator, logger),
		Cards:     card.NewService(card.NewDBRepository(db), logger),
		Validator: validator,
		closers:   []func() error{db.Close},
	}
}
