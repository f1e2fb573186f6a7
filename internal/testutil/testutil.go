// Package testutil provides shared test helpers for config files and
// migrated SQLite databases.
package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/lernapp-2025/studycards-v3/internal/config"
	"github.com/lernapp-2025/studycards-v3/internal/database"
)

// SetupTestConfig writes a config file that points at a SQLite database in
// tmpDir and returns the path to the file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	configContent := fmt.Sprintf(`database:
  driver: sqlite
  path: %s
  connect_retries: 1
store:
  backend: sql
log:
  level: error
cli:
  user_id: test-user
`, filepath.Join(tmpDir, "studycards.db"))

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewTestDB opens a migrated SQLite database in a temporary directory. It is
// closed when the test ends.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = database.Migrate(context.Background(), db, DiscardLogger())
	require.NoError(t, err)
	return db
}

// CardSetOption configures optional fields of a seeded card set.
type CardSetOption func(*cardSetRow)

type cardSetRow struct {
	ID         string
	Name       string
	FolderID   *string
	UserID     string
	OrderIndex int
}

// InFolder files the card set in a folder.
func InFolder(folderID string) CardSetOption {
	return func(r *cardSetRow) { r.FolderID = &folderID }
}

// WithOrder sets the card set's order index.
func WithOrder(i int) CardSetOption {
	return func(r *cardSetRow) { r.OrderIndex = i }
}

// SeedCardSet inserts a card set owned by userID.
func SeedCardSet(t *testing.T, db *sqlx.DB, id, name, userID string, opts ...CardSetOption) {
	t.Helper()

	row := cardSetRow{ID: id, Name: name, UserID: userID}
	for _, opt := range opts {
		opt(&row)
	}
	now := time.Now().UTC()
	_, err := db.Exec(db.Rebind(`INSERT INTO card_sets (id, name, folder_id, user_id, is_public, order_index, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`), row.ID, row.Name, row.FolderID, row.UserID, false, row.OrderIndex, now, now)
	require.NoError(t, err)
}

// SeedFlashcard inserts a flashcard whose faces hold the given JSON documents.
// An empty document is stored as NULL.
func SeedFlashcard(t *testing.T, db *sqlx.DB, id, cardSetID, front, back string) {
	t.Helper()

	now := time.Now().UTC()
	_, err := db.Exec(db.Rebind(`INSERT INTO flashcards (id, card_set_id, front_content, back_content, order_index, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`), id, cardSetID, nullable(front), nullable(back), 0, now, now)
	require.NoError(t, err)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
