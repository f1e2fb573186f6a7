package database

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lernapp-2025/studycards-v3/schemas"
)

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	applied_at TIMESTAMP NOT NULL
)`

// Migrate applies the embedded migrations that have not run yet, in version
// order, and returns the names of those it applied.
func Migrate(ctx context.Context, db *sqlx.DB, logger *slog.Logger) ([]string, error) {
	return migrate(ctx, db, schemas.Migrations, logger)
}

func migrate(ctx context.Context, db *sqlx.DB, fsys fs.FS, logger *slog.Logger) ([]string, error) {
	files, err := fs.Glob(fsys, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	sort.Strings(files)

	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("ensure schema_migrations: %w", err)
	}

	var versions []int64
	if err := db.SelectContext(ctx, &versions, "SELECT version FROM schema_migrations"); err != nil {
		return nil, fmt.Errorf("select schema_migrations: %w", err)
	}
	applied := make(map[int64]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}

	var names []string
	for _, file := range files {
		name := path.Base(file)
		version, err := parseVersion(name)
		if err != nil {
			return names, err
		}
		if applied[version] {
			continue
		}
		content, err := fs.ReadFile(fsys, file)
		if err != nil {
			return names, fmt.Errorf("read %s: %w", name, err)
		}

		logger.Info("applying migration", "name", name)
		err = RunInTx(ctx, db, func(ctx context.Context, tx *sqlx.Tx) error {
			for _, stmt := range splitStatements(string(content)) {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return err
				}
			}
			_, err := tx.ExecContext(ctx,
				db.Rebind("INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)"),
				version, name, time.Now().UTC())
			return err
		})
		if err != nil {
			return names, fmt.Errorf("apply %s: %w", name, err)
		}
		names = append(names, name)
	}
	return names, nil
}

// parseVersion reads the numeric prefix of a migration file name like 001_create_folders.sql.
func parseVersion(name string) (int64, error) {
	prefix, _, ok := strings.Cut(name, "_")
	if !ok {
		return 0, fmt.Errorf("invalid migration filename: %s", name)
	}
	v, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse version from %s: %w", name, err)
	}
	return v, nil
}

// splitStatements splits a migration on semicolons, dropping blank statements
// and full-line "--" comments. Migrations must not contain semicolons inside literals.
func splitStatements(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		lines = append(lines, line)
	}

	var stmts []string
	for _, stmt := range strings.Split(strings.Join(lines, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
