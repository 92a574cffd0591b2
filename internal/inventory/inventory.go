// Package inventory reads installed games from the Lutris SQLite database
// (pga.db). The database is read once before the engine starts and never
// queried mid-run; Lutris itself owns the file, so all access is read-only.
package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/lutrisart/lutrisart/internal/domain"
	"github.com/lutrisart/lutrisart/internal/util"

	_ "modernc.org/sqlite"
)

// Validate checks that the Lutris database file exists and is a regular
// file, with a user-friendly error otherwise.
func Validate(path string) error {
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("lutris database not found at %s (is Lutris installed?)", path)
	case err != nil:
		return fmt.Errorf("cannot read %s: %w", path, err)
	case !info.Mode().IsRegular():
		return fmt.Errorf("%s exists but is not a regular file", path)
	}
	return nil
}

// ReadInstalled returns all installed games sorted alphabetically by name.
// The connection is opened, drained, and closed within the call; nothing is
// held across the engine run.
func ReadInstalled(ctx context.Context, path string, logger *slog.Logger) ([]domain.Game, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open lutris database %s: %w", path, err)
	}
	defer db.Close()

	// Lutris may be running; don't fight it over locks.
	pragmas := []string{
		"PRAGMA query_only=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	// Older Lutris schemas lack the has_custom_coverart_big column.
	coverartCol := "0"
	if hasColumn(ctx, db, "games", "has_custom_coverart_big") {
		coverartCol = "has_custom_coverart_big"
	}

	query := fmt.Sprintf(
		`SELECT id, name, slug, runner, platform, service, service_id,
		        COALESCE(has_custom_banner, 0), COALESCE(%s, 0)
		 FROM games
		 WHERE installed = 1
		 ORDER BY name COLLATE NOCASE`, coverartCol)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query installed games: %w", err)
	}
	defer rows.Close()

	var games []domain.Game
	for rows.Next() {
		var (
			g                                  domain.Game
			name, slug                         sql.NullString
			runner, platform, service, svcID   sql.NullString
			hasCustomBanner, hasCustomCoverart int64
		)
		if err := rows.Scan(&g.ID, &name, &slug, &runner, &platform, &service, &svcID,
			&hasCustomBanner, &hasCustomCoverart); err != nil {
			return nil, fmt.Errorf("scan game row: %w", err)
		}
		g.Name = name.String
		g.Slug = slug.String
		if g.Slug == "" {
			g.Slug = util.NormalizeSlug(g.Name)
		}
		g.Runner = runner.String
		g.Platform = platform.String
		g.Service = service.String
		g.ServiceID = svcID.String
		g.HasCustomBanner = hasCustomBanner != 0
		g.HasCustomCoverArt = hasCustomCoverart != 0
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read game rows: %w", err)
	}

	logger.Debug("read lutris inventory", "path", path, "games", len(games))
	return games, nil
}

// hasColumn probes a table for a column via PRAGMA table_info, for schema
// compatibility across Lutris versions.
func hasColumn(ctx context.Context, db *sql.DB, table, column string) bool {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name, typ string
			notnull   int
			dflt      sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk); err != nil {
			return false
		}
		if name == column {
			return true
		}
	}
	return false
}
