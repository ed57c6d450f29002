// Package storage persists stamp runs in a local SQLite database.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const defaultDBPath = "~/.verstamp/history.db"

// NewService creates a SQLite-backed storage service.
func NewService(dbPath string) (Service, error) {
	resolved, err := resolvePath(dbPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schemaV1); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &service{db: db, dbPath: resolved}, nil
}

type service struct {
	db     *sql.DB
	dbPath string
}

func resolvePath(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		p = defaultDBPath
	}
	if strings.HasPrefix(p, "~/") || p == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home dir: %w", err)
		}
		if p == "~" {
			p = home
		} else {
			p = filepath.Join(home, p[2:])
		}
	}
	return filepath.Clean(p), nil
}

func (s *service) SaveStamp(ctx context.Context, input SaveStampInput) (int64, error) {
	if input.ModuleName == "" {
		return 0, errors.New("module name is required")
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO stamps (
			module_name, label, version, major, minor, commits, revision,
			hash1, hash2, dirty_state, submodule_count,
			header_path, header_changed, cli_version
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, input.ModuleName, input.Label, input.Version, input.Major, input.Minor,
		input.Commits, input.Revision, input.Hash1, input.Hash2, input.DirtyState,
		input.SubmoduleCount, input.HeaderPath, input.HeaderChanged, input.CLIVersion)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *service) GetRecentStamps(moduleName string, limit int) ([]StampRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT stamp_id, module_name, label, version, major, minor, commits, revision,
		       hash1, hash2, dirty_state, submodule_count,
		       header_path, header_changed, cli_version, stamped_at
		FROM stamps
	`
	var args []any
	if moduleName != "" {
		query += " WHERE module_name=?"
		args = append(args, moduleName)
	}
	query += " ORDER BY stamped_at DESC, stamp_id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []StampRecord
	for rows.Next() {
		r, err := scanStamp(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *service) GetStamp(stampID int64) (*StampRecord, error) {
	rows, err := s.db.Query(`
		SELECT stamp_id, module_name, label, version, major, minor, commits, revision,
		       hash1, hash2, dirty_state, submodule_count,
		       header_path, header_changed, cli_version, stamped_at
		FROM stamps WHERE stamp_id=?
	`, stampID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("stamp %d not found", stampID)
	}
	r, err := scanStamp(rows)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func scanStamp(rows *sql.Rows) (StampRecord, error) {
	var r StampRecord
	err := rows.Scan(&r.StampID, &r.ModuleName, &r.Label, &r.Version, &r.Major, &r.Minor,
		&r.Commits, &r.Revision, &r.Hash1, &r.Hash2, &r.DirtyState, &r.SubmoduleCount,
		&r.HeaderPath, &r.HeaderChanged, &r.CLIVersion, &r.StampedAt)
	return r, err
}

func (s *service) Vacuum(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "VACUUM")
	return err
}

func (s *service) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, errors.New("days must be positive")
	}
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM stamps WHERE stamped_at < DATETIME('now', ?)",
		fmt.Sprintf("-%d day", days))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *service) Close() error {
	return s.db.Close()
}
