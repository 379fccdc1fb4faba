// Package sqlite provides SQLite-backed persistence for character sheets.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kopertop/ai-dnd-expo-sub004/internal/game"
	"github.com/kopertop/ai-dnd-expo-sub004/internal/platform/storage/sqlitemigrate"
	"github.com/kopertop/ai-dnd-expo-sub004/internal/storage"
	"github.com/kopertop/ai-dnd-expo-sub004/internal/storage/sqlite/migrations"
)

// Store provides SQLite-backed persistence for character records.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return store, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Put inserts or replaces a character record.
func (s *Store) Put(ctx context.Context, sheet game.CharacterSheet) error {
	if strings.TrimSpace(sheet.ID) == "" {
		return fmt.Errorf("character id is required")
	}

	stats, err := encodeStats(sheet.Stats)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO characters (id, name, health, max_health, action_points, max_action_points, stats, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    health = excluded.health,
    max_health = excluded.max_health,
    action_points = excluded.action_points,
    max_action_points = excluded.max_action_points,
    stats = excluded.stats,
    updated_at = excluded.updated_at
`, sheet.ID, sheet.Name, sheet.Health, sheet.MaxHealth, sheet.ActionPoints, sheet.MaxActionPoints, stats, toMillis(time.Now()))
	if err != nil {
		return fmt.Errorf("put character: %w", err)
	}
	return nil
}

// Get loads a character record by id.
func (s *Store) Get(ctx context.Context, id string) (game.CharacterSheet, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, name, health, max_health, action_points, max_action_points, stats
FROM characters WHERE id = ?
`, id)
	return scanSheet(row)
}

// ApplyDelta merges a partial delta into the stored sheet inside one
// transaction and returns the updated sheet. The delta's values are expected
// to be pre-clamped by the executor.
func (s *Store) ApplyDelta(ctx context.Context, id string, delta game.Delta) (game.CharacterSheet, error) {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return game.CharacterSheet{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `
SELECT id, name, health, max_health, action_points, max_action_points, stats
FROM characters WHERE id = ?
`, id)
	sheet, err := scanSheet(row)
	if err != nil {
		return game.CharacterSheet{}, err
	}

	delta.Apply(&sheet)

	stats, err := encodeStats(sheet.Stats)
	if err != nil {
		return game.CharacterSheet{}, err
	}

	_, err = tx.ExecContext(ctx, `
UPDATE characters
SET health = ?, max_health = ?, action_points = ?, max_action_points = ?, stats = ?, updated_at = ?
WHERE id = ?
`, sheet.Health, sheet.MaxHealth, sheet.ActionPoints, sheet.MaxActionPoints, stats, toMillis(time.Now()), id)
	if err != nil {
		return game.CharacterSheet{}, fmt.Errorf("update character: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return game.CharacterSheet{}, fmt.Errorf("commit tx: %w", err)
	}
	return sheet, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSheet(row rowScanner) (game.CharacterSheet, error) {
	var sheet game.CharacterSheet
	var stats string
	err := row.Scan(&sheet.ID, &sheet.Name, &sheet.Health, &sheet.MaxHealth,
		&sheet.ActionPoints, &sheet.MaxActionPoints, &stats)
	if errors.Is(err, sql.ErrNoRows) {
		return game.CharacterSheet{}, storage.ErrNotFound
	}
	if err != nil {
		return game.CharacterSheet{}, fmt.Errorf("scan character: %w", err)
	}

	sheet.Stats, err = decodeStats(stats)
	if err != nil {
		return game.CharacterSheet{}, err
	}
	return sheet, nil
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func encodeStats(stats map[game.StatKey]int) (string, error) {
	if len(stats) == 0 {
		return "{}", nil
	}
	encoded, err := json.Marshal(stats)
	if err != nil {
		return "", fmt.Errorf("marshal stats: %w", err)
	}
	return string(encoded), nil
}

func decodeStats(value string) (map[game.StatKey]int, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "{}" {
		return nil, nil
	}
	var stats map[game.StatKey]int
	if err := json.Unmarshal([]byte(value), &stats); err != nil {
		return nil, fmt.Errorf("unmarshal stats: %w", err)
	}
	return stats, nil
}

var _ storage.CharacterStore = (*Store)(nil)
