package ledger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const (
	defaultLocalDBName = "nottingham_local.db"
	defaultRecentLimit = 200
)

var ErrNotFound = errors.New("not found")

// Store persists finished sessions and their round-by-round tapes in a local
// SQLite database.
type Store struct {
	db          *sqlx.DB
	recentLimit int
}

func OpenFromEnv() (*Store, error) {
	dbPath, err := localDatabasePathFromEnv()
	if err != nil {
		return nil, err
	}
	return Open(dbPath)
}

func Open(dbPath string) (*Store, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if dbPath != ":memory:" {
		parent := filepath.Dir(dbPath)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
		`PRAGMA foreign_keys = ON;`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:          db,
		recentLimit: envIntOrDefault("LEDGER_RECENT_LIMIT", defaultRecentLimit),
	}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func ensureSchema(ctx context.Context, db *sqlx.DB) error {
	statements := []string{
		`
CREATE TABLE IF NOT EXISTS checkpoint_sessions (
    session_id TEXT PRIMARY KEY,
    sheriff_name TEXT NOT NULL,
    strategy TEXT NOT NULL,
    seed INTEGER NOT NULL,
    rounds INTEGER NOT NULL,
    rating TEXT NOT NULL DEFAULT '',
    title TEXT NOT NULL DEFAULT '',
    sheriff_gold INTEGER NOT NULL DEFAULT 0,
    reputation INTEGER NOT NULL DEFAULT 0,
    accuracy_pct INTEGER NOT NULL DEFAULT 0,
    played_at_ms INTEGER NOT NULL,
    created_at_ms INTEGER NOT NULL,
    updated_at_ms INTEGER NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_checkpoint_sessions_recent ON checkpoint_sessions(played_at_ms DESC)`,
		`
CREATE TABLE IF NOT EXISTS checkpoint_rounds (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT NOT NULL REFERENCES checkpoint_sessions(session_id) ON DELETE CASCADE,
    round INTEGER NOT NULL,
    merchant TEXT NOT NULL,
    strategy TEXT NOT NULL DEFAULT '',
    declared_good TEXT NOT NULL,
    declared_count INTEGER NOT NULL,
    actual_ids TEXT NOT NULL DEFAULT '[]',
    lie INTEGER NOT NULL DEFAULT 0,
    bribe_offered INTEGER NOT NULL DEFAULT 0,
    bribe_paid INTEGER NOT NULL DEFAULT 0,
    proactive INTEGER NOT NULL DEFAULT 0,
    outcome TEXT NOT NULL DEFAULT '',
    opened INTEGER NOT NULL DEFAULT 0,
    caught_lie INTEGER NOT NULL DEFAULT 0,
    confiscated_ids TEXT NOT NULL DEFAULT '[]',
    penalty INTEGER NOT NULL DEFAULT 0,
    earned INTEGER NOT NULL DEFAULT 0,
    merchant_gold INTEGER NOT NULL DEFAULT 0,
    sheriff_gold INTEGER NOT NULL DEFAULT 0,
    reputation INTEGER NOT NULL DEFAULT 0,
    UNIQUE (session_id, round)
)`,
		`CREATE INDEX IF NOT EXISTS idx_checkpoint_rounds_session ON checkpoint_rounds(session_id, round)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func localDatabasePathFromEnv() (string, error) {
	candidates := []string{
		strings.TrimSpace(os.Getenv("LEDGER_LOCAL_DATABASE_PATH")),
		strings.TrimSpace(os.Getenv("LOCAL_DATABASE_PATH")),
	}
	for _, candidate := range candidates {
		if candidate != "" {
			return filepath.Clean(candidate), nil
		}
	}

	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userConfigDir, "NottinghamLite", defaultLocalDBName), nil
}

func envIntOrDefault(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
