package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const (
	keyToken        = "token"
	keySelectedTask = "selected_task_id"

	// Scoped rows older than this are dropped on open; their shell or TUI is long gone.
	sessionRetention = 7 * 24 * time.Hour
)

// SQLStore keeps the token in a durable table and the selected task id in a
// table keyed by scope id, so two shells do not see each other's selection.
type SQLStore struct {
	db    *sqlx.DB
	scope string
	log   *zap.Logger
}

// OpenSQLStore opens (and migrates) the session database at path.
func OpenSQLStore(ctx context.Context, path, scope string, log *zap.Logger) (*SQLStore, error) {
	if strings.TrimSpace(scope) == "" {
		return nil, errors.New("session store: empty scope")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("session store: open %s: %w", path, err)
	}
	// WAL + busy_timeout: the CLI and a running TUI may touch the file at the same time.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("session store: %s: %w", p, err)
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("session store: migrate: %w", err)
	}

	s := &SQLStore{db: db, scope: scope, log: log}
	if n, err := s.prune(ctx, time.Now().Add(-sessionRetention)); err != nil {
		log.Warn("prune stale session rows", zap.Error(err))
	} else if n > 0 {
		log.Debug("pruned stale session rows", zap.Int64("rows", n))
	}
	return s, nil
}

func migrate(ctx context.Context, db *sqlx.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS durable_state (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session_state (
			session_id TEXT NOT NULL,
			k TEXT NOT NULL,
			v TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL,
			PRIMARY KEY (session_id, k)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_session_state_updated ON session_state(updated_at_unixms);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLStore) Close() error { return s.db.Close() }

func (s *SQLStore) Scope() string { return s.scope }

// WithScope returns a store sharing the same database under another scope id.
func (s *SQLStore) WithScope(scope string) *SQLStore {
	return &SQLStore{db: s.db, scope: scope, log: s.log}
}

func (s *SQLStore) Token() (string, bool) {
	var v string
	err := s.db.Get(&v, `SELECT v FROM durable_state WHERE k = ?`, keyToken)
	return s.readResult(keyToken, v, err)
}

func (s *SQLStore) SetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return s.ClearToken()
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO durable_state(k, v, updated_at_unixms) VALUES(?, ?, ?)`,
		keyToken, token, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

func (s *SQLStore) ClearToken() error {
	if _, err := s.db.Exec(`DELETE FROM durable_state WHERE k = ?`, keyToken); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

func (s *SQLStore) SelectedTaskID() (string, bool) {
	var v string
	err := s.db.Get(&v, `SELECT v FROM session_state WHERE session_id = ? AND k = ?`, s.scope, keySelectedTask)
	return s.readResult(keySelectedTask, v, err)
}

func (s *SQLStore) SelectTask(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return s.ClearSelectedTask()
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO session_state(session_id, k, v, updated_at_unixms) VALUES(?, ?, ?, ?)`,
		s.scope, keySelectedTask, id, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("store selected task: %w", err)
	}
	return nil
}

func (s *SQLStore) ClearSelectedTask() error {
	_, err := s.db.Exec(`DELETE FROM session_state WHERE session_id = ? AND k = ?`, s.scope, keySelectedTask)
	if err != nil {
		return fmt.Errorf("clear selected task: %w", err)
	}
	return nil
}

func (s *SQLStore) prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM session_state WHERE updated_at_unixms < ?`, before.UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQLStore) readResult(key, v string, err error) (string, bool) {
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.log.Warn("read session slot", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

var _ Session = (*SQLStore)(nil)
var _ Session = (*Memory)(nil)
