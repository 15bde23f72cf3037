package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/shadow-soldiers/internal/clock"
	"github.com/rcliao/shadow-soldiers/internal/engine"
	"github.com/rcliao/shadow-soldiers/internal/player"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		graph_path  TEXT NOT NULL,
		current     TEXT NOT NULL,
		player      TEXT NOT NULL,
		day         INTEGER NOT NULL,
		hour        INTEGER NOT NULL,
		minute      INTEGER NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_saves_updated ON saves(updated_at DESC);
	CREATE INDEX IF NOT EXISTS idx_saves_graph ON saves(graph_path);

	CREATE TABLE IF NOT EXISTS rolls (
		id          TEXT PRIMARY KEY,
		save_id     TEXT NOT NULL REFERENCES saves(id) ON DELETE CASCADE,
		dialogue    TEXT NOT NULL,
		kind        TEXT NOT NULL,
		skill       TEXT NOT NULL,
		die1        INTEGER NOT NULL,
		die2        INTEGER NOT NULL,
		skill_value INTEGER NOT NULL,
		target      INTEGER NOT NULL,
		outcome     TEXT NOT NULL,
		created_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_rolls_save ON rolls(save_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Create(ctx context.Context, p CreateParams) (*Save, error) {
	now := time.Now().UTC()
	id := s.newID()

	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = id
	}

	st := p.State
	if st.Player == nil {
		st.Player = player.New()
	}
	playerJSON, err := json.Marshal(st.Player)
	if err != nil {
		return nil, fmt.Errorf("encode player: %w", err)
	}

	var taken int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM saves WHERE name = ?`, name).Scan(&taken); err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, fmt.Errorf("%w: %s", ErrNameTaken, name)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO saves (id, name, graph_path, current, player, day, hour, minute, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, name, p.GraphPath, st.Current, string(playerJSON),
		st.Time.Day, st.Time.Hour, st.Time.Minute,
		now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("insert save: %w", err)
	}

	return &Save{
		ID:        id,
		Name:      name,
		GraphPath: p.GraphPath,
		State:     st,
		CreatedAt: now.Truncate(time.Second),
		UpdatedAt: now.Truncate(time.Second),
	}, nil
}

const saveColumns = `id, name, graph_path, current, player, day, hour, minute, created_at, updated_at`

func (s *SQLiteStore) Get(ctx context.Context, ref string) (*Save, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+saveColumns+` FROM saves WHERE id = ? OR name = ?
		 ORDER BY id = ? DESC LIMIT 1`, ref, ref, ref)
	sv, err := scanSave(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	if err != nil {
		return nil, err
	}
	return &sv, nil
}

func (s *SQLiteStore) Update(ctx context.Context, id string, st engine.State) (*Save, error) {
	if st.Player == nil {
		return nil, fmt.Errorf("update save %s: missing player", id)
	}
	playerJSON, err := json.Marshal(st.Player)
	if err != nil {
		return nil, fmt.Errorf("encode player: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx,
		`UPDATE saves SET current = ?, player = ?, day = ?, hour = ?, minute = ?, updated_at = ?
		 WHERE id = ?`,
		st.Current, string(playerJSON), st.Time.Day, st.Time.Hour, st.Time.Minute, now, id)
	if err != nil {
		return nil, fmt.Errorf("update save: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.Get(ctx, id)
}

func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]Save, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + saveColumns + ` FROM saves`
	var args []interface{}
	if p.GraphPath != "" {
		query += ` WHERE graph_path = ?`
		args = append(args, p.GraphPath)
	}
	query += ` ORDER BY updated_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var saves []Save
	for rows.Next() {
		sv, err := scanSave(rows)
		if err != nil {
			return nil, err
		}
		saves = append(saves, sv)
	}
	return saves, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, ref string) error {
	sv, err := s.Get(ctx, ref)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `DELETE FROM saves WHERE id = ?`, sv.ID)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSave(row scanner) (Save, error) {
	var sv Save
	var playerJSON, createdAt, updatedAt string
	var t clock.Time

	err := row.Scan(
		&sv.ID, &sv.Name, &sv.GraphPath, &sv.State.Current, &playerJSON,
		&t.Day, &t.Hour, &t.Minute, &createdAt, &updatedAt,
	)
	if err != nil {
		return sv, err
	}

	sv.State.Time = t
	sv.State.Player = player.New()
	if err := json.Unmarshal([]byte(playerJSON), sv.State.Player); err != nil {
		return sv, fmt.Errorf("decode player for save %s: %w", sv.ID, err)
	}
	sv.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	sv.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return sv, nil
}
