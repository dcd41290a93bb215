// Package resources is the resource hub: published self-help content served
// to the portal and embedded as supporting context for the responder. It
// stores editorial content only; user input never lands here.
package resources

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/furyfist/WellNest/pkg/logger"
)

var ErrNotFound = errors.New("resource not found")

type Resource struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Topic     string    `json:"topic"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	logger.Info("Resource store initialized", zap.String("path", dbPath))
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS resources (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		topic TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_resources_topic ON resources(topic);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

func (s *Store) Upsert(r *Resource) error {
	_, err := s.db.Exec(`
		INSERT INTO resources (id, title, topic, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			topic = excluded.topic,
			content = excluded.content,
			updated_at = excluded.updated_at`,
		r.ID, r.Title, r.Topic, r.Content, r.CreatedAt.Unix(), r.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert resource: %w", err)
	}
	return nil
}

func (s *Store) Get(id string) (*Resource, error) {
	row := s.db.QueryRow(
		`SELECT id, title, topic, content, created_at, updated_at FROM resources WHERE id = ?`, id)

	var r Resource
	var created, updated int64
	err := row.Scan(&r.ID, &r.Title, &r.Topic, &r.Content, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}

	r.CreatedAt = time.Unix(created, 0)
	r.UpdatedAt = time.Unix(updated, 0)
	return &r, nil
}

// List returns resources, optionally filtered by topic.
func (s *Store) List(topic string) ([]Resource, error) {
	query := `SELECT id, title, topic, content, created_at, updated_at FROM resources ORDER BY title`
	args := []any{}
	if topic != "" {
		query = `SELECT id, title, topic, content, created_at, updated_at FROM resources WHERE topic = ? ORDER BY title`
		args = append(args, topic)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	defer rows.Close()

	var out []Resource
	for rows.Next() {
		var r Resource
		var created, updated int64
		if err := rows.Scan(&r.ID, &r.Title, &r.Topic, &r.Content, &created, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		r.CreatedAt = time.Unix(created, 0)
		r.UpdatedAt = time.Unix(updated, 0)
		out = append(out, r)
	}

	return out, rows.Err()
}
