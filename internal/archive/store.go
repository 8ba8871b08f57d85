package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Status values stored for each submission.
const (
	StatusSent   = "sent"
	StatusFailed = "failed"
	StatusSpam   = "spam"
)

// Submission is one archived relay request.
type Submission struct {
	ID         string
	ReceivedAt time.Time
	RequestID  string
	Nome       string
	Email      string
	Telefone   string
	Assunto    string
	Mensagem   string
	Provider   string
	Status     string
	UpstreamID string
	Error      string
}

// Store persists submissions in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Open creates or opens the archive database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("archive path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database location.
func (s *Store) Path() string { return s.path }

// Record inserts sub, assigning an ID and timestamp when they are missing.
func (s *Store) Record(ctx context.Context, sub Submission) (Submission, error) {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.ReceivedAt.IsZero() {
		sub.ReceivedAt = time.Now()
	}
	sub.ReceivedAt = sub.ReceivedAt.UTC()

	err := retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `INSERT INTO submissions
			(id, received_at, request_id, nome, email, telefone, assunto, mensagem, provider, status, upstream_id, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sub.ID, sub.ReceivedAt.Format(time.RFC3339Nano), sub.RequestID,
			sub.Nome, sub.Email, sub.Telefone, sub.Assunto, sub.Mensagem,
			sub.Provider, sub.Status, sub.UpstreamID, sub.Error)
		return err
	})
	if err != nil {
		return Submission{}, fmt.Errorf("insert submission: %w", err)
	}
	return sub, nil
}

// List returns the newest submissions first. limit <= 0 returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Submission, error) {
	query := `SELECT id, received_at, request_id, nome, email, telefone, assunto, mensagem,
		provider, status, upstream_id, error
		FROM submissions ORDER BY received_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var (
			sub        Submission
			receivedAt string
		)
		if err := rows.Scan(&sub.ID, &receivedAt, &sub.RequestID, &sub.Nome, &sub.Email, &sub.Telefone,
			&sub.Assunto, &sub.Mensagem, &sub.Provider, &sub.Status, &sub.UpstreamID, &sub.Error); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, receivedAt); err == nil {
			sub.ReceivedAt = ts
		}
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return out, nil
}

// Count returns the number of archived submissions per status.
func (s *Store) Count(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT status, COUNT(1) FROM submissions GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("count submissions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
