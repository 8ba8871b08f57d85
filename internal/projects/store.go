package projects

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"greenline/internal/fileutil"
	"greenline/internal/logging"
	"greenline/internal/services"
)

const lockRetryDelay = 50 * time.Millisecond

// Store reads and writes the dataset file. Every public method holds the
// dataset lock for its whole duration.
type Store struct {
	path   string
	lock   *flock.Flock
	logger *slog.Logger
}

// NewStore returns a store for the dataset at path. The lock file lives at
// path + ".lock".
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		lock:   flock.New(path + ".lock"),
		logger: logging.NewComponentLogger(logger, "dataset"),
	}
}

// Path returns the dataset location.
func (s *Store) Path() string { return s.path }

// Load reads and validates the dataset under a shared lock.
func (s *Store) Load(ctx context.Context) ([]Record, error) {
	if err := s.acquire(ctx, false); err != nil {
		return nil, err
	}
	defer s.release()
	return s.read()
}

// Save sorts records by name (pt-BR collation) and rewrites the dataset.
func (s *Store) Save(ctx context.Context, records []Record) error {
	if err := s.acquire(ctx, true); err != nil {
		return err
	}
	defer s.release()
	SortByName(records)
	return s.write(records)
}

// Write rewrites the dataset keeping the given order.
func (s *Store) Write(ctx context.Context, records []Record) error {
	if err := s.acquire(ctx, true); err != nil {
		return err
	}
	defer s.release()
	return s.write(records)
}

// Update performs one locked read-modify-write cycle. fn returns the records to
// persist and whether anything should be written at all; an error from fn
// aborts before any write. When sorted is true the records are sorted as Save does.
func (s *Store) Update(ctx context.Context, sorted bool, fn func([]Record) ([]Record, bool, error)) error {
	if err := s.acquire(ctx, true); err != nil {
		return err
	}
	defer s.release()

	records, err := s.read()
	if err != nil {
		return err
	}
	next, changed, err := fn(records)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if sorted {
		SortByName(next)
	}
	return s.write(next)
}

// SortByName orders records by name the way a Brazilian Portuguese reader
// expects: accents and case are secondary to the base letters.
func SortByName(records []Record) {
	col := collate.New(language.BrazilianPortuguese)
	slices.SortStableFunc(records, func(a, b Record) int {
		return col.CompareString(a.Name, b.Name)
	})
}

func (s *Store) acquire(ctx context.Context, exclusive bool) error {
	if exclusive {
		if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
			return services.Wrap(services.ErrInternal, "dataset", "lock", "", err)
		}
	} else if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return s.missing(err)
	}
	var (
		ok  bool
		err error
	)
	if exclusive {
		ok, err = s.lock.TryLockContext(ctx, lockRetryDelay)
	} else {
		ok, err = s.lock.TryRLockContext(ctx, lockRetryDelay)
	}
	if err != nil {
		return services.Wrap(services.ErrInternal, "dataset", "lock", "Não foi possível bloquear o arquivo de projetos", err)
	}
	if !ok {
		return services.Wrap(services.ErrInternal, "dataset", "lock", "Não foi possível bloquear o arquivo de projetos", nil)
	}
	return nil
}

func (s *Store) release() {
	if err := s.lock.Unlock(); err != nil {
		s.logger.Warn("failed to release dataset lock",
			logging.String(logging.FieldEventType, "dataset_unlock_failed"),
			logging.String("lock", s.lock.Path()),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "remove the lock file if no greenline process is running"),
			logging.String(logging.FieldImpact, "later commands may wait for the lock"))
	}
}

func (s *Store) read() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, s.missing(err)
		}
		return nil, services.Wrap(services.ErrInternal, "dataset", "load", "", err)
	}
	records, err := Decode(data)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("dataset loaded",
		logging.String("path", s.path),
		logging.Int("record_count", len(records)))
	return records, nil
}

func (s *Store) missing(err error) error {
	return services.Wrap(services.ErrNotFound, "dataset", "load",
		fmt.Sprintf("Arquivo de projetos não encontrado: %s", s.path), err)
}

func (s *Store) write(records []Record) error {
	data, err := Encode(records)
	if err != nil {
		return services.Wrap(services.ErrInternal, "dataset", "encode", "", err)
	}
	if err := fileutil.WriteFileAtomic(s.path, data, fileutil.FileMode(s.path, 0o644)); err != nil {
		return services.Wrap(services.ErrInternal, "dataset", "write", "", err)
	}
	s.logger.Debug("dataset written",
		logging.String("path", s.path),
		logging.Int("record_count", len(records)))
	return nil
}

// Decode parses and validates a dataset document. Entries must be objects with
// a non-empty string name; names must be unique; credits must be numeric.
func Decode(data []byte) ([]Record, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, services.Wrap(services.ErrValidation, "dataset", "decode",
				"projects.json precisa ser um array", err)
		}
		return nil, services.Wrap(services.ErrValidation, "dataset", "decode",
			"Erro ao fazer parse de projects.json: "+err.Error(), err)
	}
	if raw == nil {
		return nil, services.Wrap(services.ErrValidation, "dataset", "decode",
			"projects.json precisa ser um array", nil)
	}

	records := make([]Record, 0, len(raw))
	seen := make(map[string]int, len(raw))
	for i, entry := range raw {
		var rec Record
		if err := json.Unmarshal(entry, &rec); err != nil {
			return nil, services.Wrap(services.ErrValidation, "dataset", "decode",
				fmt.Sprintf("Registro inválido na posição %d: %v", i, err), err)
		}
		if first, dup := seen[rec.Name]; dup {
			return nil, services.Wrap(services.ErrValidation, "dataset", "decode",
				fmt.Sprintf("Nome duplicado na posição %d (já usado na posição %d): %s", i, first, rec.Name), nil)
		}
		seen[rec.Name] = i
		records = append(records, rec)
	}
	return records, nil
}

// Encode renders records as a 2-space indented JSON array with a trailing newline.
func Encode(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
