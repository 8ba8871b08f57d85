package projects

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"strings"

	"greenline/internal/logging"
	"greenline/internal/services"
)

const component = "projects"

// DefaultCountry is assigned by Add when no country is given.
const DefaultCountry = "Brasil"

// NewRecord carries the fields accepted by Add. Credits is the raw user
// input; blank means zero.
type NewRecord struct {
	Name    string
	Link    string
	Country string
	State   string
	Biome   string
	Vintage string
	Credits string
	Video   string
}

// Service implements the dataset commands on top of a Store.
type Service struct {
	store  *Store
	logger *slog.Logger
}

// NewService wires a Service.
func NewService(store *Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logging.NewComponentLogger(logger, component)}
}

// Store exposes the underlying store.
func (s *Service) Store() *Store { return s.store }

// List returns the record count and a lazy sequence of "- name (credits: N)" lines.
func (s *Service) List(ctx context.Context) (int, iter.Seq[string], error) {
	records, err := s.store.Load(ctx)
	if err != nil {
		return 0, nil, err
	}
	return len(records), func(yield func(string) bool) {
		for _, rec := range records {
			if !yield(rec.Line()) {
				return
			}
		}
	}, nil
}

// Records returns every record in file order.
func (s *Service) Records(ctx context.Context) ([]Record, error) {
	return s.store.Load(ctx)
}

// Get returns the record whose name matches exactly.
func (s *Service) Get(ctx context.Context, name string) (Record, error) {
	if err := requireName(name, "get"); err != nil {
		return Record{}, err
	}
	records, err := s.store.Load(ctx)
	if err != nil {
		return Record{}, err
	}
	i := indexOf(records, name)
	if i < 0 {
		return Record{}, notFound("get", name)
	}
	return records[i], nil
}

// Add appends a new record with defaults for omitted fields.
func (s *Service) Add(ctx context.Context, in NewRecord) (Record, error) {
	if err := requireName(in.Name, "add"); err != nil {
		return Record{}, err
	}
	var credits Credits
	if strings.TrimSpace(in.Credits) != "" {
		n, err := ParseNumber(in.Credits)
		if err != nil {
			return Record{}, services.Wrap(services.ErrValidation, component, "add", "credits precisa ser número", err)
		}
		credits = n
	}
	country := in.Country
	if country == "" {
		country = DefaultCountry
	}
	rec := Record{
		Name:    in.Name,
		Link:    in.Link,
		Country: country,
		State:   in.State,
		Biome:   in.Biome,
		Vintage: in.Vintage,
		Credits: credits,
		Video:   in.Video,
	}

	err := s.store.Update(ctx, true, func(records []Record) ([]Record, bool, error) {
		if indexOf(records, in.Name) >= 0 {
			return nil, false, services.Wrap(services.ErrConflict, component, "add", "Já existe projeto com esse nome", nil)
		}
		return append(records, rec), true, nil
	})
	if err != nil {
		return Record{}, err
	}
	s.logger.Info("project added", logging.String(logging.FieldProject, rec.Name))
	return rec, nil
}

// Update shallow-merges assignments onto the named record.
func (s *Service) Update(ctx context.Context, name string, assignments []Assignment) (Record, error) {
	if err := requireName(name, "update"); err != nil {
		return Record{}, err
	}
	if len(assignments) == 0 {
		return Record{}, services.Wrap(services.ErrValidation, component, "update", "Nenhum campo para atualizar", nil)
	}
	var updated Record
	err := s.store.Update(ctx, true, func(records []Record) ([]Record, bool, error) {
		i := indexOf(records, name)
		if i < 0 {
			return nil, false, notFound("update", name)
		}
		if err := apply(&records[i], assignments); err != nil {
			return nil, false, err
		}
		updated = records[i]
		return records, true, nil
	})
	if err != nil {
		return Record{}, err
	}
	s.logger.Info("project updated",
		logging.String(logging.FieldProject, name),
		logging.Int("field_count", len(assignments)))
	return updated, nil
}

// Rename changes a record's name. Renaming to the current name is a no-op.
func (s *Service) Rename(ctx context.Context, name, newName string) (Record, error) {
	if err := requireName(name, "rename"); err != nil {
		return Record{}, err
	}
	if strings.TrimSpace(newName) == "" {
		return Record{}, services.Wrap(services.ErrValidation, component, "rename", "Forneça --to <novo nome>", nil)
	}
	var renamed Record
	err := s.store.Update(ctx, true, func(records []Record) ([]Record, bool, error) {
		i := indexOf(records, name)
		if i < 0 {
			return nil, false, notFound("rename", name)
		}
		if newName == name {
			renamed = records[i]
			return records, false, nil
		}
		if indexOf(records, newName) >= 0 {
			return nil, false, services.Wrap(services.ErrConflict, component, "rename", "Já existe projeto com o novo nome", nil)
		}
		records[i].Name = newName
		renamed = records[i]
		return records, true, nil
	})
	if err != nil {
		return Record{}, err
	}
	s.logger.Info("project renamed",
		logging.String(logging.FieldProject, newName),
		logging.String("previous_name", name))
	return renamed, nil
}

// Remove deletes the named record.
func (s *Service) Remove(ctx context.Context, name string) error {
	if err := requireName(name, "remove"); err != nil {
		return err
	}
	err := s.store.Update(ctx, true, func(records []Record) ([]Record, bool, error) {
		i := indexOf(records, name)
		if i < 0 {
			return nil, false, notFound("remove", name)
		}
		return slices.Delete(records, i, i+1), true, nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("project removed", logging.String(logging.FieldProject, name))
	return nil
}

// Inc adds delta (which may be negative) to the named record's credits.
func (s *Service) Inc(ctx context.Context, name, delta string) (Record, error) {
	if err := requireName(name, "inc"); err != nil {
		return Record{}, err
	}
	if strings.TrimSpace(delta) == "" {
		return Record{}, services.Wrap(services.ErrValidation, component, "inc", "Forneça --credits <valor a somar>", nil)
	}
	n, err := ParseNumber(delta)
	if err != nil {
		return Record{}, services.Wrap(services.ErrValidation, component, "inc", "Valor inválido para credits", err)
	}
	var updated Record
	err = s.store.Update(ctx, true, func(records []Record) ([]Record, bool, error) {
		i := indexOf(records, name)
		if i < 0 {
			return nil, false, notFound("inc", name)
		}
		records[i].Credits += n
		updated = records[i]
		return records, true, nil
	})
	if err != nil {
		return Record{}, err
	}
	s.logger.Info("project credits changed",
		logging.String(logging.FieldProject, name),
		logging.String("delta", n.String()),
		logging.String("credits", updated.Credits.String()))
	return updated, nil
}

// MapVideos loads the dataset, lets apply assign videos in place, and rewrites
// the file in its existing order when apply reports changes. Nothing is
// written in dry-run mode.
func (s *Service) MapVideos(ctx context.Context, apply func([]Record) int, dryRun bool) error {
	return s.store.Update(ctx, false, func(records []Record) ([]Record, bool, error) {
		updated := apply(records)
		if updated > 0 && !dryRun {
			s.logger.Info("video mappings changed", logging.Int("updated", updated))
			return records, true, nil
		}
		return records, false, nil
	})
}

func requireName(name, operation string) error {
	if strings.TrimSpace(name) == "" {
		return services.Wrap(services.ErrValidation, component, operation, "É necessário fornecer --name", nil)
	}
	return nil
}

func notFound(operation, name string) error {
	return services.Wrap(services.ErrNotFound, component, operation, "Projeto não encontrado",
		fmt.Errorf("no project named %q", name))
}

func indexOf(records []Record, name string) int {
	return slices.IndexFunc(records, func(r Record) bool { return r.Name == name })
}
