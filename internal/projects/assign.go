package projects

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"greenline/internal/services"
)

// Assignment is one parsed `field=value` pair from `update --set`.
type Assignment struct {
	Field string
	Value string
}

// ParseAssignments splits `field=value` items at the first "=".
func ParseAssignments(items []string) ([]Assignment, error) {
	out := make([]Assignment, 0, len(items))
	for _, item := range items {
		field, value, ok := strings.Cut(item, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, services.Wrap(services.ErrValidation, "projects", "update",
				"Formato inválido (use campo=valor): "+item, nil)
		}
		out = append(out, Assignment{Field: field, Value: value})
	}
	return out, nil
}

// ParseNumber converts user input to Credits. Blank, non-numeric, NaN and
// infinite values are rejected.
func ParseNumber(value string) (Credits, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("empty number")
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", value)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid number %q", value)
	}
	return Credits(f), nil
}

// apply merges assignments into rec. Fields the record type does not model
// are stored as strings in Extra. Every assignment is validated before rec is
// touched so a failure leaves the record unchanged.
func apply(rec *Record, assignments []Assignment) error {
	next := rec.Clone()
	for _, a := range assignments {
		switch a.Field {
		case "name":
			return services.Wrap(services.ErrValidation, "projects", "update",
				"Use rename para alterar o nome", nil)
		case "link":
			next.Link = a.Value
		case "country":
			next.Country = a.Value
		case "state":
			next.State = a.Value
		case "biome":
			next.Biome = a.Value
		case "vintage":
			next.Vintage = a.Value
		case "video":
			next.Video = a.Value
		case "credits":
			n, err := ParseNumber(a.Value)
			if err != nil {
				return services.Wrap(services.ErrValidation, "projects", "update",
					"credits precisa ser número", err)
			}
			next.Credits = n
		default:
			encoded, err := marshalRaw(a.Value)
			if err != nil {
				return fmt.Errorf("encode %s: %w", a.Field, err)
			}
			if next.Extra == nil {
				next.Extra = make(map[string]json.RawMessage)
			}
			next.Extra[a.Field] = encoded
		}
		if next.loaded != nil {
			next.loaded[a.Field] = true
		}
	}
	*rec = next
	return nil
}
