package repositories

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"storage-search-service/internal/domain"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// listingID decodes a string or numeric id, keeping which one it was.
type listingID domain.ID

func (id *listingID) UnmarshalJSON(b []byte) error {
	return (*domain.ID)(id).UnmarshalJSON(b)
}

// YAML scalars tagged as numbers become numeric ids when they are also valid
// JSON numbers; everything else is kept as a string.
func (id *listingID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return eris.Errorf("id at line %d must be a scalar", node.Line)
	}

	switch node.Tag {
	case "!!int", "!!float":
		if domain.IsJSONNumber(node.Value) {
			*id = listingID(domain.NumberID(node.Value))
			return nil
		}
	case "!!null":
		return eris.Errorf("id at line %d must not be null", node.Line)
	}
	*id = listingID(domain.StringID(node.Value))
	return nil
}

// ListingSeed is one listing as stored in a listings file.
// Width is accepted for compatibility with existing files but never used.
type ListingSeed struct {
	ID           listingID `json:"id" yaml:"id"`
	LocationID   listingID `json:"location_id" yaml:"location_id"`
	Length       float64   `json:"length" yaml:"length"`
	Width        float64   `json:"width,omitempty" yaml:"width,omitempty"`
	PriceInCents int64     `json:"price_in_cents" yaml:"price_in_cents"`
}

// ReadListingsFile loads listings from a JSON or YAML file (chosen by
// extension), preserving file order.
func ReadListingsFile(path string) ([]domain.Listing, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read listings: read %q", path)
	}

	var seeds []ListingSeed
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &seeds); err != nil {
			return nil, eris.Wrapf(err, "read listings: parse yaml %q", path)
		}
	default:
		if err := json.Unmarshal(b, &seeds); err != nil {
			return nil, eris.Wrapf(err, "read listings: parse json %q", path)
		}
	}

	listings, err := toListings(seeds)
	if err != nil {
		return nil, eris.Wrapf(err, "read listings: %q", path)
	}
	return listings, nil
}

func toListings(seeds []ListingSeed) ([]domain.Listing, error) {
	listings := make([]domain.Listing, 0, len(seeds))
	seen := make(map[domain.ID]int, len(seeds))

	for i, s := range seeds {
		id := domain.ID(s.ID)
		if id.Value == "" {
			return nil, eris.Errorf("listing at index %d: id cannot be empty", i)
		}
		if first, ok := seen[id]; ok {
			return nil, eris.Errorf("listing at index %d: id %s duplicates the listing at index %d", i, idLabel(id), first)
		}
		seen[id] = i

		loc := domain.ID(s.LocationID)
		if loc.Value == "" {
			return nil, eris.Errorf("listing %s: location_id cannot be empty", idLabel(id))
		}

		if s.Length <= 0 {
			return nil, eris.Errorf("listing %s: length must be positive, got %v", idLabel(id), s.Length)
		}

		if s.PriceInCents < 0 {
			return nil, eris.Errorf("listing %s: price_in_cents must not be negative, got %d", idLabel(id), s.PriceInCents)
		}

		listings = append(listings, domain.Listing{
			ID:           id,
			LocationID:   loc,
			Length:       s.Length,
			PriceInCents: s.PriceInCents,
		})
	}
	return listings, nil
}

// idLabel renders an id the way it appears in the file.
func idLabel(id domain.ID) string {
	if id.Numeric {
		return id.Value
	}
	return strconv.Quote(id.Value)
}
