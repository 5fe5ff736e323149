package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"storage-search-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadListingsFileJSON(t *testing.T) {
	path := writeFile(t, "listings.json", `[
		{"id": "abc", "location_id": "loc-1", "length": 10, "width": 20, "price_in_cents": 500},
		{"id": 2, "location_id": 7, "length": 15.5, "price_in_cents": 300}
	]`)

	listings, err := ReadListingsFile(path)
	require.NoError(t, err)

	assert.Equal(t, []domain.Listing{
		{ID: domain.StringID("abc"), LocationID: domain.StringID("loc-1"), Length: 10, PriceInCents: 500},
		{ID: domain.NumberID("2"), LocationID: domain.NumberID("7"), Length: 15.5, PriceInCents: 300},
	}, listings)
}

func TestReadListingsFileYAML(t *testing.T) {
	path := writeFile(t, "listings.yaml", `
- id: 1
  location_id: L1
  length: 10
  price_in_cents: 500
- id: two
  location_id: L1
  length: 15
  price_in_cents: 300
`)

	listings, err := ReadListingsFile(path)
	require.NoError(t, err)

	assert.Equal(t, []domain.Listing{
		{ID: domain.NumberID("1"), LocationID: domain.StringID("L1"), Length: 10, PriceInCents: 500},
		{ID: domain.StringID("two"), LocationID: domain.StringID("L1"), Length: 15, PriceInCents: 300},
	}, listings)
}

func TestReadListingsFileRejectsBadData(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `{`},
		{"missing id", `[{"location_id": "L1", "length": 10, "price_in_cents": 1}]`},
		{"missing location", `[{"id": "1", "length": 10, "price_in_cents": 1}]`},
		{"zero length", `[{"id": "1", "location_id": "L1", "price_in_cents": 1}]`},
		{"negative price", `[{"id": "1", "location_id": "L1", "length": 10, "price_in_cents": -1}]`},
		{"object id", `[{"id": {"x": 1}, "location_id": "L1", "length": 10, "price_in_cents": 1}]`},
		{"null id", `[{"id": null, "location_id": "L1", "length": 10, "price_in_cents": 1}]`},
		{"duplicate string id", `[
			{"id": "a", "location_id": "L1", "length": 10, "price_in_cents": 1},
			{"id": "a", "location_id": "L2", "length": 20, "price_in_cents": 2}
		]`},
		{"duplicate numeric id", `[
			{"id": 3, "location_id": "L1", "length": 10, "price_in_cents": 1},
			{"id": 3, "location_id": "L1", "length": 20, "price_in_cents": 2}
		]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadListingsFile(writeFile(t, "listings.json", tt.content))
			assert.Error(t, err)
		})
	}
}

func TestReadListingsFileDuplicateIDNamesBothEntries(t *testing.T) {
	_, err := ReadListingsFile(writeFile(t, "listings.json", `[
		{"id": 7, "location_id": "L1", "length": 10, "price_in_cents": 1},
		{"id": "x", "location_id": "L1", "length": 10, "price_in_cents": 1},
		{"id": 7, "location_id": "L2", "length": 10, "price_in_cents": 1}
	]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 2: id 7 duplicates the listing at index 0")
}

func TestReadListingsFileStringAndNumberIDsAreDistinct(t *testing.T) {
	path := writeFile(t, "listings.json", `[
		{"id": "1", "location_id": "1", "length": 10, "price_in_cents": 100},
		{"id": 1, "location_id": 1, "length": 10, "price_in_cents": 100},
		{"id": " 2 ", "location_id": "1", "length": 10, "price_in_cents": 100}
	]`)

	listings, err := ReadListingsFile(path)
	require.NoError(t, err)

	assert.Equal(t, []domain.Listing{
		{ID: domain.StringID("1"), LocationID: domain.StringID("1"), Length: 10, PriceInCents: 100},
		{ID: domain.NumberID("1"), LocationID: domain.NumberID("1"), Length: 10, PriceInCents: 100},
		{ID: domain.StringID(" 2 "), LocationID: domain.StringID("1"), Length: 10, PriceInCents: 100},
	}, listings)
}

func TestReadListingsFileYAMLDuplicate(t *testing.T) {
	_, err := ReadListingsFile(writeFile(t, "listings.yml", `
- {id: 1, location_id: L1, length: 10, price_in_cents: 1}
- {id: 1, location_id: L2, length: 10, price_in_cents: 1}
`))
	assert.Error(t, err)
}

func TestFileListingRepositoryMissingFile(t *testing.T) {
	repo := NewFileListingRepository(filepath.Join(t.TempDir(), "missing.json"))

	_, err := repo.ListListings(context.Background())
	assert.Error(t, err)
}

func TestFileListingRepositoryRereadsFile(t *testing.T) {
	path := writeFile(t, "listings.json", `[{"id": "1", "location_id": "L1", "length": 10, "price_in_cents": 100}]`)
	repo := NewFileListingRepository(path)

	listings, err := repo.ListListings(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 1)

	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

	listings, err = repo.ListListings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listings)
}
