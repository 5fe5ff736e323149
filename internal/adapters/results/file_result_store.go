package results

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"storage-search-service/internal/domain"
	"storage-search-service/internal/platform/obs"

	"github.com/rotisserie/eris"
)

// FileResultStore writes each result set to a JSON file, replacing the
// previous contents. Writes go through a temp file and rename, so readers
// never see a half-written file.
type FileResultStore struct {
	Path string

	mu sync.Mutex
}

func NewFileResultStore(path string) *FileResultStore {
	return &FileResultStore{Path: path}
}

func (f *FileResultStore) SaveResults(ctx context.Context, results []domain.LocationResult) (err error) {
	defer obs.Time(ctx, "results.file.Save")(&err)

	b, err := encodeResults(results)
	if err != nil {
		return eris.Wrap(err, "save results")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Dir(f.Path)
	tmp, err := os.CreateTemp(dir, ".results-*.json")
	if err != nil {
		return eris.Wrapf(err, "save results: create temp file in %q", dir)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return eris.Wrapf(err, "save results: write %q", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrapf(err, "save results: close %q", tmp.Name())
	}

	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return eris.Wrapf(err, "save results: replace %q", f.Path)
	}

	return nil
}

func (f *FileResultStore) LatestResults(ctx context.Context) ([]domain.LocationResult, error) {
	f.mu.Lock()
	b, err := os.ReadFile(f.Path)
	f.mu.Unlock()

	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNoResults
	}
	if err != nil {
		return nil, eris.Wrapf(err, "latest results: read %q", f.Path)
	}

	return decodeResults(b)
}
