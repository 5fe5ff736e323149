package repositories

import (
	"context"

	"storage-search-service/internal/domain"
	"storage-search-service/internal/platform/obs"
)

// File-backed implementation of the ListingRepository port.
// The file is re-read on every call so edits show up on the next request.
type FileListingRepository struct {
	Path string
}

func NewFileListingRepository(path string) *FileListingRepository {
	return &FileListingRepository{Path: path}
}

func (f *FileListingRepository) ListListings(ctx context.Context) (_ []domain.Listing, err error) {
	defer obs.Time(ctx, "listings.file.List")(&err)

	return ReadListingsFile(f.Path)
}
