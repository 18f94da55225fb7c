package storage

import (
	"context"
	"errors"

	"fairhuur/models"
)

// ErrNotFound is returned when the listings document does not exist.
var ErrNotFound = errors.New("listings document not found")

// ListingSource supplies the active listing collection for one page view.
type ListingSource interface {
	Load(ctx context.Context) ([]*models.Listing, error)
}

// DocumentFetcher retrieves the raw listings document.
type DocumentFetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// ListingWriter is the interface any storage backend must satisfy.
type ListingWriter interface {
	Write(ctx context.Context, listings []*models.Listing) error
	Close() error
}
