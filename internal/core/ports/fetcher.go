package ports

import (
	"context"

	"go.trai.ch/tzmap/internal/core/domain"
)

// Fetcher retrieves remote documents through a local file cache.
//
//go:generate go run go.uber.org/mock/mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Retrieve returns the document at uri, from the cache when it is still fresh.
	Retrieve(ctx context.Context, uri string) ([]byte, error)

	// Record reports the state of the cached copy of uri, if any.
	Record(uri string) (domain.CacheRecord, bool)
}
