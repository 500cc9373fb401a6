// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/tzmap/internal/core/domain"
)

// Source produces the raw mapping document a mapper is built from.
//
//go:generate go run go.uber.org/mock/mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks
type Source interface {
	// Name identifies the source, e.g. "static" or "online".
	Name() string

	// DefaultPolicy is the build policy used when the caller does not override it.
	DefaultPolicy() domain.Policy

	// Load returns the raw XML document.
	Load(ctx context.Context) ([]byte, error)
}
