package ports

import "go.trai.ch/tzmap/internal/core/domain"

// ZoneResolver resolves platform time zone ids to platform descriptors.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type ZoneResolver interface {
	// Resolve returns the descriptor for id. The descriptor is only meaningful
	// when the status is domain.Resolved.
	Resolve(id string) (*domain.Zone, domain.ResolveStatus)
}
