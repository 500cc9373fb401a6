package ports

import "go.trai.ch/tzmap/internal/core/domain"

// ConfigLoader defines the interface for loading the runtime configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path. When path is empty the loader
	// searches cwd and its parents; a missing file yields the default configuration.
	Load(path, cwd string) (*domain.Config, error)
}
