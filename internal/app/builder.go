package app

import (
	"go.trai.ch/tzmap/internal/core/ports"
)

// Components contains the initialized application components.
type Components struct {
	App          *App
	Logger       ports.Logger
	ConfigLoader ports.ConfigLoader
	Resolver     ports.ZoneResolver
	Telemetry    ports.Telemetry
}

// Close releases resources held by the components, such as an open telemetry session.
func (c *Components) Close() error {
	if closer, ok := c.Telemetry.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
