// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/tzmap/internal/adapters/config"
	_ "go.trai.ch/tzmap/internal/adapters/logger"
	_ "go.trai.ch/tzmap/internal/adapters/platform"
	_ "go.trai.ch/tzmap/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "go.trai.ch/tzmap/internal/app"
)
