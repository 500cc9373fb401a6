// Package source provides the mapping document sources a mapper can be built from.
package source

import (
	"context"
	_ "embed"

	"go.trai.ch/tzmap/internal/core/domain"
	"go.trai.ch/tzmap/internal/core/ports"
)

//go:embed windowsZones.xml
var bundled []byte

type static struct{}

// Static returns the source of the bundled windowsZones.xml. The bundled
// document is verified against the platform catalog, so it defaults to the
// strict policy.
func Static() ports.Source {
	return static{}
}

func (static) Name() string { return domain.SourceStatic }

func (static) DefaultPolicy() domain.Policy { return domain.StrictPolicy() }

func (static) Load(_ context.Context) ([]byte, error) {
	out := make([]byte, len(bundled))
	copy(out, bundled)
	return out, nil
}
