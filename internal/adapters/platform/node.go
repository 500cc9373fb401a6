package platform

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tzmap/internal/core/ports"
)

// NodeID is the unique identifier for the platform resolver Graft node.
const NodeID graft.ID = "adapter.platform"

func init() {
	graft.Register(graft.Node[ports.ZoneResolver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ZoneResolver, error) {
			r, err := New()
			if err != nil {
				return nil, err
			}
			return r, nil
		},
	})
}
