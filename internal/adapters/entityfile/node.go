package entityfile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/obslog/internal/core/ports"
)

// NodeID is the unique identifier for the entity source Graft node.
const NodeID graft.ID = "adapter.entity_source"

func init() {
	graft.Register(graft.Node[ports.EntitySource]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.EntitySource, error) {
			return NewReader(), nil
		},
	})
}
