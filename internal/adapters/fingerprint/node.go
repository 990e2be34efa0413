package fingerprint

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/obslog/internal/adapters/xmldoc"
	"go.trai.ch/obslog/internal/core/ports"
)

// NodeID is the unique identifier for the fingerprinter Graft node.
const NodeID graft.ID = "adapter.fingerprint"

func init() {
	graft.Register(graft.Node[ports.Fingerprinter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{xmldoc.NodeID},
		Run: func(ctx context.Context) (ports.Fingerprinter, error) {
			store, err := graft.Dep[ports.DocumentStore](ctx)
			if err != nil {
				return nil, err
			}
			return NewHasher(store), nil
		},
	})
}
