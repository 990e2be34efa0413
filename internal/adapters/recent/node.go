package recent

import (
	"context"
	"path/filepath"

	"github.com/grindlemire/graft"
	"go.trai.ch/obslog/internal/adapters/config"
	"go.trai.ch/obslog/internal/core/domain"
	"go.trai.ch/obslog/internal/core/ports"
)

// NodeID is the unique identifier for the recent documents store node.
const NodeID graft.ID = "adapter.recent_store"

func init() {
	graft.Register(graft.Node[ports.RecentStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.RecentStore, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(filepath.Join(cfg.StateDir, FileName), cfg.RecentLimit)
		},
	})
}
