package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/obslog/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/obslog/internal/adapters/entityfile"         //nolint:depguard // Wired in app layer
	"go.trai.ch/obslog/internal/adapters/fingerprint"        //nolint:depguard // Wired in app layer
	"go.trai.ch/obslog/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/obslog/internal/adapters/recent"             //nolint:depguard // Wired in app layer
	"go.trai.ch/obslog/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/obslog/internal/adapters/xmldoc"             //nolint:depguard // Wired in app layer
	"go.trai.ch/obslog/internal/core/domain"
	"go.trai.ch/obslog/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			xmldoc.NodeID,
			fingerprint.NodeID,
			recent.NodeID,
			entityfile.NodeID,
			progrock.NodeID,
			logger.NodeID,
			config.SettingsNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewComponents(a, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	store, err := graft.Dep[ports.DocumentStore](ctx)
	if err != nil {
		return nil, err
	}

	fp, err := graft.Dep[ports.Fingerprinter](ctx)
	if err != nil {
		return nil, err
	}

	rec, err := graft.Dep[ports.RecentStore](ctx)
	if err != nil {
		return nil, err
	}

	source, err := graft.Dep[ports.EntitySource](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	return New(store, fp, rec, source, telemetry, log, cfg), nil
}
