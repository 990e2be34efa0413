// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/obslog/internal/adapters/config"
	_ "go.trai.ch/obslog/internal/adapters/entityfile"
	_ "go.trai.ch/obslog/internal/adapters/fingerprint"
	_ "go.trai.ch/obslog/internal/adapters/logger"
	_ "go.trai.ch/obslog/internal/adapters/recent"
	_ "go.trai.ch/obslog/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/obslog/internal/adapters/xmldoc"
	// Register app nodes.
	_ "go.trai.ch/obslog/internal/app"
)
