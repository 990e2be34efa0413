package ports

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records the progress of long-running document operations.
type Telemetry interface {
	// Record starts a new vertex for an operation.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes the recording.
	Close() error
}

// Vertex is one recorded operation.
type Vertex interface {
	// Log attaches a progress message to the vertex.
	Log(msg string)
	// Complete marks the vertex as finished, successfully or with err.
	Complete(err error)
}
