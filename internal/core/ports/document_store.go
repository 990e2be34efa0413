// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/obslog/internal/core/domain"
)

// DocumentStore reads and writes observation-log documents.
//
//go:generate go run go.uber.org/mock/mockgen -source=document_store.go -destination=mocks/mock_document_store.go -package=mocks
type DocumentStore interface {
	// Load parses and validates the document at path and returns a fully
	// wired cache. On failure nothing is returned and the error carries the path.
	Load(ctx context.Context, path string) (*domain.Cache, error)

	// Save writes the cache as a document to path.
	// The cache is not modified, whether or not the write succeeds.
	Save(ctx context.Context, path string, cache *domain.Cache) error

	// Encode serializes the cache as a document to w.
	Encode(ctx context.Context, w io.Writer, cache *domain.Cache) error
}
