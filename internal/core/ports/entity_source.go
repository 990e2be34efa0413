package ports

import "go.trai.ch/obslog/internal/core/domain"

// EntitySource reads batches of elements submitted for creation or editing.
//
//go:generate go run go.uber.org/mock/mockgen -source=entity_source.go -destination=mocks/mock_entity_source.go -package=mocks
type EntitySource interface {
	// ReadBatch returns the elements described in the file at path, in file order.
	ReadBatch(path string) ([]domain.Element, error)
}
