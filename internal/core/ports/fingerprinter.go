package ports

import "go.trai.ch/obslog/internal/core/domain"

// Fingerprinter computes a content fingerprint of a cache, used to detect
// unsaved changes.
//
//go:generate go run go.uber.org/mock/mockgen -source=fingerprinter.go -destination=mocks/mock_fingerprinter.go -package=mocks
type Fingerprinter interface {
	Fingerprint(cache *domain.Cache) (uint64, error)
}
