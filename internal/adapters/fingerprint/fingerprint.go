// Package fingerprint computes content fingerprints of observation logs.
package fingerprint

import (
	"context"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/obslog/internal/core/domain"
	"go.trai.ch/obslog/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fingerprinter = (*Hasher)(nil)

// Hasher fingerprints a cache by hashing its serialized document with XXHash.
// Two caches with the same elements yield the same fingerprint, whatever
// order they were added in.
type Hasher struct {
	store ports.DocumentStore
}

// NewHasher creates a new Hasher serializing through store.
func NewHasher(store ports.DocumentStore) *Hasher {
	return &Hasher{store: store}
}

// Fingerprint returns the XXHash of the document the cache serializes to.
func (h *Hasher) Fingerprint(cache *domain.Cache) (uint64, error) {
	digest := xxhash.New()
	if err := h.store.Encode(context.Background(), digest, cache); err != nil {
		return 0, zerr.Wrap(err, "failed to fingerprint document")
	}
	return digest.Sum64(), nil
}
