// Package domain contains the observation-log entities and the in-memory
// cache that keeps references between them consistent.
package domain

// Kind identifies one of the schema element kinds of an observation log.
type Kind uint8

// The closed set of element kinds. The order matches the serialization order
// of the document, observations last.
const (
	KindTarget Kind = iota + 1
	KindSite
	KindObserver
	KindScope
	KindEyepiece
	KindFilter
	KindImager
	KindLens
	KindSession
	KindObservation
)

// Kinds lists every element kind in document order.
var Kinds = []Kind{
	KindTarget,
	KindSite,
	KindObserver,
	KindScope,
	KindEyepiece,
	KindFilter,
	KindImager,
	KindLens,
	KindSession,
	KindObservation,
}

var kindNames = map[Kind]string{
	KindTarget:      "target",
	KindSite:        "site",
	KindObserver:    "observer",
	KindScope:       "scope",
	KindEyepiece:    "eyepiece",
	KindFilter:      "filter",
	KindImager:      "imager",
	KindLens:        "lens",
	KindSession:     "session",
	KindObservation: "observation",
}

// String returns the lower-case element name used in documents and on the
// command line.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind resolves a kind from its name. Plural forms are accepted.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if s == name || s == name+"s" || (k == KindLens && s == "lenses") {
			return k, nil
		}
	}
	return 0, Annotate(ErrUnknownKind, "kind", s)
}

// ID is the stable identity of an element within its kind.
type ID string

// Ref addresses an element in the cache.
type Ref struct {
	Kind Kind
	ID   ID
}

// String renders the reference as "kind/id".
func (r Ref) String() string {
	return r.Kind.String() + "/" + string(r.ID)
}

// IsZero reports whether the reference is unset.
func (r Ref) IsZero() bool {
	return r.ID == ""
}
