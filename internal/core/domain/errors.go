package domain

import "go.trai.ch/zerr"

var (
	// ErrUnknownKind is returned when an element or kind name is not part of the observation-log schema.
	ErrUnknownKind = zerr.New("unknown element kind")

	// ErrElementNotFound is returned when an element is not present in the cache.
	ErrElementNotFound = zerr.New("element not found")

	// ErrMissingID is returned when an element without an identity is handed to the cache.
	ErrMissingID = zerr.New("element has no id")

	// ErrDanglingReference is returned when an element references another element that is not in the cache.
	ErrDanglingReference = zerr.New("dangling reference")

	// ErrLoad is returned when a document cannot be read, parsed or validated.
	ErrLoad = zerr.New("failed to load document")

	// ErrSave is returned when a document cannot be serialized or written.
	ErrSave = zerr.New("failed to save document")

	// ErrNoDocument is returned when an operation needs an open document and none is open.
	ErrNoDocument = zerr.New("no document open")

	// ErrUntitled is returned when an untitled document is saved without a path.
	ErrUntitled = zerr.New("document has no file path")
)

// Annotate attaches metadata to err while keeping err matchable with errors.Is.
func Annotate(err error, key string, value any) error {
	return zerr.With(zerr.Wrap(err, ""), key, value)
}
