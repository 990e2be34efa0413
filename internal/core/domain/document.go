package domain

import "path/filepath"

// Document is the handle of one open observation log. Every cache operation
// of the application goes through the document it belongs to.
type Document struct {
	// Path is the file the document was loaded from or last saved to.
	// It is empty for a document that was never saved.
	Path string
	// Cache holds the elements of the document.
	Cache *Cache
	// Fingerprint identifies the serialized content as of the last load or
	// save. Zero means the content was never persisted.
	Fingerprint uint64
}

// NewDocument creates an untitled document with an empty cache.
func NewDocument() *Document {
	return &Document{Cache: NewCache()}
}

// Untitled reports whether the document has never been saved to a file.
func (d *Document) Untitled() bool {
	return d.Path == ""
}

// Name returns the base name of the document file.
func (d *Document) Name() string {
	if d.Untitled() {
		return "untitled"
	}
	return filepath.Base(d.Path)
}
