package ports

// RecentStore remembers the documents that were opened or saved.
//
//go:generate go run go.uber.org/mock/mockgen -source=recent.go -destination=mocks/mock_recent.go -package=mocks
type RecentStore interface {
	// Touch records path as the most recently used document.
	Touch(path string) error
	// List returns the recorded documents, most recent first.
	List() ([]string, error)
}
