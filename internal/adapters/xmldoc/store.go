package xmldoc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"go.trai.ch/obslog/internal/core/domain"
	"go.trai.ch/obslog/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DocumentStore = (*Store)(nil)

// Store implements ports.DocumentStore on the local filesystem.
type Store struct {
	indent string
	backup bool
}

// NewStore creates a Store writing documents with the configured
// indentation and backup policy.
func NewStore(cfg *domain.Config) *Store {
	return &Store{indent: cfg.Indent, backup: cfg.Backup}
}

// Load reads, validates and wires the document at path.
func (s *Store) Load(ctx context.Context, path string) (*domain.Cache, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, loadError(path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	var r io.Reader = bufio.NewReader(f)
	if Compressed(path) {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, loadError(path, zerr.Wrap(err, "failed to open compressed document"))
		}
		defer gz.Close() //nolint:errcheck // read-only stream
		r = gz
	}

	cache, err := Decode(ctx, r)
	if err != nil {
		return nil, loadError(path, err)
	}
	return cache, nil
}

// Compressed reports whether the document at path is stored gzip-compressed.
func Compressed(path string) bool {
	return strings.HasSuffix(path, ".gz")
}

func loadError(path string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return domain.Annotate(fmt.Errorf("%w: %w", domain.ErrLoad, err), "path", path)
}

// Encode writes the cache as a document to w.
func (s *Store) Encode(ctx context.Context, w io.Writer, cache *domain.Cache) error {
	return Encode(ctx, w, cache, s.indent)
}

// Save writes the cache to path. The document is checked against the same
// rules as Load and written to a temporary file next to path first, so a
// failed save leaves the previous file intact.
// With backups enabled the previous file is kept as path + ".bak".
func (s *Store) Save(ctx context.Context, path string, cache *domain.Cache) error {
	if err := s.save(ctx, path, cache); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return domain.Annotate(fmt.Errorf("%w: %w", domain.ErrSave, err), "path", path)
	}
	return nil
}

func (s *Store) write(w io.Writer, doc *LogDTO, compress bool) error {
	if !compress {
		return write(w, doc, s.indent)
	}
	gz := gzip.NewWriter(w)
	if err := write(gz, doc, s.indent); err != nil {
		_ = gz.Close()
		return err
	}
	if err := gz.Close(); err != nil {
		return zerr.Wrap(err, "failed to compress document")
	}
	return nil
}

func (s *Store) save(ctx context.Context, path string, cache *domain.Cache) error {
	doc, err := build(ctx, cache)
	if err != nil {
		return err
	}
	// A document that would not load again is never written.
	if err := Validate(doc); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create document directory")
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return zerr.Wrap(err, "failed to create temporary file")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) //nolint:errcheck // gone after a successful rename

	w := bufio.NewWriter(tmp)
	if err := s.write(w, doc, Compressed(path)); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, "failed to write document")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to close document")
	}

	if s.backup {
		if err := os.Rename(path, path+".bak"); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return zerr.Wrap(err, "failed to keep backup")
		}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return zerr.Wrap(err, "failed to replace document")
	}
	return nil
}
