// Package app implements the application layer for obslog.
package app

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"go.trai.ch/obslog/internal/core/domain"
	"go.trai.ch/obslog/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App owns the open observation log and drives every operation on it.
// Loading and saving run on a worker goroutine; mutations are serialized.
type App struct {
	store         ports.DocumentStore
	fingerprinter ports.Fingerprinter
	recent        ports.RecentStore
	source        ports.EntitySource
	telemetry     ports.Telemetry
	logger        ports.Logger
	cfg           *domain.Config
	newID         func() string

	mu     sync.RWMutex
	doc    *domain.Document
	opened []string
}

// New creates a new App with an untitled document.
func New(
	store ports.DocumentStore,
	fingerprinter ports.Fingerprinter,
	recent ports.RecentStore,
	source ports.EntitySource,
	telemetry ports.Telemetry,
	log ports.Logger,
	cfg *domain.Config,
) *App {
	return &App{
		store:         store,
		fingerprinter: fingerprinter,
		recent:        recent,
		source:        source,
		telemetry:     telemetry,
		logger:        log,
		cfg:           cfg,
		newID:         uuid.NewString,
		doc:           domain.NewDocument(),
	}
}

// WithIDGenerator replaces the generator of identities for new elements.
// This is primarily used for testing.
func (a *App) WithIDGenerator(fn func() string) *App {
	a.newID = fn
	return a
}

// Document returns the open document.
func (a *App) Document() *domain.Document {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.doc
}

// New discards the open document and starts an untitled one.
func (a *App) New() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.doc = domain.NewDocument()
}

// Resolve returns the document path to use: path itself, or the configured
// default document when path is empty.
func (a *App) Resolve(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	if a.cfg.Document != "" {
		return a.cfg.Document, nil
	}
	return "", domain.ErrNoDocument
}

// Open loads the document at path and makes it the open document. On
// failure, including cancellation, the previously open document is kept.
func (a *App) Open(ctx context.Context, path string) error {
	ctx, vertex := a.telemetry.Record(ctx, "open "+path)

	var cache *domain.Cache
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := a.store.Load(gctx, path)
		if err != nil {
			return err
		}
		cache = c
		return nil
	})
	if err := g.Wait(); err != nil {
		vertex.Complete(err)
		return err
	}
	vertex.Log(strconv.Itoa(cache.Len()) + " elements")

	fp, err := a.fingerprinter.Fingerprint(cache)
	if err != nil {
		vertex.Complete(err)
		return err
	}
	vertex.Complete(nil)

	a.mu.Lock()
	a.doc = &domain.Document{Path: path, Cache: cache, Fingerprint: fp}
	a.remember(path)
	a.mu.Unlock()

	a.logger.Info("opened document", "path", path, "elements", cache.Len())
	return nil
}

// OpenOrCreate opens the document at path, or starts an empty document
// bound to path when no file exists there yet.
func (a *App) OpenOrCreate(ctx context.Context, path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		a.mu.Lock()
		a.doc = &domain.Document{Path: path, Cache: domain.NewCache()}
		a.mu.Unlock()
		a.logger.Info("new document", "path", path)
		return nil
	}
	return a.Open(ctx, path)
}

// Save writes the open document to path, or back to the file it came from
// when path is empty.
func (a *App) Save(ctx context.Context, path string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if path == "" {
		path = a.doc.Path
	}
	if path == "" {
		return domain.ErrUntitled
	}

	ctx, vertex := a.telemetry.Record(ctx, "save "+path)
	cache := a.doc.Cache
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.store.Save(gctx, path, cache)
	})
	if err := g.Wait(); err != nil {
		vertex.Complete(err)
		return err
	}

	fp, err := a.fingerprinter.Fingerprint(cache)
	if err != nil {
		vertex.Complete(err)
		return err
	}
	vertex.Complete(nil)

	a.doc.Path = path
	a.doc.Fingerprint = fp
	a.remember(path)

	a.logger.Info("saved document", "path", path, "elements", cache.Len())
	return nil
}

// remember records path as opened in this session and in the recent list.
// Callers hold a.mu.
func (a *App) remember(path string) {
	if !slices.Contains(a.opened, path) {
		a.opened = append(a.opened, path)
	}
	if err := a.recent.Touch(path); err != nil {
		a.logger.Warn("failed to remember document", "path", path, "error", err)
	}
}

// Modified reports whether the open document differs from its file.
func (a *App) Modified() (bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.doc.Fingerprint == 0 {
		return !a.doc.Cache.IsEmpty(), nil
	}
	fp, err := a.fingerprinter.Fingerprint(a.doc.Cache)
	if err != nil {
		return false, err
	}
	return fp != a.doc.Fingerprint, nil
}

// OpenedFiles returns the documents opened or saved during this session,
// in the order they were first used.
func (a *App) OpenedFiles() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.opened)
}

// Recent returns the remembered documents, most recent first.
func (a *App) Recent() ([]string, error) {
	return a.recent.List()
}

// Validate loads the document at path without opening it.
func (a *App) Validate(ctx context.Context, path string) error {
	ctx, vertex := a.telemetry.Record(ctx, "validate "+path)
	_, err := a.store.Load(ctx, path)
	vertex.Complete(err)
	return err
}

// Close releases the resources held by the application.
func (a *App) Close() error {
	if err := a.telemetry.Close(); err != nil {
		return zerr.Wrap(err, "failed to close telemetry")
	}
	return nil
}

// Export writes the element at r, its dependents and everything they
// reference to w as a standalone document.
func (a *App) Export(ctx context.Context, r domain.Ref, w io.Writer) error {
	a.mu.RLock()
	sub, err := a.doc.Cache.Extract(r)
	a.mu.RUnlock()
	if err != nil {
		return err
	}
	return a.store.Encode(ctx, w, sub)
}
