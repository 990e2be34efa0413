package app

import (
	"go.trai.ch/obslog/internal/core/domain"
	"go.trai.ch/zerr"
)

// Add inserts el, after its dependents, into the open document. Elements
// without an identity are given a new one; elements already present are
// left as they are.
func (a *App) Add(el domain.Element, dependents ...domain.Element) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, dep := range dependents {
		a.identify(dep)
	}
	a.identify(el)

	inserted, err := a.doc.Cache.Insert(el, dependents...)
	if err != nil {
		return err
	}
	if !inserted {
		a.logger.Info("element already present", "element", el.Ref().String())
		return nil
	}
	a.logger.Info("added element", "element", el.Ref().String())
	return nil
}

func (a *App) identify(el domain.Element) {
	if domain.NeedsID(el) {
		domain.AssignID(el, domain.ID(a.newID()))
	}
}

// Update replaces the element stored under el's identity.
func (a *App) Update(el domain.Element) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.doc.Cache.Update(el); err != nil {
		return err
	}
	a.logger.Info("updated element", "element", el.Ref().String())
	return nil
}

// Remove deletes the element at r. When other elements depend on it nothing
// is removed and the blocking dependents are returned.
func (a *App) Remove(r domain.Ref) ([]domain.Ref, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	deps, err := a.doc.Cache.Remove(r)
	if err != nil {
		return nil, err
	}
	if len(deps) > 0 {
		a.logger.Warn("element still referenced", "element", r.String(), "dependents", len(deps))
		return deps, nil
	}
	a.logger.Info("removed element", "element", r.String())
	return nil, nil
}

// Get returns the element at r.
func (a *App) Get(r domain.Ref) (domain.Element, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	el, ok := a.doc.Cache.Get(r)
	if !ok {
		return nil, domain.Annotate(domain.ErrElementNotFound, "element", r.String())
	}
	return el, nil
}

// List returns the elements of kind k in display order.
func (a *App) List(k domain.Kind) []domain.Element {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.doc.Cache.Elements(k)
}

// References describes what points at an element.
type References struct {
	// Observations are the observations reaching the element.
	Observations []domain.Ref
	// Dependents are all elements preventing its removal.
	Dependents []domain.Ref
}

// Refs returns the references to the element at r.
func (a *App) Refs(r domain.Ref) (References, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if !a.doc.Cache.Contains(r) {
		return References{}, domain.Annotate(domain.ErrElementNotFound, "element", r.String())
	}
	return References{
		Observations: a.doc.Cache.ReferencingObservations(r),
		Dependents:   a.doc.Cache.Dependents(r),
	}, nil
}

// AddBatch adds the elements listed in the batch file at path, in file
// order. It returns the references of the added elements.
func (a *App) AddBatch(path string) ([]domain.Ref, error) {
	els, err := a.source.ReadBatch(path)
	if err != nil {
		return nil, err
	}
	refs := make([]domain.Ref, 0, len(els))
	for i, el := range els {
		if err := a.Add(el); err != nil {
			return refs, zerr.With(zerr.Wrap(err, "failed to add element"), "item", i)
		}
		refs = append(refs, el.Ref())
	}
	return refs, nil
}

// UpdateBatch applies the elements listed in the batch file at path as
// updates, in file order.
func (a *App) UpdateBatch(path string) ([]domain.Ref, error) {
	els, err := a.source.ReadBatch(path)
	if err != nil {
		return nil, err
	}
	refs := make([]domain.Ref, 0, len(els))
	for i, el := range els {
		if err := a.Update(el); err != nil {
			return refs, zerr.With(zerr.Wrap(err, "failed to update element"), "item", i)
		}
		refs = append(refs, el.Ref())
	}
	return refs, nil
}
