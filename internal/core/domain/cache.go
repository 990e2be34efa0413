package domain

import (
	"cmp"
	"iter"
	"maps"
	"slices"

	"go.trai.ch/zerr"
)

// set is an unordered set of references.
type set map[Ref]struct{}

func (s set) add(r Ref) { s[r] = struct{}{} }

func (s set) del(r Ref) { delete(s, r) }

func (s set) has(r Ref) bool {
	_, ok := s[r]
	return ok
}

// diff returns the members of s that are not in other.
func (s set) diff(other set) []Ref {
	var out []Ref
	for r := range s {
		if !other.has(r) {
			out = append(out, r)
		}
	}
	return out
}

// entry is the cache slot of one element.
type entry struct {
	el Element

	// links are the structural references of sessions and targets as they
	// were last wired. Observations keep theirs in closure instead.
	links []Ref

	// closure is the forward reference set of an observation: its direct
	// references, the components of a composite target and the co-observers
	// of its session.
	closure set

	// missing holds references of this element that could not be resolved
	// when it was wired.
	missing set

	// observations is the reverse-reference set: every observation whose
	// closure contains this element.
	observations set

	// holders are the sessions and composite targets that link to this
	// element structurally.
	holders set
}

// Cache holds every element of one open document together with the
// reverse-reference indexes between them.
//
// A Cache is not safe for concurrent use. Callers serialize mutations.
type Cache struct {
	entries map[Ref]*entry
	// pending maps an absent element to the elements waiting for it.
	pending map[Ref]set
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[Ref]*entry),
		pending: make(map[Ref]set),
	}
}

// kindOf validates an element and returns its reference.
func kindOf(el Element) (Ref, error) {
	var r Ref
	switch e := el.(type) {
	case *Observation:
		if e != nil {
			r = e.Ref()
		}
	case *Target:
		if e != nil {
			r = e.Ref()
		}
	case *Session:
		if e != nil {
			r = e.Ref()
		}
	case *Site:
		if e != nil {
			r = e.Ref()
		}
	case *Observer:
		if e != nil {
			r = e.Ref()
		}
	case *Scope:
		if e != nil {
			r = e.Ref()
		}
	case *Eyepiece:
		if e != nil {
			r = e.Ref()
		}
	case *Imager:
		if e != nil {
			r = e.Ref()
		}
	case *Filter:
		if e != nil {
			r = e.Ref()
		}
	case *Lens:
		if e != nil {
			r = e.Ref()
		}
	}
	if r.Kind == 0 {
		return Ref{}, ErrUnknownKind
	}
	if r.ID == "" {
		return Ref{}, Annotate(ErrMissingID, "kind", r.Kind.String())
	}
	return r, nil
}

// Add inserts el into the cache. Elements already present, compared by kind
// and ID, are left as they are. Dependents are inserted first, which is how
// an observation or session is added together with the elements it
// references.
func (c *Cache) Add(el Element, dependents ...Element) error {
	_, err := c.Insert(el, dependents...)
	return err
}

// Insert is Add, also reporting whether el itself was new to the cache.
func (c *Cache) Insert(el Element, dependents ...Element) (bool, error) {
	for _, dep := range dependents {
		if _, err := c.add(dep); err != nil {
			return false, err
		}
	}
	return c.add(el)
}

func (c *Cache) add(el Element) (bool, error) {
	r, err := kindOf(el)
	if err != nil {
		return false, err
	}
	if _, exists := c.entries[r]; exists {
		return false, nil
	}

	e := &entry{
		el:           el,
		closure:      make(set),
		missing:      make(set),
		observations: make(set),
		holders:      make(set),
	}
	c.entries[r] = e

	if r.Kind == KindObservation {
		c.rewire(r)
	} else {
		c.relink(r, el.links())
	}

	c.resolve(r)
	return true, nil
}

// resolve wires every element that was waiting for r to be added.
func (c *Cache) resolve(r Ref) {
	waiting, ok := c.pending[r]
	if !ok {
		return
	}
	delete(c.pending, r)

	e := c.entries[r]
	for _, w := range sortedRefs(waiting) {
		we, ok := c.entries[w]
		if !ok {
			continue
		}
		we.missing.del(r)
		if w.Kind == KindObservation {
			c.rewire(w)
			continue
		}
		e.holders.add(w)
		c.rewireObservationsOf(w)
	}
}

// Update replaces the element stored under el's identity with el and brings
// every affected reverse-reference set up to date. References that did not
// change are left untouched.
func (c *Cache) Update(el Element) error {
	r, err := kindOf(el)
	if err != nil {
		return err
	}
	e, ok := c.entries[r]
	if !ok {
		return Annotate(ErrElementNotFound, "element", r.String())
	}
	e.el = el

	switch r.Kind {
	case KindObservation:
		c.rewire(r)
	case KindSession, KindTarget:
		c.relink(r, el.links())
		c.rewireObservationsOf(r)
	}
	return nil
}

// Remove deletes the element addressed by r. When other elements still
// depend on it nothing is removed and the dependents are returned instead.
// Removing an observation retracts it from every element it pointed at.
func (c *Cache) Remove(r Ref) ([]Ref, error) {
	if !r.Kind.Valid() {
		return nil, ErrUnknownKind
	}
	e, ok := c.entries[r]
	if !ok {
		return nil, Annotate(ErrElementNotFound, "element", r.String())
	}
	if deps := c.Dependents(r); len(deps) > 0 {
		return deps, nil
	}

	if r.Kind == KindObservation {
		for target := range e.closure {
			if te, ok := c.entries[target]; ok {
				te.observations.del(r)
			}
		}
	} else {
		c.relink(r, nil)
	}
	for m := range e.missing {
		c.unpark(m, r)
	}
	delete(c.entries, r)
	return nil, nil
}

// relink replaces the structural links of a session or target, moving the
// holder entries of the elements that were dropped or added.
func (c *Cache) relink(r Ref, links []Ref) {
	e := c.entries[r]
	oldLinks := make(set, len(e.links))
	for _, l := range e.links {
		oldLinks.add(l)
	}
	newLinks := make(set, len(links))
	for _, l := range links {
		newLinks.add(l)
	}

	for _, l := range oldLinks.diff(newLinks) {
		if le, ok := c.entries[l]; ok {
			le.holders.del(r)
		}
		e.missing.del(l)
		c.unpark(l, r)
	}
	for _, l := range newLinks.diff(oldLinks) {
		if le, ok := c.entries[l]; ok && l != r {
			le.holders.add(r)
			continue
		}
		if l != r {
			e.missing.add(l)
			c.park(l, r)
		}
	}
	e.links = slices.Clone(links)
}

// rewireObservationsOf recomputes the closure of every observation that
// currently reaches r.
func (c *Cache) rewireObservationsOf(r Ref) {
	e, ok := c.entries[r]
	if !ok {
		return
	}
	for _, o := range sortedRefs(e.observations) {
		c.rewire(o)
	}
}

// rewire recomputes the forward closure of an observation and applies the
// difference to the reverse-reference sets.
func (c *Cache) rewire(o Ref) {
	e := c.entries[o]
	closure, missing := c.closureOf(e.el)

	for _, r := range e.closure.diff(closure) {
		if re, ok := c.entries[r]; ok {
			re.observations.del(o)
		}
	}
	for _, r := range closure.diff(e.closure) {
		c.entries[r].observations.add(o)
	}
	e.closure = closure

	for _, m := range e.missing.diff(missing) {
		c.unpark(m, o)
	}
	for _, m := range missing.diff(e.missing) {
		c.park(m, o)
	}
	e.missing = missing
}

// closureOf walks the outgoing references of an observation. Composite
// targets contribute their components, sessions their co-observers.
func (c *Cache) closureOf(el Element) (closure, missing set) {
	closure = make(set)
	missing = make(set)

	var visit func(r Ref)
	visit = func(r Ref) {
		if closure.has(r) || missing.has(r) {
			return
		}
		e, ok := c.entries[r]
		if !ok {
			missing.add(r)
			return
		}
		closure.add(r)
		switch r.Kind {
		case KindTarget:
			for _, comp := range e.links {
				visit(comp)
			}
		case KindSession:
			for _, l := range e.links {
				if l.Kind == KindObserver {
					visit(l)
				}
			}
		}
	}
	for _, r := range el.links() {
		visit(r)
	}
	return closure, missing
}

func (c *Cache) park(missing, waiter Ref) {
	w, ok := c.pending[missing]
	if !ok {
		w = make(set)
		c.pending[missing] = w
	}
	w.add(waiter)
}

func (c *Cache) unpark(missing, waiter Ref) {
	w, ok := c.pending[missing]
	if !ok {
		return
	}
	w.del(waiter)
	if len(w) == 0 {
		delete(c.pending, missing)
	}
}

// Get returns the element addressed by r.
func (c *Cache) Get(r Ref) (Element, bool) {
	e, ok := c.entries[r]
	if !ok {
		return nil, false
	}
	return e.el, true
}

// Contains reports whether an element with the given reference is cached.
func (c *Cache) Contains(r Ref) bool {
	_, ok := c.entries[r]
	return ok
}

// ReferencingObservations returns the observations that currently point at
// r, directly or through a composite target or session co-observer
// relationship. The result is sorted by observation order.
func (c *Cache) ReferencingObservations(r Ref) []Ref {
	e, ok := c.entries[r]
	if !ok || len(e.observations) == 0 {
		return nil
	}
	return c.sorted(e.observations)
}

// Dependents returns every element that prevents r from being removed:
// the observations that reach it and the sessions or composite targets
// that link to it.
func (c *Cache) Dependents(r Ref) []Ref {
	e, ok := c.entries[r]
	if !ok {
		return nil
	}
	deps := make(set, len(e.observations)+len(e.holders))
	for o := range e.observations {
		deps.add(o)
	}
	for h := range e.holders {
		deps.add(h)
	}
	if len(deps) == 0 {
		return nil
	}
	return c.sorted(deps)
}

// Holders returns the sessions and composite targets linking to r.
func (c *Cache) Holders(r Ref) []Ref {
	e, ok := c.entries[r]
	if !ok || len(e.holders) == 0 {
		return nil
	}
	return c.sorted(e.holders)
}

// Elements returns all elements of the given kind in display order.
func (c *Cache) Elements(k Kind) []Element {
	return elementsOf[Element](c, k)
}

func elementsOf[T Element](c *Cache, k Kind) []T {
	var out []T
	for r, e := range c.entries {
		if r.Kind != k {
			continue
		}
		if el, ok := e.el.(T); ok {
			out = append(out, el)
		}
	}
	sortElements(out)
	return out
}

// Observations returns all observations ordered by begin time.
func (c *Cache) Observations() []*Observation { return elementsOf[*Observation](c, KindObservation) }

// Targets returns all targets ordered by name.
func (c *Cache) Targets() []*Target { return elementsOf[*Target](c, KindTarget) }

// Sessions returns all sessions ordered by begin time.
func (c *Cache) Sessions() []*Session { return elementsOf[*Session](c, KindSession) }

// Sites returns all sites ordered by name.
func (c *Cache) Sites() []*Site { return elementsOf[*Site](c, KindSite) }

// Observers returns all observers ordered by surname and name.
func (c *Cache) Observers() []*Observer { return elementsOf[*Observer](c, KindObserver) }

// Scopes returns all scopes ordered by vendor and model.
func (c *Cache) Scopes() []*Scope { return elementsOf[*Scope](c, KindScope) }

// Eyepieces returns all eyepieces ordered by vendor and model.
func (c *Cache) Eyepieces() []*Eyepiece { return elementsOf[*Eyepiece](c, KindEyepiece) }

// Imagers returns all imagers ordered by vendor and model.
func (c *Cache) Imagers() []*Imager { return elementsOf[*Imager](c, KindImager) }

// Filters returns all filters ordered by vendor and model.
func (c *Cache) Filters() []*Filter { return elementsOf[*Filter](c, KindFilter) }

// Lenses returns all lenses ordered by vendor and model.
func (c *Cache) Lenses() []*Lens { return elementsOf[*Lens](c, KindLens) }

// All yields every element in document order: grouped by kind, observations
// last, each group in display order.
func (c *Cache) All() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		for _, k := range Kinds {
			for _, el := range c.Elements(k) {
				if !yield(el) {
					return
				}
			}
		}
	}
}

// Len returns the number of cached elements.
func (c *Cache) Len() int {
	return len(c.entries)
}

// IsEmpty reports whether the cache holds no elements.
func (c *Cache) IsEmpty() bool {
	return len(c.entries) == 0
}

// Check verifies that every reference held by a cached element resolves.
func (c *Cache) Check() error {
	if len(c.pending) == 0 {
		return nil
	}
	missing := make(set, len(c.pending))
	for r := range c.pending {
		missing.add(r)
	}
	first := sortedRefs(missing)[0]
	waiter := sortedRefs(c.pending[first])[0]
	return zerr.With(
		Annotate(ErrDanglingReference, "reference", first.String()),
		"referenced_by", waiter.String(),
	)
}

// Extract builds a new cache holding the element addressed by r, everything
// that depends on it and everything those elements reference.
func (c *Cache) Extract(r Ref) (*Cache, error) {
	if _, ok := c.entries[r]; !ok {
		return nil, Annotate(ErrElementNotFound, "element", r.String())
	}

	keep := make(set)
	var visit func(r Ref)
	visit = func(r Ref) {
		e, ok := c.entries[r]
		if !ok || keep.has(r) {
			return
		}
		keep.add(r)
		for _, l := range e.el.links() {
			visit(l)
		}
		for _, l := range e.links {
			visit(l)
		}
	}

	visit(r)
	for _, d := range c.Dependents(r) {
		visit(d)
	}

	sub := NewCache()
	for _, k := range Kinds {
		for _, el := range c.Elements(k) {
			if keep.has(el.Ref()) {
				if _, err := sub.add(el); err != nil {
					return nil, err
				}
			}
		}
	}
	return sub, nil
}

func (c *Cache) sorted(s set) []Ref {
	els := make([]Element, 0, len(s))
	for r := range s {
		if e, ok := c.entries[r]; ok {
			els = append(els, e.el)
		}
	}
	sortElements(els)
	out := make([]Ref, len(els))
	for i, el := range els {
		out[i] = el.Ref()
	}
	return out
}

func sortedRefs(s set) []Ref {
	out := slices.Collect(maps.Keys(s))
	slices.SortFunc(out, func(a, b Ref) int {
		return cmp.Or(cmp.Compare(a.Kind, b.Kind), cmp.Compare(a.ID, b.ID))
	})
	return out
}
