package domain

import (
	"errors"
	"strings"
	"time"
)

// Element is a schema element held by the cache.
// The set of implementations is closed: only the entity types of this package
// satisfy it.
type Element interface {
	// Ref returns the kind and identity of the element.
	Ref() Ref
	// DisplayName returns a short human-readable label.
	DisplayName() string

	// links returns the references this element holds to other elements.
	links() []Ref
}

func ref(k Kind, id ID) Ref {
	if id == "" {
		return Ref{}
	}
	return Ref{Kind: k, ID: id}
}

func compact(refs ...Ref) []Ref {
	out := refs[:0]
	for _, r := range refs {
		if !r.IsZero() {
			out = append(out, r)
		}
	}
	return out
}

// Observer is a person taking part in observations.
type Observer struct {
	ID       ID
	Name     string
	Surname  string
	Contacts []string
	DSLCode  string
}

// Ref implements Element.
func (o *Observer) Ref() Ref { return Ref{Kind: KindObserver, ID: o.ID} }

// DisplayName implements Element.
func (o *Observer) DisplayName() string {
	return strings.TrimSpace(o.Name + " " + o.Surname)
}

func (o *Observer) links() []Ref { return nil }

// Site is a geographic observing location.
type Site struct {
	ID        ID
	Name      string
	Longitude float64
	Latitude  float64
	Elevation float64
	// Timezone is the offset from UTC in minutes.
	Timezone int
}

// Ref implements Element.
func (s *Site) Ref() Ref { return Ref{Kind: KindSite, ID: s.ID} }

// DisplayName implements Element.
func (s *Site) DisplayName() string { return s.Name }

func (s *Site) links() []Ref { return nil }

// Scope is an optical instrument.
type Scope struct {
	ID          ID
	Model       string
	Vendor      string
	Type        string
	Aperture    float64
	FocalLength float64
}

// Ref implements Element.
func (s *Scope) Ref() Ref { return Ref{Kind: KindScope, ID: s.ID} }

// DisplayName implements Element.
func (s *Scope) DisplayName() string { return vendorModel(s.Vendor, s.Model) }

func (s *Scope) links() []Ref { return nil }

// Eyepiece is an ocular. A non-zero MaxFocalLength marks a zoom eyepiece.
type Eyepiece struct {
	ID             ID
	Model          string
	Vendor         string
	FocalLength    float64
	MaxFocalLength float64
	ApparentFOV    float64
}

// Ref implements Element.
func (e *Eyepiece) Ref() Ref { return Ref{Kind: KindEyepiece, ID: e.ID} }

// DisplayName implements Element.
func (e *Eyepiece) DisplayName() string { return vendorModel(e.Vendor, e.Model) }

func (e *Eyepiece) links() []Ref { return nil }

// Imager is a camera or other imaging device.
type Imager struct {
	ID      ID
	Model   string
	Vendor  string
	PixelsX int
	PixelsY int
}

// Ref implements Element.
func (i *Imager) Ref() Ref { return Ref{Kind: KindImager, ID: i.ID} }

// DisplayName implements Element.
func (i *Imager) DisplayName() string { return vendorModel(i.Vendor, i.Model) }

func (i *Imager) links() []Ref { return nil }

// Filter is an optical filter.
type Filter struct {
	ID     ID
	Model  string
	Vendor string
	Type   string
	Color  string
}

// Ref implements Element.
func (f *Filter) Ref() Ref { return Ref{Kind: KindFilter, ID: f.ID} }

// DisplayName implements Element.
func (f *Filter) DisplayName() string { return vendorModel(f.Vendor, f.Model) }

func (f *Filter) links() []Ref { return nil }

// Lens is a barlow or focal reducer.
type Lens struct {
	ID     ID
	Model  string
	Vendor string
	Factor float64
}

// Ref implements Element.
func (l *Lens) Ref() Ref { return Ref{Kind: KindLens, ID: l.ID} }

// DisplayName implements Element.
func (l *Lens) DisplayName() string { return vendorModel(l.Vendor, l.Model) }

func (l *Lens) links() []Ref { return nil }

// Session groups observations made at one site during one night.
// CoObservers are observers who took part without being the primary observer
// of a given observation.
type Session struct {
	ID          ID
	Begin       time.Time
	End         time.Time
	Site        ID
	CoObservers []ID
	Weather     string
	Equipment   string
	Comments    string
	Language    string
}

// Ref implements Element.
func (s *Session) Ref() Ref { return Ref{Kind: KindSession, ID: s.ID} }

// DisplayName implements Element.
func (s *Session) DisplayName() string {
	if s.Begin.IsZero() {
		return string(s.ID)
	}
	return s.Begin.Format(time.DateTime)
}

func (s *Session) links() []Ref {
	refs := make([]Ref, 0, len(s.CoObservers)+1)
	refs = append(refs, ref(KindSite, s.Site))
	for _, id := range s.CoObservers {
		refs = append(refs, ref(KindObserver, id))
	}
	return compact(refs...)
}

// Target is an observed object. A target with components is a composite
// target, e.g. a multiple star system made of its member stars.
type Target struct {
	ID            ID
	Name          string
	Type          string
	Aliases       []string
	Constellation string
	// RA and Dec are J2000 coordinates in degrees.
	RA          float64
	Dec         float64
	Description string
	Components  []ID
}

// Ref implements Element.
func (t *Target) Ref() Ref { return Ref{Kind: KindTarget, ID: t.ID} }

// DisplayName implements Element.
func (t *Target) DisplayName() string { return t.Name }

// Composite reports whether the target has components.
func (t *Target) Composite() bool { return len(t.Components) > 0 }

func (t *Target) links() []Ref {
	refs := make([]Ref, 0, len(t.Components))
	for _, id := range t.Components {
		refs = append(refs, ref(KindTarget, id))
	}
	return compact(refs...)
}

// Result is the outcome recorded for an observation.
type Result struct {
	Description string
	// Rating ranges from 1 (very simple) to 7 (not seen); 0 means unrated.
	Rating int
}

// Observation is the central join entity of the log.
type Observation struct {
	ID            ID
	Begin         time.Time
	End           time.Time
	Observer      ID
	Site          ID
	Session       ID
	Target        ID
	Scope         ID
	Eyepiece      ID
	Imager        ID
	Filter        ID
	Lens          ID
	Magnification float64
	Accessories   string
	Result        Result
}

// Ref implements Element.
func (o *Observation) Ref() Ref { return Ref{Kind: KindObservation, ID: o.ID} }

// DisplayName implements Element.
func (o *Observation) DisplayName() string {
	if o.Begin.IsZero() {
		return string(o.ID)
	}
	return o.Begin.Format(time.DateTime)
}

func (o *Observation) links() []Ref {
	return compact(
		ref(KindTarget, o.Target),
		ref(KindObserver, o.Observer),
		ref(KindSite, o.Site),
		ref(KindSession, o.Session),
		ref(KindScope, o.Scope),
		ref(KindEyepiece, o.Eyepiece),
		ref(KindImager, o.Imager),
		ref(KindFilter, o.Filter),
		ref(KindLens, o.Lens),
	)
}

func vendorModel(vendor, model string) string {
	return strings.TrimSpace(vendor + " " + model)
}

// Links returns the references el holds to other elements.
func Links(el Element) []Ref {
	return el.links()
}

// AssignID gives el the identity id when it has none. It reports whether el
// was changed; elements of an unknown kind are left alone.
func AssignID(el Element, id ID) bool {
	if !NeedsID(el) {
		return false
	}
	switch e := el.(type) {
	case *Observation:
		e.ID = id
	case *Target:
		e.ID = id
	case *Session:
		e.ID = id
	case *Site:
		e.ID = id
	case *Observer:
		e.ID = id
	case *Scope:
		e.ID = id
	case *Eyepiece:
		e.ID = id
	case *Imager:
		e.ID = id
	case *Filter:
		e.ID = id
	case *Lens:
		e.ID = id
	}
	return true
}

// NeedsID reports whether el is a known element still lacking an identity.
func NeedsID(el Element) bool {
	_, err := kindOf(el)
	return errors.Is(err, ErrMissingID)
}
