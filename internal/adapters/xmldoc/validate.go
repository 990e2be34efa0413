package xmldoc

import (
	"errors"
	"fmt"

	"go.trai.ch/obslog/internal/core/domain"
	"go.trai.ch/zerr"
)

// ErrInvalidDocument is returned when a document does not conform to the observation-log schema.
var ErrInvalidDocument = zerr.New("document does not conform to schema")

// validator collects schema violations of one document.
type validator struct {
	ids      map[domain.Kind]map[string]bool
	problems []error
}

func (v *validator) fail(el domain.Ref, format string, args ...any) {
	err := domain.Annotate(fmt.Errorf(format, args...), "element", el.String())
	v.problems = append(v.problems, err)
}

func (v *validator) declare(k domain.Kind, id string) domain.Ref {
	r := domain.Ref{Kind: k, ID: domain.ID(id)}
	if id == "" {
		v.fail(r, "%s without id", k)
		return r
	}
	if v.ids[k][id] {
		v.fail(r, "duplicate %s id %q", k, id)
	}
	v.ids[k][id] = true
	return r
}

func (v *validator) required(el domain.Ref, field, value string) {
	if value == "" {
		v.fail(el, "%s: missing %s", el, field)
	}
}

func (v *validator) reference(el domain.Ref, field string, k domain.Kind, id string) {
	if id != "" && !v.ids[k][id] {
		v.fail(el, "%s: %s references unknown %s %q", el, field, k, id)
	}
}

func (v *validator) time(el domain.Ref, field, value string) {
	if _, err := parseTime(value); err != nil {
		v.fail(el, "%s: %s is not an RFC 3339 time: %q", el, field, value)
	}
}

// Validate checks a decoded document against the observation-log schema:
// the root element, unique identities per kind, required fields and that
// every reference resolves. All violations are reported together.
func Validate(doc *LogDTO) error {
	if doc.XMLName.Local != "observations" {
		return domain.Annotate(ErrInvalidDocument, "root", doc.XMLName.Local)
	}
	if doc.XMLName.Space != "" && doc.XMLName.Space != Namespace {
		return domain.Annotate(ErrInvalidDocument, "namespace", doc.XMLName.Space)
	}

	v := &validator{ids: make(map[domain.Kind]map[string]bool)}
	for _, k := range domain.Kinds {
		v.ids[k] = make(map[string]bool)
	}

	// Declarations first so references may point forward within a section.
	for _, d := range doc.targets() {
		r := v.declare(domain.KindTarget, d.ID)
		v.required(r, "name", d.Name)
	}
	for _, d := range doc.sites() {
		r := v.declare(domain.KindSite, d.ID)
		v.required(r, "name", d.Name)
	}
	for _, d := range doc.observers() {
		r := v.declare(domain.KindObserver, d.ID)
		v.required(r, "name", d.Name)
		v.required(r, "surname", d.Surname)
	}
	for _, d := range doc.scopes() {
		v.required(v.declare(domain.KindScope, d.ID), "model", d.Model)
	}
	for _, d := range doc.eyepieces() {
		v.required(v.declare(domain.KindEyepiece, d.ID), "model", d.Model)
	}
	for _, d := range doc.filters() {
		v.required(v.declare(domain.KindFilter, d.ID), "model", d.Model)
	}
	for _, d := range doc.imagers() {
		v.required(v.declare(domain.KindImager, d.ID), "model", d.Model)
	}
	for _, d := range doc.lenses() {
		v.required(v.declare(domain.KindLens, d.ID), "model", d.Model)
	}
	for _, d := range doc.sessions() {
		v.declare(domain.KindSession, d.ID)
	}
	for _, d := range doc.Observations {
		v.declare(domain.KindObservation, d.ID)
	}

	for _, d := range doc.targets() {
		r := domain.Ref{Kind: domain.KindTarget, ID: domain.ID(d.ID)}
		for _, c := range d.Components {
			v.reference(r, "component", domain.KindTarget, c)
		}
	}
	for _, d := range doc.sessions() {
		r := domain.Ref{Kind: domain.KindSession, ID: domain.ID(d.ID)}
		v.required(r, "begin", d.Begin)
		v.time(r, "begin", d.Begin)
		v.time(r, "end", d.End)
		v.required(r, "site", d.Site)
		v.reference(r, "site", domain.KindSite, d.Site)
		for _, co := range d.CoObservers {
			v.reference(r, "coObserver", domain.KindObserver, co)
		}
	}
	for _, d := range doc.Observations {
		r := domain.Ref{Kind: domain.KindObservation, ID: domain.ID(d.ID)}
		v.required(r, "observer", d.Observer)
		v.required(r, "site", d.Site)
		v.required(r, "target", d.Target)
		v.required(r, "begin", d.Begin)
		v.time(r, "begin", d.Begin)
		v.time(r, "end", d.End)
		v.reference(r, "observer", domain.KindObserver, d.Observer)
		v.reference(r, "site", domain.KindSite, d.Site)
		v.reference(r, "session", domain.KindSession, d.Session)
		v.reference(r, "target", domain.KindTarget, d.Target)
		v.reference(r, "scope", domain.KindScope, d.Scope)
		v.reference(r, "eyepiece", domain.KindEyepiece, d.Eyepiece)
		v.reference(r, "imager", domain.KindImager, d.Imager)
		v.reference(r, "filter", domain.KindFilter, d.Filter)
		v.reference(r, "lens", domain.KindLens, d.Lens)
		if d.Result != nil && (d.Result.Rating < 0 || d.Result.Rating > 7) {
			v.fail(r, "%s: rating %d out of range 0..7", r, d.Result.Rating)
		}
	}

	if len(v.problems) == 0 {
		return nil
	}
	return zerr.With(
		zerr.Wrap(errors.Join(append([]error{ErrInvalidDocument}, v.problems...)...), ""),
		"problems", len(v.problems),
	)
}
