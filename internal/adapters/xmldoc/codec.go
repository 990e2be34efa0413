// Package xmldoc reads and writes observation-log XML documents.
package xmldoc

import (
	"context"
	"encoding/xml"
	"errors"
	"io"
	"math"
	"time"

	"go.trai.ch/obslog/internal/core/domain"
	"go.trai.ch/zerr"
)

// Decode parses a document from r, validates it and returns a wired cache.
// The context is checked between document sections.
func Decode(ctx context.Context, r io.Reader) (*domain.Cache, error) {
	var doc LogDTO
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, zerr.New("document is empty")
		}
		return nil, zerr.Wrap(err, "malformed document")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := Validate(&doc); err != nil {
		return nil, err
	}

	cache := domain.NewCache()
	for _, section := range sections(&doc) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, el := range section() {
			if err := cache.Add(el); err != nil {
				return nil, err
			}
		}
	}

	// Validation resolved every reference already; this guards the wiring.
	if err := cache.Check(); err != nil {
		return nil, err
	}
	return cache, nil
}

// sections returns the element constructors of doc in document order.
func sections(doc *LogDTO) []func() []domain.Element {
	return []func() []domain.Element{
		func() []domain.Element { return convert(doc.targets(), targetFromDTO) },
		func() []domain.Element { return convert(doc.sites(), siteFromDTO) },
		func() []domain.Element { return convert(doc.observers(), observerFromDTO) },
		func() []domain.Element { return convert(doc.scopes(), scopeFromDTO) },
		func() []domain.Element { return convert(doc.eyepieces(), eyepieceFromDTO) },
		func() []domain.Element { return convert(doc.filters(), filterFromDTO) },
		func() []domain.Element { return convert(doc.imagers(), imagerFromDTO) },
		func() []domain.Element { return convert(doc.lenses(), lensFromDTO) },
		func() []domain.Element { return convert(doc.sessions(), sessionFromDTO) },
		func() []domain.Element { return convert(doc.Observations, observationFromDTO) },
	}
}

func convert[D any, E domain.Element](dtos []D, fn func(*D) E) []domain.Element {
	out := make([]domain.Element, len(dtos))
	for i := range dtos {
		out[i] = fn(&dtos[i])
	}
	return out
}

// Encode writes the cache as a document to w, indenting nested elements
// with indent. The cache is only read.
func Encode(ctx context.Context, w io.Writer, cache *domain.Cache, indent string) error {
	doc, err := build(ctx, cache)
	if err != nil {
		return err
	}
	return write(w, doc, indent)
}

// build converts the cache to its document form. The context is checked
// between elements.
func build(ctx context.Context, cache *domain.Cache) (*LogDTO, error) {
	doc := &LogDTO{
		XMLName: xml.Name{Local: "observations"},
		Xmlns:   Namespace,
		Version: SchemaVersion,
	}
	for el := range cache.All() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		appendDTO(doc, el)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

func write(w io.Writer, doc *LogDTO, indent string) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return zerr.Wrap(err, "failed to write document header")
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", indent)
	if err := enc.Encode(doc); err != nil {
		return zerr.Wrap(err, "failed to encode document")
	}
	if err := enc.Close(); err != nil {
		return zerr.Wrap(err, "failed to flush document")
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func appendDTO(doc *LogDTO, el domain.Element) {
	switch e := el.(type) {
	case *domain.Target:
		if doc.Targets == nil {
			doc.Targets = &TargetsDTO{}
		}
		doc.Targets.Items = append(doc.Targets.Items, targetToDTO(e))
	case *domain.Site:
		if doc.Sites == nil {
			doc.Sites = &SitesDTO{}
		}
		doc.Sites.Items = append(doc.Sites.Items, siteToDTO(e))
	case *domain.Observer:
		if doc.Observers == nil {
			doc.Observers = &ObserversDTO{}
		}
		doc.Observers.Items = append(doc.Observers.Items, ObserverDTO{
			ID: string(e.ID), Name: e.Name, Surname: e.Surname, Contacts: e.Contacts, DSLCode: e.DSLCode,
		})
	case *domain.Scope:
		if doc.Scopes == nil {
			doc.Scopes = &ScopesDTO{}
		}
		doc.Scopes.Items = append(doc.Scopes.Items, ScopeDTO{
			ID: string(e.ID), Type: e.Type, Model: e.Model, Vendor: e.Vendor,
			Aperture: e.Aperture, FocalLength: e.FocalLength,
		})
	case *domain.Eyepiece:
		dto := EyepieceDTO{
			ID: string(e.ID), Model: e.Model, Vendor: e.Vendor,
			FocalLength: e.FocalLength, MaxFocalLength: e.MaxFocalLength,
		}
		if e.ApparentFOV != 0 {
			dto.ApparentFOV = &AngleDTO{Unit: "deg", Value: e.ApparentFOV}
		}
		if doc.Eyepieces == nil {
			doc.Eyepieces = &EyepiecesDTO{}
		}
		doc.Eyepieces.Items = append(doc.Eyepieces.Items, dto)
	case *domain.Filter:
		if doc.Filters == nil {
			doc.Filters = &FiltersDTO{}
		}
		doc.Filters.Items = append(doc.Filters.Items, FilterDTO{
			ID: string(e.ID), Model: e.Model, Vendor: e.Vendor, Type: e.Type, Color: e.Color,
		})
	case *domain.Imager:
		if doc.Imagers == nil {
			doc.Imagers = &ImagersDTO{}
		}
		doc.Imagers.Items = append(doc.Imagers.Items, ImagerDTO{
			ID: string(e.ID), Model: e.Model, Vendor: e.Vendor, PixelsX: e.PixelsX, PixelsY: e.PixelsY,
		})
	case *domain.Lens:
		if doc.Lenses == nil {
			doc.Lenses = &LensesDTO{}
		}
		doc.Lenses.Items = append(doc.Lenses.Items, LensDTO{
			ID: string(e.ID), Model: e.Model, Vendor: e.Vendor, Factor: e.Factor,
		})
	case *domain.Session:
		if doc.Sessions == nil {
			doc.Sessions = &SessionsDTO{}
		}
		doc.Sessions.Items = append(doc.Sessions.Items, sessionToDTO(e))
	case *domain.Observation:
		doc.Observations = append(doc.Observations, observationToDTO(e))
	}
}

func targetFromDTO(d *TargetDTO) *domain.Target {
	t := &domain.Target{
		ID:            domain.ID(d.ID),
		Name:          d.Name,
		Type:          d.Type,
		Aliases:       d.Aliases,
		Constellation: d.Constellation,
		Description:   d.Description,
		Components:    ids(d.Components),
	}
	if d.Position != nil {
		t.RA = d.Position.RA.degrees()
		t.Dec = d.Position.Dec.degrees()
	}
	return t
}

func targetToDTO(t *domain.Target) TargetDTO {
	d := TargetDTO{
		ID:            string(t.ID),
		Type:          t.Type,
		Name:          t.Name,
		Aliases:       t.Aliases,
		Constellation: t.Constellation,
		Description:   t.Description,
		Components:    strs(t.Components),
	}
	if t.RA != 0 || t.Dec != 0 {
		d.Position = &PositionDTO{
			RA:  AngleDTO{Unit: "deg", Value: t.RA},
			Dec: AngleDTO{Unit: "deg", Value: t.Dec},
		}
	}
	return d
}

func siteFromDTO(d *SiteDTO) *domain.Site {
	return &domain.Site{
		ID:        domain.ID(d.ID),
		Name:      d.Name,
		Longitude: d.Longitude.degrees(),
		Latitude:  d.Latitude.degrees(),
		Elevation: d.Elevation,
		Timezone:  d.Timezone,
	}
}

func siteToDTO(s *domain.Site) SiteDTO {
	return SiteDTO{
		ID:        string(s.ID),
		Name:      s.Name,
		Longitude: &AngleDTO{Unit: "deg", Value: s.Longitude},
		Latitude:  &AngleDTO{Unit: "deg", Value: s.Latitude},
		Elevation: s.Elevation,
		Timezone:  s.Timezone,
	}
}

func observerFromDTO(d *ObserverDTO) *domain.Observer {
	return &domain.Observer{
		ID:       domain.ID(d.ID),
		Name:     d.Name,
		Surname:  d.Surname,
		Contacts: d.Contacts,
		DSLCode:  d.DSLCode,
	}
}

func scopeFromDTO(d *ScopeDTO) *domain.Scope {
	return &domain.Scope{
		ID:          domain.ID(d.ID),
		Model:       d.Model,
		Vendor:      d.Vendor,
		Type:        d.Type,
		Aperture:    d.Aperture,
		FocalLength: d.FocalLength,
	}
}

func eyepieceFromDTO(d *EyepieceDTO) *domain.Eyepiece {
	return &domain.Eyepiece{
		ID:             domain.ID(d.ID),
		Model:          d.Model,
		Vendor:         d.Vendor,
		FocalLength:    d.FocalLength,
		MaxFocalLength: d.MaxFocalLength,
		ApparentFOV:    d.ApparentFOV.degrees(),
	}
}

func filterFromDTO(d *FilterDTO) *domain.Filter {
	return &domain.Filter{
		ID:     domain.ID(d.ID),
		Model:  d.Model,
		Vendor: d.Vendor,
		Type:   d.Type,
		Color:  d.Color,
	}
}

func imagerFromDTO(d *ImagerDTO) *domain.Imager {
	return &domain.Imager{
		ID:      domain.ID(d.ID),
		Model:   d.Model,
		Vendor:  d.Vendor,
		PixelsX: d.PixelsX,
		PixelsY: d.PixelsY,
	}
}

func lensFromDTO(d *LensDTO) *domain.Lens {
	return &domain.Lens{
		ID:     domain.ID(d.ID),
		Model:  d.Model,
		Vendor: d.Vendor,
		Factor: d.Factor,
	}
}

// Times are validated before conversion, so parse errors cannot occur here.
func sessionFromDTO(d *SessionDTO) *domain.Session {
	begin, _ := parseTime(d.Begin)
	end, _ := parseTime(d.End)
	return &domain.Session{
		ID:          domain.ID(d.ID),
		Begin:       begin,
		End:         end,
		Site:        domain.ID(d.Site),
		CoObservers: ids(d.CoObservers),
		Weather:     d.Weather,
		Equipment:   d.Equipment,
		Comments:    d.Comments,
		Language:    d.Lang,
	}
}

func sessionToDTO(s *domain.Session) SessionDTO {
	return SessionDTO{
		ID:          string(s.ID),
		Lang:        s.Language,
		Begin:       formatTime(s.Begin),
		End:         formatTime(s.End),
		Site:        string(s.Site),
		CoObservers: strs(s.CoObservers),
		Weather:     s.Weather,
		Equipment:   s.Equipment,
		Comments:    s.Comments,
	}
}

func observationFromDTO(d *ObservationDTO) *domain.Observation {
	begin, _ := parseTime(d.Begin)
	end, _ := parseTime(d.End)
	o := &domain.Observation{
		ID:            domain.ID(d.ID),
		Begin:         begin,
		End:           end,
		Observer:      domain.ID(d.Observer),
		Site:          domain.ID(d.Site),
		Session:       domain.ID(d.Session),
		Target:        domain.ID(d.Target),
		Scope:         domain.ID(d.Scope),
		Eyepiece:      domain.ID(d.Eyepiece),
		Imager:        domain.ID(d.Imager),
		Filter:        domain.ID(d.Filter),
		Lens:          domain.ID(d.Lens),
		Magnification: d.Magnification,
		Accessories:   d.Accessories,
	}
	if d.Result != nil {
		o.Result = domain.Result{Description: d.Result.Description, Rating: d.Result.Rating}
	}
	return o
}

func observationToDTO(o *domain.Observation) ObservationDTO {
	d := ObservationDTO{
		ID:            string(o.ID),
		Observer:      string(o.Observer),
		Site:          string(o.Site),
		Session:       string(o.Session),
		Target:        string(o.Target),
		Begin:         formatTime(o.Begin),
		End:           formatTime(o.End),
		Scope:         string(o.Scope),
		Accessories:   o.Accessories,
		Eyepiece:      string(o.Eyepiece),
		Lens:          string(o.Lens),
		Filter:        string(o.Filter),
		Magnification: o.Magnification,
		Imager:        string(o.Imager),
	}
	if o.Result != (domain.Result{}) {
		d.Result = &ResultDTO{Description: o.Result.Description, Rating: o.Result.Rating}
	}
	return d
}

func (a *AngleDTO) degrees() float64 {
	if a == nil {
		return 0
	}
	switch a.Unit {
	case "rad":
		return a.Value * 180 / math.Pi
	case "arcmin":
		return a.Value / 60
	case "arcsec":
		return a.Value / 3600
	default:
		return a.Value
	}
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func ids(ss []string) []domain.ID {
	if len(ss) == 0 {
		return nil
	}
	out := make([]domain.ID, len(ss))
	for i, s := range ss {
		out[i] = domain.ID(s)
	}
	return out
}

func strs(ids []domain.ID) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
