// Package entityfile reads batches of observation-log elements from YAML files.
package entityfile

import (
	"fmt"
	"os"
	"time"

	"go.trai.ch/obslog/internal/core/domain"
	"go.trai.ch/obslog/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// ErrInvalidBatch is returned when a batch file is not a sequence of elements.
var ErrInvalidBatch = zerr.New("invalid element batch")

var _ ports.EntitySource = (*Reader)(nil)

// Reader implements ports.EntitySource for YAML batch files.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadBatch reads the elements listed in the YAML file at path.
func (r *Reader) ReadBatch(path string) ([]domain.Element, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read element batch"), "path", path)
	}
	els, err := Parse(data)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse element batch"), "path", path)
	}
	return els, nil
}

// Parse decodes a YAML sequence of elements. Each item names its kind with
// a "kind" key; the remaining keys are the element's fields.
func Parse(data []byte) ([]domain.Element, error) {
	var items []yaml.Node
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBatch, err)
	}

	els := make([]domain.Element, 0, len(items))
	for i := range items {
		el, err := decodeItem(&items[i])
		if err != nil {
			return nil, zerr.With(zerr.With(err, "item", i), "line", items[i].Line)
		}
		els = append(els, el)
	}
	return els, nil
}

func decodeItem(node *yaml.Node) (domain.Element, error) {
	var h header
	if err := node.Decode(&h); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBatch, err)
	}
	kind, err := domain.ParseKind(h.Kind)
	if err != nil {
		return nil, err
	}

	switch kind {
	case domain.KindObserver:
		return decode(node, func(it *observerItem) (domain.Element, error) {
			return &domain.Observer{
				ID:       domain.ID(it.ID),
				Name:     it.Name,
				Surname:  it.Surname,
				Contacts: it.Contacts,
				DSLCode:  it.DSLCode,
			}, nil
		})
	case domain.KindSite:
		return decode(node, func(it *siteItem) (domain.Element, error) {
			return &domain.Site{
				ID:        domain.ID(it.ID),
				Name:      it.Name,
				Longitude: it.Longitude,
				Latitude:  it.Latitude,
				Elevation: it.Elevation,
				Timezone:  it.Timezone,
			}, nil
		})
	case domain.KindScope:
		return decode(node, func(it *scopeItem) (domain.Element, error) {
			return &domain.Scope{
				ID:          domain.ID(it.ID),
				Model:       it.Model,
				Vendor:      it.Vendor,
				Type:        it.Type,
				Aperture:    it.Aperture,
				FocalLength: it.FocalLength,
			}, nil
		})
	case domain.KindEyepiece:
		return decode(node, func(it *eyepieceItem) (domain.Element, error) {
			return &domain.Eyepiece{
				ID:             domain.ID(it.ID),
				Model:          it.Model,
				Vendor:         it.Vendor,
				FocalLength:    it.FocalLength,
				MaxFocalLength: it.MaxFocalLength,
				ApparentFOV:    it.ApparentFOV,
			}, nil
		})
	case domain.KindImager:
		return decode(node, func(it *imagerItem) (domain.Element, error) {
			return &domain.Imager{
				ID:      domain.ID(it.ID),
				Model:   it.Model,
				Vendor:  it.Vendor,
				PixelsX: it.PixelsX,
				PixelsY: it.PixelsY,
			}, nil
		})
	case domain.KindFilter:
		return decode(node, func(it *filterItem) (domain.Element, error) {
			return &domain.Filter{
				ID:     domain.ID(it.ID),
				Model:  it.Model,
				Vendor: it.Vendor,
				Type:   it.Type,
				Color:  it.Color,
			}, nil
		})
	case domain.KindLens:
		return decode(node, func(it *lensItem) (domain.Element, error) {
			return &domain.Lens{
				ID:     domain.ID(it.ID),
				Model:  it.Model,
				Vendor: it.Vendor,
				Factor: it.Factor,
			}, nil
		})
	case domain.KindTarget:
		return decode(node, func(it *targetItem) (domain.Element, error) {
			return &domain.Target{
				ID:            domain.ID(it.ID),
				Name:          it.Name,
				Type:          it.Type,
				Aliases:       it.Aliases,
				Constellation: it.Constellation,
				RA:            it.RA,
				Dec:           it.Dec,
				Description:   it.Description,
				Components:    ids(it.Components),
			}, nil
		})
	case domain.KindSession:
		return decode(node, func(it *sessionItem) (domain.Element, error) {
			begin, end, err := interval(it.Begin, it.End)
			if err != nil {
				return nil, err
			}
			return &domain.Session{
				ID:          domain.ID(it.ID),
				Begin:       begin,
				End:         end,
				Site:        domain.ID(it.Site),
				CoObservers: ids(it.CoObservers),
				Weather:     it.Weather,
				Equipment:   it.Equipment,
				Comments:    it.Comments,
				Language:    it.Language,
			}, nil
		})
	default:
		return decode(node, func(it *observationItem) (domain.Element, error) {
			begin, end, err := interval(it.Begin, it.End)
			if err != nil {
				return nil, err
			}
			return &domain.Observation{
				ID:            domain.ID(it.ID),
				Begin:         begin,
				End:           end,
				Observer:      domain.ID(it.Observer),
				Site:          domain.ID(it.Site),
				Session:       domain.ID(it.Session),
				Target:        domain.ID(it.Target),
				Scope:         domain.ID(it.Scope),
				Eyepiece:      domain.ID(it.Eyepiece),
				Imager:        domain.ID(it.Imager),
				Filter:        domain.ID(it.Filter),
				Lens:          domain.ID(it.Lens),
				Magnification: it.Magnification,
				Accessories:   it.Accessories,
				Result: domain.Result{
					Description: it.Result.Description,
					Rating:      it.Result.Rating,
				},
			}, nil
		})
	}
}

func decode[T any](node *yaml.Node, build func(*T) (domain.Element, error)) (domain.Element, error) {
	var it T
	if err := node.Decode(&it); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBatch, err)
	}
	return build(&it)
}

func interval(begin, end string) (time.Time, time.Time, error) {
	b, err := parseTime(begin)
	if err != nil {
		return time.Time{}, time.Time{}, zerr.With(zerr.Wrap(err, "invalid begin"), "begin", begin)
	}
	e, err := parseTime(end)
	if err != nil {
		return time.Time{}, time.Time{}, zerr.With(zerr.Wrap(err, "invalid end"), "end", end)
	}
	return b, e, nil
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}

func ids(in []string) []domain.ID {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.ID, len(in))
	for i, s := range in {
		out[i] = domain.ID(s)
	}
	return out
}
