package xmldoc

import "encoding/xml"

// Namespace is the XML namespace of observation-log documents.
const Namespace = "http://groups.google.com/group/openastronomylog"

// SchemaVersion is the document version written by this package.
const SchemaVersion = "2.0"

// LogDTO is the root element of an observation-log document.
// Sections appear in the order they are written: every element is declared
// before the observations that reference it. Empty sections are nil and
// left out of the document.
type LogDTO struct {
	XMLName      xml.Name         `xml:"observations"`
	Xmlns        string           `xml:"xmlns,attr,omitempty"`
	Version      string           `xml:"version,attr,omitempty"`
	Targets      *TargetsDTO      `xml:"targets"`
	Sites        *SitesDTO        `xml:"sites"`
	Observers    *ObserversDTO    `xml:"observers"`
	Scopes       *ScopesDTO       `xml:"scopes"`
	Eyepieces    *EyepiecesDTO    `xml:"eyepieces"`
	Filters      *FiltersDTO      `xml:"filters"`
	Imagers      *ImagersDTO      `xml:"imagers"`
	Lenses       *LensesDTO       `xml:"lenses"`
	Sessions     *SessionsDTO     `xml:"sessions"`
	Observations []ObservationDTO `xml:"observation"`
}

// TargetsDTO is the targets section.
type TargetsDTO struct {
	Items []TargetDTO `xml:"target"`
}

// SitesDTO is the sites section.
type SitesDTO struct {
	Items []SiteDTO `xml:"site"`
}

// ObserversDTO is the observers section.
type ObserversDTO struct {
	Items []ObserverDTO `xml:"observer"`
}

// ScopesDTO is the scopes section.
type ScopesDTO struct {
	Items []ScopeDTO `xml:"scope"`
}

// EyepiecesDTO is the eyepieces section.
type EyepiecesDTO struct {
	Items []EyepieceDTO `xml:"eyepiece"`
}

// FiltersDTO is the filters section.
type FiltersDTO struct {
	Items []FilterDTO `xml:"filter"`
}

// ImagersDTO is the imagers section.
type ImagersDTO struct {
	Items []ImagerDTO `xml:"imager"`
}

// LensesDTO is the lenses section.
type LensesDTO struct {
	Items []LensDTO `xml:"lens"`
}

// SessionsDTO is the sessions section.
type SessionsDTO struct {
	Items []SessionDTO `xml:"session"`
}

// items returns the elements of a possibly absent section.
func items[S any, T any](section *S, get func(*S) []T) []T {
	if section == nil {
		return nil
	}
	return get(section)
}

func (d *LogDTO) targets() []TargetDTO {
	return items(d.Targets, func(s *TargetsDTO) []TargetDTO { return s.Items })
}

func (d *LogDTO) sites() []SiteDTO {
	return items(d.Sites, func(s *SitesDTO) []SiteDTO { return s.Items })
}

func (d *LogDTO) observers() []ObserverDTO {
	return items(d.Observers, func(s *ObserversDTO) []ObserverDTO { return s.Items })
}

func (d *LogDTO) scopes() []ScopeDTO {
	return items(d.Scopes, func(s *ScopesDTO) []ScopeDTO { return s.Items })
}

func (d *LogDTO) eyepieces() []EyepieceDTO {
	return items(d.Eyepieces, func(s *EyepiecesDTO) []EyepieceDTO { return s.Items })
}

func (d *LogDTO) filters() []FilterDTO {
	return items(d.Filters, func(s *FiltersDTO) []FilterDTO { return s.Items })
}

func (d *LogDTO) imagers() []ImagerDTO {
	return items(d.Imagers, func(s *ImagersDTO) []ImagerDTO { return s.Items })
}

func (d *LogDTO) lenses() []LensDTO {
	return items(d.Lenses, func(s *LensesDTO) []LensDTO { return s.Items })
}

func (d *LogDTO) sessions() []SessionDTO {
	return items(d.Sessions, func(s *SessionsDTO) []SessionDTO { return s.Items })
}

// AngleDTO is an angle with an optional unit (deg, rad, arcmin, arcsec).
type AngleDTO struct {
	Unit  string  `xml:"unit,attr,omitempty"`
	Value float64 `xml:",chardata"`
}

// PositionDTO holds equatorial coordinates.
type PositionDTO struct {
	RA  AngleDTO `xml:"ra"`
	Dec AngleDTO `xml:"dec"`
}

// TargetDTO represents a target element.
type TargetDTO struct {
	ID            string       `xml:"id,attr"`
	Type          string       `xml:"type,attr,omitempty"`
	Name          string       `xml:"name"`
	Aliases       []string     `xml:"alias"`
	Constellation string       `xml:"constellation,omitempty"`
	Position      *PositionDTO `xml:"position"`
	Description   string       `xml:"description,omitempty"`
	Components    []string     `xml:"component"`
}

// SiteDTO represents a site element.
type SiteDTO struct {
	ID        string    `xml:"id,attr"`
	Name      string    `xml:"name"`
	Longitude *AngleDTO `xml:"longitude"`
	Latitude  *AngleDTO `xml:"latitude"`
	Elevation float64   `xml:"elevation,omitempty"`
	Timezone  int       `xml:"timezone"`
}

// ObserverDTO represents an observer element.
type ObserverDTO struct {
	ID       string   `xml:"id,attr"`
	Name     string   `xml:"name"`
	Surname  string   `xml:"surname"`
	Contacts []string `xml:"contact"`
	DSLCode  string   `xml:"DSLCode,omitempty"`
}

// ScopeDTO represents a scope element.
type ScopeDTO struct {
	ID          string  `xml:"id,attr"`
	Type        string  `xml:"type,omitempty"`
	Model       string  `xml:"model"`
	Vendor      string  `xml:"vendor,omitempty"`
	Aperture    float64 `xml:"aperture,omitempty"`
	FocalLength float64 `xml:"focalLength,omitempty"`
}

// EyepieceDTO represents an eyepiece element.
type EyepieceDTO struct {
	ID             string    `xml:"id,attr"`
	Model          string    `xml:"model"`
	Vendor         string    `xml:"vendor,omitempty"`
	FocalLength    float64   `xml:"focalLength,omitempty"`
	MaxFocalLength float64   `xml:"maxFocalLength,omitempty"`
	ApparentFOV    *AngleDTO `xml:"apparentFOV"`
}

// FilterDTO represents a filter element.
type FilterDTO struct {
	ID     string `xml:"id,attr"`
	Model  string `xml:"model"`
	Vendor string `xml:"vendor,omitempty"`
	Type   string `xml:"type,omitempty"`
	Color  string `xml:"color,omitempty"`
}

// ImagerDTO represents an imager element.
type ImagerDTO struct {
	ID      string `xml:"id,attr"`
	Model   string `xml:"model"`
	Vendor  string `xml:"vendor,omitempty"`
	PixelsX int    `xml:"pixelsX,omitempty"`
	PixelsY int    `xml:"pixelsY,omitempty"`
}

// LensDTO represents a lens element.
type LensDTO struct {
	ID     string  `xml:"id,attr"`
	Model  string  `xml:"model"`
	Vendor string  `xml:"vendor,omitempty"`
	Factor float64 `xml:"factor,omitempty"`
}

// SessionDTO represents a session element.
type SessionDTO struct {
	ID          string   `xml:"id,attr"`
	Lang        string   `xml:"lang,attr,omitempty"`
	Begin       string   `xml:"begin"`
	End         string   `xml:"end,omitempty"`
	Site        string   `xml:"site"`
	CoObservers []string `xml:"coObserver"`
	Weather     string   `xml:"weather,omitempty"`
	Equipment   string   `xml:"equipment,omitempty"`
	Comments    string   `xml:"comments,omitempty"`
}

// ResultDTO represents the result of an observation.
type ResultDTO struct {
	Description string `xml:"description,omitempty"`
	Rating      int    `xml:"rating,omitempty"`
}

// ObservationDTO represents an observation element.
type ObservationDTO struct {
	ID            string     `xml:"id,attr"`
	Observer      string     `xml:"observer"`
	Site          string     `xml:"site"`
	Session       string     `xml:"session,omitempty"`
	Target        string     `xml:"target"`
	Begin         string     `xml:"begin"`
	End           string     `xml:"end,omitempty"`
	Scope         string     `xml:"scope,omitempty"`
	Accessories   string     `xml:"accessories,omitempty"`
	Eyepiece      string     `xml:"eyepiece,omitempty"`
	Lens          string     `xml:"lens,omitempty"`
	Filter        string     `xml:"filter,omitempty"`
	Magnification float64    `xml:"magnification,omitempty"`
	Imager        string     `xml:"imager,omitempty"`
	Result        *ResultDTO `xml:"result"`
}
