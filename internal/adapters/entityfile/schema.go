package entityfile

// header is decoded first to select the element kind of a batch item.
type header struct {
	Kind string `yaml:"kind"`
}

type observerItem struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Surname  string   `yaml:"surname"`
	Contacts []string `yaml:"contacts"`
	DSLCode  string   `yaml:"dslCode"`
}

type siteItem struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	Longitude float64 `yaml:"longitude"`
	Latitude  float64 `yaml:"latitude"`
	Elevation float64 `yaml:"elevation"`
	Timezone  int     `yaml:"timezone"`
}

type scopeItem struct {
	ID          string  `yaml:"id"`
	Model       string  `yaml:"model"`
	Vendor      string  `yaml:"vendor"`
	Type        string  `yaml:"type"`
	Aperture    float64 `yaml:"aperture"`
	FocalLength float64 `yaml:"focalLength"`
}

type eyepieceItem struct {
	ID             string  `yaml:"id"`
	Model          string  `yaml:"model"`
	Vendor         string  `yaml:"vendor"`
	FocalLength    float64 `yaml:"focalLength"`
	MaxFocalLength float64 `yaml:"maxFocalLength"`
	ApparentFOV    float64 `yaml:"apparentFOV"`
}

type imagerItem struct {
	ID      string `yaml:"id"`
	Model   string `yaml:"model"`
	Vendor  string `yaml:"vendor"`
	PixelsX int    `yaml:"pixelsX"`
	PixelsY int    `yaml:"pixelsY"`
}

type filterItem struct {
	ID     string `yaml:"id"`
	Model  string `yaml:"model"`
	Vendor string `yaml:"vendor"`
	Type   string `yaml:"type"`
	Color  string `yaml:"color"`
}

type lensItem struct {
	ID     string  `yaml:"id"`
	Model  string  `yaml:"model"`
	Vendor string  `yaml:"vendor"`
	Factor float64 `yaml:"factor"`
}

type sessionItem struct {
	ID          string   `yaml:"id"`
	Begin       string   `yaml:"begin"`
	End         string   `yaml:"end"`
	Site        string   `yaml:"site"`
	CoObservers []string `yaml:"coObservers"`
	Weather     string   `yaml:"weather"`
	Equipment   string   `yaml:"equipment"`
	Comments    string   `yaml:"comments"`
	Language    string   `yaml:"language"`
}

type targetItem struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Type          string   `yaml:"type"`
	Aliases       []string `yaml:"aliases"`
	Constellation string   `yaml:"constellation"`
	RA            float64  `yaml:"ra"`
	Dec           float64  `yaml:"dec"`
	Description   string   `yaml:"description"`
	Components    []string `yaml:"components"`
}

type resultItem struct {
	Description string `yaml:"description"`
	Rating      int    `yaml:"rating"`
}

type observationItem struct {
	ID            string     `yaml:"id"`
	Begin         string     `yaml:"begin"`
	End           string     `yaml:"end"`
	Observer      string     `yaml:"observer"`
	Site          string     `yaml:"site"`
	Session       string     `yaml:"session"`
	Target        string     `yaml:"target"`
	Scope         string     `yaml:"scope"`
	Eyepiece      string     `yaml:"eyepiece"`
	Imager        string     `yaml:"imager"`
	Filter        string     `yaml:"filter"`
	Lens          string     `yaml:"lens"`
	Magnification float64    `yaml:"magnification"`
	Accessories   string     `yaml:"accessories"`
	Result        resultItem `yaml:"result"`
}
