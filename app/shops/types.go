package shops

// Config is one shop's YAML configuration. The selectors document the
// prioritized element-matching strategies used by the external fetch
// layer; this service only reads the listing dumps that layer writes.
type Config struct {
	Name     string   `yaml:"-"` // derived from filename
	Shop     Info     `yaml:"shop"`
	Settings Settings `yaml:"settings"`
	// Selectors are tried in order by the fetch layer; the first
	// query returning a non-empty result wins.
	Selectors []Selector `yaml:"selectors"`
}

type Info struct {
	Name         string `yaml:"name"`
	URL          string `yaml:"url"`
	Currency     string `yaml:"currency"`
	ListingsFile string `yaml:"listings_file"`
}

type Settings struct {
	Enabled bool `yaml:"enabled"`
	Timeout int  `yaml:"timeout"` // seconds, fetch layer hint
}

type Selector struct {
	Field   string   `yaml:"field"` // "title" or "price"
	Queries []string `yaml:"queries"`
}
