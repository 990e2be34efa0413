package config

// Configfile represents the structure of the obslog.yaml configuration file.
type Configfile struct {
	Version     string `yaml:"version"`
	Document    string `yaml:"document"`
	Backup      *bool  `yaml:"backup"`
	Indent      *int   `yaml:"indent"`
	RecentLimit *int   `yaml:"recentLimit"`
	StateDir    string `yaml:"stateDir"`
}
