// types.go
package armory

// Raw weapon record loaded from YAML; mirrors config/weapons/*.yaml.
type RawConfig struct {
	Version string         `yaml:"version"`
	Mode    string         `yaml:"mode"` // "arc_height" | "fixed_speed"
	Gravity *float64       `yaml:"gravity,omitempty"`
	Arc     *ArcConfig     `yaml:"arc,omitempty"`
	Speed   *SpeedConfig   `yaml:"speed,omitempty"`
	Preview *PreviewConfig `yaml:"preview,omitempty"`
	Notes   string         `yaml:"notes,omitempty"`
}

type ArcConfig struct {
	ApexHeight *float64 `yaml:"apex_height"`
	Flatten    *bool    `yaml:"flatten,omitempty"`
}

type SpeedConfig struct {
	InitialSpeed *float64 `yaml:"initial_speed"`
}

type PreviewConfig struct {
	Samples *int `yaml:"samples"`
}
