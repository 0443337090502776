package models

// Settings represents the application configuration
type Settings struct {
	UI    UISettings    `yaml:"ui"`
	Prefs PrefsSettings `yaml:"prefs"`
}

// UISettings controls grid presentation defaults
type UISettings struct {
	Density        string `yaml:"density"`         // "compact", "standard" or "comfortable"
	CardBreakpoint int    `yaml:"card_breakpoint"` // terminal width below which the card view takes over
}

// PrefsSettings controls layout persistence
type PrefsSettings struct {
	Enabled    bool `yaml:"enabled"`
	DebounceMS int  `yaml:"debounce_ms"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		UI: UISettings{
			Density:        "standard",
			CardBreakpoint: 80,
		},
		Prefs: PrefsSettings{
			Enabled:    true,
			DebounceMS: 500,
		},
	}
}
