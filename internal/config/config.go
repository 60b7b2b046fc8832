package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// GamePolicy tunes the generic number strategy for one game.
type GamePolicy struct {
	Country string `yaml:"country"`
	// Keep selects which end of the token stream survives: "last" (default)
	// or "first".
	Keep string `yaml:"keep"`
}

type Config struct {
	App struct {
		DataDir  string `yaml:"data_dir"`
		Timezone string `yaml:"timezone"` // draw dates resolve in this zone
	} `yaml:"app"`

	OCR struct {
		Endpoint string `yaml:"endpoint"`
		// KeyringAccount names the OS-keyring entry holding the API key;
		// the LOTERIA_OCR_KEY env var wins when set.
		KeyringAccount string `yaml:"keyring_account"`
	} `yaml:"ocr"`

	Sources struct {
		Instagram struct {
			Enabled    bool   `yaml:"enabled"`
			ProfileURL string `yaml:"profile_url"`
			MaxPosts   int    `yaml:"max_posts"`
		} `yaml:"instagram"`

		Panama struct {
			Enabled     bool   `yaml:"enabled"`
			URL         string `yaml:"url"`
			MaxAttempts int    `yaml:"max_attempts"`
		} `yaml:"panama"`

		Florida struct {
			Enabled     bool   `yaml:"enabled"`
			URL         string `yaml:"url"`
			MaxAttempts int    `yaml:"max_attempts"`
		} `yaml:"florida"`
	} `yaml:"sources"`

	Hunt struct {
		RetryDelaySeconds int `yaml:"retry_delay_seconds"`
		// SettleSeconds is how long to wait after navigation before the
		// snapshot; both result sites render their boxes late.
		SettleSeconds int `yaml:"settle_seconds"`
	} `yaml:"hunt"`

	Extraction struct {
		// NoiseFilter: "off" or "contextual" (20/25/26 year-fragment filter).
		NoiseFilter string       `yaml:"noise_filter"`
		Games       []GamePolicy `yaml:"games"`
	} `yaml:"extraction"`

	Retention struct {
		TTLHours int `yaml:"ttl_hours"`
	} `yaml:"retention"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// KeepFor returns the configured keep policy for a country, "" when unset.
func (c Config) KeepFor(country string) string {
	for _, g := range c.Extraction.Games {
		if g.Country == country {
			return g.Keep
		}
	}
	return ""
}
