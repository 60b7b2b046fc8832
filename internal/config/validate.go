package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// Err folds the error list into one error, nil when valid.
func (v Validation) Err() error {
	if v.OK() {
		return nil
	}
	return errors.New("config validation failed:\n- " + strings.Join(v.Errors, "\n- "))
}

// NormalizeAndValidate fills defaults, normalizes values, and reports
// everything a run would trip over. Warnings log; errors abort startup.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	if out.App.Timezone == "" {
		out.App.Timezone = "America/Panama"
	}
	if _, err := time.LoadLocation(out.App.Timezone); err != nil {
		res.addErr("app.timezone %q is not a valid IANA zone", out.App.Timezone)
	}

	if out.Hunt.RetryDelaySeconds <= 0 {
		out.Hunt.RetryDelaySeconds = 120
	} else if out.Hunt.RetryDelaySeconds < 30 {
		res.addWarn("hunt.retry_delay_seconds is very low (%d) and may hammer the source.", out.Hunt.RetryDelaySeconds)
	}
	if out.Hunt.SettleSeconds <= 0 {
		out.Hunt.SettleSeconds = 10
	}

	if out.Sources.Instagram.MaxPosts <= 0 {
		out.Sources.Instagram.MaxPosts = 3
	}
	if out.Sources.Panama.MaxAttempts <= 0 {
		// LNB publishes on a fixed schedule; one look per invocation.
		out.Sources.Panama.MaxAttempts = 1
	}
	if out.Sources.Florida.MaxAttempts <= 0 {
		out.Sources.Florida.MaxAttempts = 15
	}

	if out.Sources.Instagram.Enabled && strings.TrimSpace(out.Sources.Instagram.ProfileURL) == "" {
		res.addErr("sources.instagram.profile_url is required when instagram is enabled")
	}
	if out.Sources.Panama.Enabled && strings.TrimSpace(out.Sources.Panama.URL) == "" {
		res.addErr("sources.panama.url is required when panama is enabled")
	}
	if out.Sources.Florida.Enabled && strings.TrimSpace(out.Sources.Florida.URL) == "" {
		res.addErr("sources.florida.url is required when florida is enabled")
	}

	switch out.Extraction.NoiseFilter {
	case "":
		out.Extraction.NoiseFilter = "off"
	case "off", "contextual":
	default:
		res.addErr("extraction.noise_filter must be off or contextual, got %q", out.Extraction.NoiseFilter)
	}

	for i, g := range out.Extraction.Games {
		if strings.TrimSpace(g.Country) == "" {
			res.addErr("extraction.games[%d].country is required", i)
		}
		switch g.Keep {
		case "", "last", "first":
		default:
			res.addErr("extraction.games[%d].keep must be last or first, got %q", i, g.Keep)
		}
	}

	if out.Retention.TTLHours <= 0 {
		out.Retention.TTLHours = 24
	}

	return out, res
}
