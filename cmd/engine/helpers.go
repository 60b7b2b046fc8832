package main

import (
	"time"

	"loteria-engine/internal/config"
	"loteria-engine/internal/domain"
	"loteria-engine/internal/parse"
)

// optionsFrom maps the config's extraction tuning onto per-game generic
// strategy options.
func optionsFrom(cfg config.Config) func(domain.Country) parse.GenericOptions {
	noise := parse.NoiseFilterOff
	if cfg.Extraction.NoiseFilter == string(parse.NoiseFilterContextual) {
		noise = parse.NoiseFilterContextual
	}
	return func(c domain.Country) parse.GenericOptions {
		keep := parse.KeepLast
		if cfg.KeepFor(string(c)) == string(parse.KeepFirst) {
			keep = parse.KeepFirst
		}
		return parse.GenericOptions{Keep: keep, NoiseFilter: noise}
	}
}

// referenceClock anchors the extraction pipeline's notion of "now". With a
// -date override the year-rollover policy must judge against the target
// date, not the wall clock.
func referenceClock(override string, target time.Time, loc *time.Location) func() time.Time {
	if override == "" {
		return func() time.Time { return time.Now().In(loc) }
	}
	return func() time.Time { return target }
}
