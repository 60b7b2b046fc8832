package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeAndValidate_Defaults(t *testing.T) {
	out, res := NormalizeAndValidate(Config{})
	if !res.OK() {
		t.Fatalf("empty config should validate, got %v", res.Errors)
	}
	if out.App.Timezone != "America/Panama" {
		t.Errorf("timezone default = %q", out.App.Timezone)
	}
	if out.Hunt.RetryDelaySeconds != 120 {
		t.Errorf("retry delay default = %d", out.Hunt.RetryDelaySeconds)
	}
	if out.Sources.Florida.MaxAttempts != 15 {
		t.Errorf("florida max attempts default = %d", out.Sources.Florida.MaxAttempts)
	}
	if out.Sources.Panama.MaxAttempts != 1 {
		t.Errorf("panama max attempts default = %d", out.Sources.Panama.MaxAttempts)
	}
	if out.Extraction.NoiseFilter != "off" {
		t.Errorf("noise filter default = %q", out.Extraction.NoiseFilter)
	}
	if out.Retention.TTLHours != 24 {
		t.Errorf("retention default = %d", out.Retention.TTLHours)
	}
}

func TestNormalizeAndValidate_Errors(t *testing.T) {
	var cfg Config
	cfg.App.Timezone = "Mars/Olympus"
	cfg.Sources.Instagram.Enabled = true // no profile_url
	cfg.Extraction.NoiseFilter = "always"
	cfg.Extraction.Games = []GamePolicy{{Country: "USA", Keep: "middle"}}

	_, res := NormalizeAndValidate(cfg)
	if res.OK() {
		t.Fatal("expected validation errors")
	}
	if len(res.Errors) != 4 {
		t.Errorf("got %d errors, want 4: %v", len(res.Errors), res.Errors)
	}
}

func TestLoadAndKeepFor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	body := []byte(`
app:
  timezone: America/Panama
extraction:
  noise_filter: contextual
  games:
    - country: USA
      keep: last
    - country: Honduras
      keep: first
`)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.KeepFor("Honduras") != "first" {
		t.Errorf("KeepFor(Honduras) = %q", cfg.KeepFor("Honduras"))
	}
	if cfg.KeepFor("USA") != "last" {
		t.Errorf("KeepFor(USA) = %q", cfg.KeepFor("USA"))
	}
	if cfg.KeepFor("Panama") != "" {
		t.Errorf("KeepFor(Panama) = %q, want unset", cfg.KeepFor("Panama"))
	}
}

func TestEnsureUserConfig_CopiesDefault(t *testing.T) {
	dir := t.TempDir()
	def := filepath.Join(dir, "default.yml")
	if err := os.WriteFile(def, []byte("app:\n  timezone: America/Panama\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	dataDir := filepath.Join(dir, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}

	p, err := EnsureUserConfig(dataDir, def)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if _, err := os.Stat(p); err != nil {
		t.Fatalf("user config missing: %v", err)
	}

	// Second call returns the existing copy untouched.
	p2, err := EnsureUserConfig(dataDir, "does-not-exist.yml")
	if err != nil || p2 != p {
		t.Errorf("second ensure: (%q, %v)", p2, err)
	}
}

func TestSaveAtomic_RoundTripAndBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	var cfg Config
	cfg.App.Timezone = "America/Panama"
	cfg.Extraction.Games = []GamePolicy{{Country: "Costa Rica", Keep: "last"}}

	if err := SaveAtomic(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load back: %v", err)
	}
	if loaded.KeepFor("Costa Rica") != "last" {
		t.Errorf("round trip lost game policy: %+v", loaded.Extraction.Games)
	}

	// A second save keeps the previous version as .bak.
	cfg.Extraction.NoiseFilter = "contextual"
	if err := SaveAtomic(path, cfg); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Errorf("backup missing: %v", err)
	}

	// An invalid config never reaches disk.
	cfg.Extraction.NoiseFilter = "always"
	if err := SaveAtomic(path, cfg); err == nil {
		t.Error("saved an invalid config")
	}
}
