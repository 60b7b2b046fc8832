package app

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"loteria-engine/internal/config"
	"loteria-engine/internal/runlock"
	"loteria-engine/internal/store"
)

// DataDirEnv overrides the data directory (an external launcher can pass
// one); default is the working directory.
const DataDirEnv = "LOTERIA_DATA_DIR"

const defaultCfgPath = "config/config.yml"

// App is the shared bootstrap for every binary: data dir, config, run
// lock, store. Callers must defer Close.
type App struct {
	Cfg     config.Config
	DB      *store.DB
	Loc     *time.Location
	DataDir string

	release func()
}

// Bootstrap prepares the data dir, seeds and loads the config, takes the
// run lock and opens the store. ok=false (with no error) means another
// instance holds the lock and this one should exit quietly.
func Bootstrap() (a *App, ok bool, err error) {
	dataDir := os.Getenv(DataDirEnv)
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, false, err
	}

	cfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		return nil, false, err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, false, fmt.Errorf("load config %s: %w", cfgPath, err)
	}
	cfg, v := config.NormalizeAndValidate(cfg)
	for _, w := range v.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if err := v.Err(); err != nil {
		return nil, false, err
	}
	if cfg.App.DataDir == "" {
		cfg.App.DataDir = dataDir
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return nil, false, err
	}

	release, got, err := runlock.Acquire(dataDir)
	if err != nil {
		return nil, false, err
	}
	if !got {
		return nil, false, nil
	}

	db, err := store.Open(filepath.Join(dataDir, "results.db"))
	if err != nil {
		release()
		return nil, false, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		release()
		return nil, false, err
	}

	if ttl := time.Duration(cfg.Retention.TTLHours) * time.Hour; ttl > 0 {
		if n, err := db.CleanupOldResults(ttl); err != nil {
			log.Printf("[store] retention sweep failed: %v", err)
		} else if n > 0 {
			log.Printf("[store] retention sweep dropped %d row(s)", n)
		}
	}

	return &App{
		Cfg:     cfg,
		DB:      db,
		Loc:     loc,
		DataDir: dataDir,
		release: release,
	}, true, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
	if a.release != nil {
		a.release()
	}
}

// TargetDate resolves the -date override, or today in the configured zone.
func (a *App) TargetDate(override string) (time.Time, error) {
	if override == "" {
		now := time.Now().In(a.Loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, a.Loc), nil
	}
	t, err := time.ParseInLocation("2006-01-02", override, a.Loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad -date %q: want YYYY-MM-DD", override)
	}
	return t, nil
}
