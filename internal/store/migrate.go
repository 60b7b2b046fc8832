package store

// Migrate applies the lottery_results schema. Column names and shapes match
// the downstream consumers of this store: data is a JSON struct
// {time, numbers}, draw_date is ISO 8601.
func (d *DB) Migrate() error {
	tx, err := d.Pool.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS lottery_results (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  external_id TEXT NOT NULL,
  country TEXT NOT NULL,
  draw_date TEXT NOT NULL,
  data TEXT NOT NULL DEFAULT '{}',
  raw_ocr TEXT NOT NULL DEFAULT '',
  scraped_at TEXT NOT NULL,
  created_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_results_external_id
ON lottery_results(external_id);
`); err != nil {
		return err
	}

	// Hunt mode probes by (country, draw_date) before opening a browser.
	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_results_country_date
ON lottery_results(country, draw_date);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}
