package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"loteria-engine/internal/domain"
)

// DrawData is the JSON payload of the data column.
type DrawData struct {
	Time    string   `json:"time"`
	Numbers []string `json:"numbers"`
}

// StoredResult is one row of lottery_results.
type StoredResult struct {
	ExternalID string
	Country    domain.Country
	DrawDate   string
	Data       DrawData
	RawOCR     string
	ScrapedAt  time.Time
}

// Decision is the dedup/upsert gate's verdict for one external id.
type Decision int

const (
	// DecisionNew: nothing stored yet, insert.
	DecisionNew Decision = iota
	// DecisionReprocess: stored but incomplete, extract again and update.
	DecisionReprocess
	// DecisionSkip: complete record or junk marker, leave alone.
	DecisionSkip
)

func (d Decision) String() string {
	switch d {
	case DecisionNew:
		return "new"
	case DecisionReprocess:
		return "reprocess"
	default:
		return "skip"
	}
}

// GetByExternalID returns the stored row, or nil when absent.
func (d *DB) GetByExternalID(ctx context.Context, externalID string) (*StoredResult, error) {
	row := d.Pool.QueryRowContext(ctx, `
SELECT external_id, country, draw_date, data, raw_ocr, scraped_at
FROM lottery_results
WHERE external_id = ?
LIMIT 1;`, externalID)

	var r StoredResult
	var dataJSON, scrapedAt string
	err := row.Scan(&r.ExternalID, &r.Country, &r.DrawDate, &dataJSON, &r.RawOCR, &scrapedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get result: %w", err)
	}
	_ = json.Unmarshal([]byte(dataJSON), &r.Data)
	r.ScrapedAt, _ = time.Parse(time.RFC3339, scrapedAt)
	return &r, nil
}

// ExistsForDraw reports whether a draw is already stored for the country and
// date. rawTag, when non-empty, narrows the probe to rows whose raw_ocr
// mentions it (the hunt sources tag their snapshots, e.g. "Florida Noche").
func (d *DB) ExistsForDraw(ctx context.Context, country domain.Country, drawDate, rawTag string) (bool, error) {
	q := `SELECT 1 FROM lottery_results WHERE country = ? AND draw_date = ?`
	args := []any{string(country), drawDate}
	if rawTag != "" {
		q += ` AND raw_ocr LIKE ?`
		args = append(args, "%"+rawTag+"%")
	}
	q += ` LIMIT 1;`

	var one int
	err := d.Pool.QueryRowContext(ctx, q, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: exists probe: %w", err)
	}
	return true, nil
}

// Insert writes a new record. A unique-index violation on external_id
// surfaces as an error; callers route through Decide first.
func (d *DB) Insert(ctx context.Context, rec domain.DrawRecord) error {
	dataB, _ := json.Marshal(DrawData{Time: rec.RawTime, Numbers: rec.Numbers})
	_, err := d.Pool.ExecContext(ctx, `
INSERT INTO lottery_results(external_id, country, draw_date, data, raw_ocr, scraped_at)
VALUES(?,?,?,?,?,?);`,
		rec.ExternalID,
		string(rec.Country),
		rec.DrawDate,
		string(dataB),
		rec.RawText,
		rec.ScrapedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("store: insert result: %w", err)
	}
	return nil
}

// Update replaces an existing row's extraction output in place, keyed by
// external_id. It never creates a second row for the same id.
func (d *DB) Update(ctx context.Context, rec domain.DrawRecord) error {
	dataB, _ := json.Marshal(DrawData{Time: rec.RawTime, Numbers: rec.Numbers})
	res, err := d.Pool.ExecContext(ctx, `
UPDATE lottery_results
SET country = ?, draw_date = ?, data = ?, raw_ocr = ?, scraped_at = ?
WHERE external_id = ?;`,
		string(rec.Country),
		rec.DrawDate,
		string(dataB),
		rec.RawText,
		rec.ScrapedAt.UTC().Format(time.RFC3339),
		rec.ExternalID,
	)
	if err != nil {
		return fmt.Errorf("store: update result: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: update result: no row for %s", rec.ExternalID)
	}
	return nil
}

// Decide is the dedup/upsert gate. The full prize count comes from the
// stored row's own game; stored junk markers and complete records are
// skipped, incomplete ones reprocessed.
func (d *DB) Decide(ctx context.Context, externalID string) (Decision, error) {
	r, err := d.GetByExternalID(ctx, externalID)
	if err != nil {
		return DecisionSkip, err
	}
	if r == nil {
		return DecisionNew, nil
	}
	if r.Country == domain.CountryUnknown && len(r.Data.Numbers) == 0 {
		// Junk marker: examined before, nothing extractable.
		return DecisionSkip, nil
	}
	if len(r.Data.Numbers) < domain.ExpectedNumbers(r.Country) {
		return DecisionReprocess, nil
	}
	return DecisionSkip, nil
}

// CleanupOldResults drops rows older than ttl, the retention sweep run
// before each ingestion pass.
func (d *DB) CleanupOldResults(ttl time.Duration) (int64, error) {
	res, err := d.Pool.Exec(`
DELETE FROM lottery_results
WHERE created_at < datetime('now', ?);
`, fmt.Sprintf("-%d seconds", int(ttl.Seconds())))
	if err != nil {
		return 0, fmt.Errorf("store: cleanup old results: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
