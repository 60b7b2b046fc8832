package hunt

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"loteria-engine/internal/domain"
	"loteria-engine/internal/parse"
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// Fetcher turns a page URL into an HTML snapshot; implemented by the
// browser session.
type Fetcher interface {
	SnapshotHTML(ctx context.Context, pageURL string, settle time.Duration) (string, error)
}

// PanamaSource hunts the LNB board: one container per draw with a localized
// date label and premio cells. LNB publishes on a fixed schedule, so this
// source usually runs with a budget of one attempt.
type PanamaSource struct {
	URL     string
	Browser Fetcher
	Settle  time.Duration
}

func (s *PanamaSource) Name() string            { return "panama" }
func (s *PanamaSource) Country() domain.Country { return domain.Panama }
func (s *PanamaSource) RawTag() string          { return "" }

func (s *PanamaSource) Fetch(ctx context.Context) (string, error) {
	return s.Browser.SnapshotHTML(ctx, s.URL, s.Settle)
}

func (s *PanamaSource) Evaluate(html string, target time.Time) (domain.DrawRecord, bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return domain.DrawRecord{}, false, err
	}

	day := strconv.Itoa(target.Day())
	month := spanishMonths[target.Month()-1]
	year := strconv.Itoa(target.Year())
	dateStr := target.Format("2006-01-02")

	var rec domain.DrawRecord
	found := false

	doc.Find("div.containerTablero").EachWithBreak(func(_ int, c *goquery.Selection) bool {
		label := strings.ToLower(parse.CleanText(c.Find(".date").First().Text()))
		if label == "" {
			return true
		}
		if !strings.Contains(label, day) || !strings.Contains(label, month) || !strings.Contains(label, year) {
			return true
		}

		var prizes []string
		c.Find(".premio-number").Each(func(_ int, el *goquery.Selection) {
			if v := parse.CleanText(el.Text()); v != "" {
				prizes = append(prizes, v)
			}
		})
		if len(prizes) < 3 {
			return true
		}

		rec = domain.DrawRecord{
			Country:    domain.Panama,
			DrawDate:   dateStr,
			RawTime:    "3:30 PM", // official LNB draw time
			Numbers:    prizes[:3],
			ExternalID: "lnb-pa-" + dateStr,
			RawText:    "LNB Panama Website Scrape - " + dateStr,
		}
		found = true
		return false
	})

	return rec, found, nil
}
