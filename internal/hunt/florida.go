package hunt

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"loteria-engine/internal/domain"
	"loteria-engine/internal/parse"
)

// FloridaSource hunts the Conectate americanas board for the Florida Noche
// draw. Publication time drifts into the night, hence the full retry budget.
type FloridaSource struct {
	URL     string
	Browser Fetcher
	Settle  time.Duration
}

func (s *FloridaSource) Name() string            { return "florida" }
func (s *FloridaSource) Country() domain.Country { return domain.USA }

// RawTag narrows the store probe: several USA draws share a date, only the
// Noche one belongs to this hunt.
func (s *FloridaSource) RawTag() string { return "Florida Noche" }

func (s *FloridaSource) Fetch(ctx context.Context) (string, error) {
	return s.Browser.SnapshotHTML(ctx, s.URL, s.Settle)
}

func (s *FloridaSource) Evaluate(html string, target time.Time) (domain.DrawRecord, bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return domain.DrawRecord{}, false, err
	}

	dayMonth := target.Format("02-01")
	dateStr := target.Format("2006-01-02")

	var rec domain.DrawRecord
	found := false

	doc.Find(".game-block").EachWithBreak(func(_ int, block *goquery.Selection) bool {
		title := parse.CleanText(block.Find(".game-title span").First().Text())
		if !strings.Contains(title, "Florida") || !strings.Contains(title, "Noche") {
			return true
		}
		if parse.CleanText(block.Find(".session-date").First().Text()) != dayMonth {
			return true
		}

		var numbers []string
		block.Find(".score, .session-ball").Each(func(_ int, el *goquery.Selection) {
			if v := parse.CleanText(el.Text()); v != "" {
				numbers = append(numbers, v)
			}
		})
		if len(numbers) < 3 {
			return true
		}

		rec = domain.DrawRecord{
			Country:    domain.USA,
			DrawDate:   dateStr,
			RawTime:    "9:50 PM", // official Florida Noche draw time
			Numbers:    numbers[:3],
			ExternalID: "usa-fl-noche-" + dateStr,
			RawText:    "Florida Noche - Conectate Scrape - " + dateStr,
		}
		found = true
		return false
	})

	return rec, found, nil
}
