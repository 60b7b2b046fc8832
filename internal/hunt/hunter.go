// Package hunt drives the bounded polling loop for sites that publish
// results at an unpredictable time: probe the store, fetch the page, look
// for the target draw, and either save and stop or sleep and try again
// until the attempt budget runs out.
package hunt

import (
	"context"
	"log"
	"time"

	"loteria-engine/internal/domain"
)

// State is one node of the hunt machine.
type State int

const (
	Checking State = iota
	Fetching
	Evaluating
	Retrying
	Saved
	Exhausted
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Fetching:
		return "fetching"
	case Evaluating:
		return "evaluating"
	case Retrying:
		return "retrying"
	case Saved:
		return "saved"
	default:
		return "exhausted"
	}
}

// Outcome is how a hunt ended. Both outcomes are normal terminations: a
// missing draw is a transient condition the external scheduler retries
// later, not an error.
type Outcome int

const (
	OutcomeSaved Outcome = iota
	OutcomeExhausted
)

// Store is the slice of the result store a hunt needs.
type Store interface {
	ExistsForDraw(ctx context.Context, country domain.Country, drawDate, rawTag string) (bool, error)
	Insert(ctx context.Context, rec domain.DrawRecord) error
}

// Source fetches one snapshot of a result page and evaluates it against a
// target date. Evaluate returns ok=false when the draw is not published
// yet; that is the expected early-evening answer.
type Source interface {
	Name() string
	// Country and RawTag parameterize the store existence probe.
	Country() domain.Country
	RawTag() string
	Fetch(ctx context.Context) (string, error)
	Evaluate(html string, target time.Time) (domain.DrawRecord, bool, error)
}

// Hunter runs the machine. Sleep and Now are injectable so the exhaustion
// path is testable without real delays.
type Hunter struct {
	Store       Store
	Source      Source
	MaxAttempts int
	RetryDelay  time.Duration
	Sleep       func(time.Duration)
	Now         func() time.Time
}

func (h *Hunter) sleep(d time.Duration) {
	if h.Sleep != nil {
		h.Sleep(d)
		return
	}
	time.Sleep(d)
}

func (h *Hunter) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Run hunts for the target date's draw. It only returns an error for
// broken preconditions; everything that can go wrong during an attempt is
// logged and folded into "not found yet".
func (h *Hunter) Run(ctx context.Context, target time.Time) (Outcome, error) {
	name := h.Source.Name()
	dateStr := target.Format("2006-01-02")

	state := Checking
	attempt := 1
	var html string

	for {
		switch state {
		case Checking:
			log.Printf("[hunt:%s] attempt %d/%d for %s", name, attempt, h.MaxAttempts, dateStr)
			exists, err := h.Store.ExistsForDraw(ctx, h.Source.Country(), dateStr, h.Source.RawTag())
			if err != nil {
				// Store read failure is non-fatal; the fetch may still pay off.
				log.Printf("[hunt:%s] store probe failed: %v", name, err)
			}
			if exists {
				log.Printf("[hunt:%s] results for %s already stored, stopping", name, dateStr)
				state = Saved
				continue
			}
			state = Fetching

		case Fetching:
			var err error
			html, err = h.Source.Fetch(ctx)
			if err != nil {
				log.Printf("[hunt:%s] fetch failed: %v", name, err)
				state = Retrying
				continue
			}
			state = Evaluating

		case Evaluating:
			rec, ok, err := h.Source.Evaluate(html, target)
			if err != nil {
				log.Printf("[hunt:%s] evaluate failed: %v", name, err)
				state = Retrying
				continue
			}
			if !ok {
				log.Printf("[hunt:%s] results for %s not published yet", name, dateStr)
				state = Retrying
				continue
			}
			rec.ScrapedAt = h.now()
			if err := h.Store.Insert(ctx, rec); err != nil {
				log.Printf("[hunt:%s] store write failed: %v", name, err)
				state = Retrying
				continue
			}
			log.Printf("[hunt:%s] FOUND %v, saved", name, rec.Numbers)
			state = Saved

		case Retrying:
			if attempt >= h.MaxAttempts {
				state = Exhausted
				continue
			}
			log.Printf("[hunt:%s] sleeping %s before next attempt", name, h.RetryDelay)
			h.sleep(h.RetryDelay)
			attempt++
			state = Checking

		case Saved:
			return OutcomeSaved, nil

		case Exhausted:
			log.Printf("[hunt:%s] %s after %d attempt(s), ending hunt for this run", name, state, attempt)
			return OutcomeExhausted, nil
		}
	}
}
