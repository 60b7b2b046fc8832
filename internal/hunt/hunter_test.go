package hunt

import (
	"context"
	"errors"
	"testing"
	"time"

	"loteria-engine/internal/domain"
)

type fakeStore struct {
	exists    bool
	existsErr error
	insertErr error
	inserted  []domain.DrawRecord
	probes    int
}

func (f *fakeStore) ExistsForDraw(ctx context.Context, c domain.Country, d, tag string) (bool, error) {
	f.probes++
	return f.exists, f.existsErr
}

func (f *fakeStore) Insert(ctx context.Context, rec domain.DrawRecord) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, rec)
	return nil
}

type fakeSource struct {
	fetches  int
	fetchErr error
	foundOn  int // attempt number on which Evaluate reports the draw; 0 = never
	evalErr  error
}

func (f *fakeSource) Name() string            { return "fake" }
func (f *fakeSource) Country() domain.Country { return domain.USA }
func (f *fakeSource) RawTag() string          { return "Fake" }

func (f *fakeSource) Fetch(ctx context.Context) (string, error) {
	f.fetches++
	return "<html></html>", f.fetchErr
}

func (f *fakeSource) Evaluate(html string, target time.Time) (domain.DrawRecord, bool, error) {
	if f.evalErr != nil {
		return domain.DrawRecord{}, false, f.evalErr
	}
	if f.foundOn != 0 && f.fetches >= f.foundOn {
		return domain.DrawRecord{
			Country:    domain.USA,
			DrawDate:   target.Format("2006-01-02"),
			Numbers:    []string{"14", "77", "59"},
			ExternalID: "fake-" + target.Format("2006-01-02"),
		}, true, nil
	}
	return domain.DrawRecord{}, false, nil
}

func newHunter(st *fakeStore, src *fakeSource, maxAttempts int, sleeps *[]time.Duration) *Hunter {
	return &Hunter{
		Store:       st,
		Source:      src,
		MaxAttempts: maxAttempts,
		RetryDelay:  2 * time.Minute,
		Sleep:       func(d time.Duration) { *sleeps = append(*sleeps, d) },
		Now:         func() time.Time { return time.Date(2026, 2, 3, 22, 0, 0, 0, time.UTC) },
	}
}

var target = time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)

// A source that never publishes exhausts the budget: exactly maxAttempts
// fetches, a sleep between each pair, and a clean (non-error) exit.
func TestRun_ExhaustsBudget(t *testing.T) {
	st := &fakeStore{}
	src := &fakeSource{}
	var sleeps []time.Duration

	out, err := newHunter(st, src, 15, &sleeps).Run(context.Background(), target)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != OutcomeExhausted {
		t.Errorf("outcome = %v, want exhausted", out)
	}
	if src.fetches != 15 {
		t.Errorf("fetches = %d, want 15", src.fetches)
	}
	if len(sleeps) != 14 {
		t.Errorf("sleeps = %d, want 14 (between attempts only)", len(sleeps))
	}
	for _, d := range sleeps {
		if d != 2*time.Minute {
			t.Errorf("sleep = %s, want 2m", d)
		}
	}
}

func TestRun_ExistingRecordShortCircuits(t *testing.T) {
	st := &fakeStore{exists: true}
	src := &fakeSource{}
	var sleeps []time.Duration

	out, err := newHunter(st, src, 15, &sleeps).Run(context.Background(), target)
	if err != nil || out != OutcomeSaved {
		t.Fatalf("Run = (%v, %v), want saved", out, err)
	}
	if src.fetches != 0 {
		t.Errorf("fetched %d times despite stored result", src.fetches)
	}
	if len(sleeps) != 0 {
		t.Errorf("slept %d times despite stored result", len(sleeps))
	}
}

func TestRun_SavesWhenPublished(t *testing.T) {
	st := &fakeStore{}
	src := &fakeSource{foundOn: 3}
	var sleeps []time.Duration

	out, err := newHunter(st, src, 15, &sleeps).Run(context.Background(), target)
	if err != nil || out != OutcomeSaved {
		t.Fatalf("Run = (%v, %v), want saved", out, err)
	}
	if src.fetches != 3 {
		t.Errorf("fetches = %d, want 3", src.fetches)
	}
	if len(sleeps) != 2 {
		t.Errorf("sleeps = %d, want 2", len(sleeps))
	}
	if len(st.inserted) != 1 {
		t.Fatalf("inserted = %d records", len(st.inserted))
	}
	if st.inserted[0].ScrapedAt.IsZero() {
		t.Error("ScrapedAt not stamped")
	}
}

// Fetch errors are "not found yet", never loop aborts.
func TestRun_FetchErrorsCountAsAttempts(t *testing.T) {
	st := &fakeStore{}
	src := &fakeSource{fetchErr: errors.New("nav timeout")}
	var sleeps []time.Duration

	out, err := newHunter(st, src, 3, &sleeps).Run(context.Background(), target)
	if err != nil || out != OutcomeExhausted {
		t.Fatalf("Run = (%v, %v), want exhausted without error", out, err)
	}
	if src.fetches != 3 {
		t.Errorf("fetches = %d, want 3", src.fetches)
	}
}

// A store probe error must not stop the hunt; the attempt proceeds to fetch.
func TestRun_StoreProbeErrorStillFetches(t *testing.T) {
	st := &fakeStore{existsErr: errors.New("db locked")}
	src := &fakeSource{foundOn: 1}
	var sleeps []time.Duration

	out, err := newHunter(st, src, 2, &sleeps).Run(context.Background(), target)
	if err != nil || out != OutcomeSaved {
		t.Fatalf("Run = (%v, %v), want saved", out, err)
	}
}

// A store write conflict drives a retry, not a crash.
func TestRun_InsertErrorRetries(t *testing.T) {
	st := &fakeStore{insertErr: errors.New("unique constraint")}
	src := &fakeSource{foundOn: 1}
	var sleeps []time.Duration

	out, err := newHunter(st, src, 2, &sleeps).Run(context.Background(), target)
	if err != nil || out != OutcomeExhausted {
		t.Fatalf("Run = (%v, %v), want exhausted", out, err)
	}
	if len(sleeps) != 1 {
		t.Errorf("sleeps = %d, want 1", len(sleeps))
	}
}

func TestRun_SingleAttemptBudget(t *testing.T) {
	st := &fakeStore{}
	src := &fakeSource{}
	var sleeps []time.Duration

	out, err := newHunter(st, src, 1, &sleeps).Run(context.Background(), target)
	if err != nil || out != OutcomeExhausted {
		t.Fatalf("Run = (%v, %v), want exhausted", out, err)
	}
	if src.fetches != 1 || len(sleeps) != 0 {
		t.Errorf("fetches = %d sleeps = %d, want 1 and 0", src.fetches, len(sleeps))
	}
}
