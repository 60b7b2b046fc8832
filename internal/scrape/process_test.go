package scrape

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"loteria-engine/internal/domain"
	"loteria-engine/internal/ocr"
	"loteria-engine/internal/store"
)

const ticaImage = `CHIRIQUI TICA NACIONAL
LA TICA
DIARIA
85
MONAZOS
12 34
18-1-2026
6:00 PM`

const floridaImage = `LA FLORIDA
1234 RESULTADOS
14 77 59
03-02-2026 9:50 PM`

type fakeOCR struct {
	byEngine map[ocr.Engine]string
	errs     map[ocr.Engine]error
	calls    []ocr.Engine
}

func (f *fakeOCR) Recognize(ctx context.Context, imageURL string, engine ocr.Engine) (string, error) {
	f.calls = append(f.calls, engine)
	if err := f.errs[engine]; err != nil {
		return "", err
	}
	return f.byEngine[engine], nil
}

type fakeResultStore struct {
	decision store.Decision
	inserted []domain.DrawRecord
	updated  []domain.DrawRecord
}

func (f *fakeResultStore) Decide(ctx context.Context, externalID string) (store.Decision, error) {
	return f.decision, nil
}

func (f *fakeResultStore) Insert(ctx context.Context, rec domain.DrawRecord) error {
	f.inserted = append(f.inserted, rec)
	return nil
}

func (f *fakeResultStore) Update(ctx context.Context, rec domain.DrawRecord) error {
	f.updated = append(f.updated, rec)
	return nil
}

func newProcessor(o *fakeOCR, st *fakeResultStore) *Processor {
	return &Processor{
		OCR:   o,
		Store: st,
		Now:   func() time.Time { return time.Date(2026, 2, 3, 20, 0, 0, 0, time.UTC) },
	}
}

func capture(id string) domain.RawCapture {
	return domain.RawCapture{ImageRef: "https://cdn.example/" + id + ".jpg", ExternalID: id}
}

func TestProcessCapture_AnchoredPostStored(t *testing.T) {
	o := &fakeOCR{byEngine: map[ocr.Engine]string{ocr.Engine2: ticaImage}}
	st := &fakeResultStore{decision: store.DecisionNew}

	if err := newProcessor(o, st).ProcessCapture(context.Background(), capture("p1")); err != nil {
		t.Fatal(err)
	}
	if len(st.inserted) != 1 {
		t.Fatalf("inserted %d records", len(st.inserted))
	}
	rec := st.inserted[0]
	if rec.Country != domain.CostaRica {
		t.Errorf("country = %s", rec.Country)
	}
	if !reflect.DeepEqual(rec.Numbers, []string{"85", "12", "34"}) {
		t.Errorf("numbers = %v", rec.Numbers)
	}
	if rec.DrawDate != "2026-01-18" || rec.RawTime != "6:00 PM" {
		t.Errorf("date/time = %s / %s", rec.DrawDate, rec.RawTime)
	}
	if len(o.calls) != 1 || o.calls[0] != ocr.Engine2 {
		t.Errorf("ocr calls = %v, want one pass on engine 2", o.calls)
	}
}

func TestProcessCapture_GenericPostStored(t *testing.T) {
	o := &fakeOCR{byEngine: map[ocr.Engine]string{ocr.Engine2: floridaImage}}
	st := &fakeResultStore{decision: store.DecisionNew}

	if err := newProcessor(o, st).ProcessCapture(context.Background(), capture("p2")); err != nil {
		t.Fatal(err)
	}
	rec := st.inserted[0]
	if rec.Country != domain.USA {
		t.Errorf("country = %s", rec.Country)
	}
	if !reflect.DeepEqual(rec.Numbers, []string{"14", "77", "59"}) {
		t.Errorf("numbers = %v", rec.Numbers)
	}
}

// The fallback engine runs when the first pass under-produces for a
// recognized game, and the stored record is never worse than either pass.
func TestProcessCapture_ReconcilerPrefersFullerPass(t *testing.T) {
	garbled := "LA TICA\nDIARIA\n85\n18-1-2026"
	o := &fakeOCR{byEngine: map[ocr.Engine]string{
		ocr.Engine2: garbled,
		ocr.Engine1: ticaImage,
	}}
	st := &fakeResultStore{decision: store.DecisionNew}

	if err := newProcessor(o, st).ProcessCapture(context.Background(), capture("p3")); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(o.calls, []ocr.Engine{ocr.Engine2, ocr.Engine1}) {
		t.Fatalf("ocr calls = %v", o.calls)
	}
	rec := st.inserted[0]
	if len(rec.Numbers) != 3 {
		t.Errorf("numbers = %v, want the fuller pass", rec.Numbers)
	}
}

func TestProcessCapture_ReconcilerKeepsFirstOnTie(t *testing.T) {
	garbled := "LA TICA\nDIARIA\n85\n18-1-2026"
	o := &fakeOCR{byEngine: map[ocr.Engine]string{
		ocr.Engine2: garbled,
		ocr.Engine1: garbled,
	}}
	st := &fakeResultStore{decision: store.DecisionNew}

	if err := newProcessor(o, st).ProcessCapture(context.Background(), capture("p4")); err != nil {
		t.Fatal(err)
	}
	rec := st.inserted[0]
	if !reflect.DeepEqual(rec.Numbers, []string{"85"}) {
		t.Errorf("numbers = %v, want the first pass kept", rec.Numbers)
	}
}

func TestProcessCapture_FallbackOCRErrorKeepsFirstPass(t *testing.T) {
	garbled := "LA TICA\nDIARIA\n85\n18-1-2026"
	o := &fakeOCR{
		byEngine: map[ocr.Engine]string{ocr.Engine2: garbled},
		errs:     map[ocr.Engine]error{ocr.Engine1: errors.New("quota")},
	}
	st := &fakeResultStore{decision: store.DecisionNew}

	if err := newProcessor(o, st).ProcessCapture(context.Background(), capture("p5")); err != nil {
		t.Fatal(err)
	}
	if len(st.inserted) != 1 || !reflect.DeepEqual(st.inserted[0].Numbers, []string{"85"}) {
		t.Errorf("inserted = %+v", st.inserted)
	}
}

func TestProcessCapture_NonLotteryBecomesJunkMarker(t *testing.T) {
	o := &fakeOCR{byEngine: map[ocr.Engine]string{ocr.Engine2: "FELIZ CUMPLEAÑOS MARIA"}}
	st := &fakeResultStore{decision: store.DecisionNew}

	if err := newProcessor(o, st).ProcessCapture(context.Background(), capture("p6")); err != nil {
		t.Fatal(err)
	}
	rec := st.inserted[0]
	if !rec.Junk() {
		t.Fatalf("stored %+v, want junk marker", rec)
	}
	if rec.DrawDate != domain.JunkDate {
		t.Errorf("junk date = %s", rec.DrawDate)
	}
	if len(o.calls) != 1 {
		t.Errorf("ocr calls = %v, unknown game must not trigger the fallback engine", o.calls)
	}
}

func TestProcessCapture_SkipDecisionDoesNothing(t *testing.T) {
	o := &fakeOCR{}
	st := &fakeResultStore{decision: store.DecisionSkip}

	if err := newProcessor(o, st).ProcessCapture(context.Background(), capture("p7")); err != nil {
		t.Fatal(err)
	}
	if len(o.calls) != 0 || len(st.inserted) != 0 || len(st.updated) != 0 {
		t.Error("skip decision still touched OCR or the store")
	}
}

func TestProcessCapture_ReprocessUpdatesInPlace(t *testing.T) {
	o := &fakeOCR{byEngine: map[ocr.Engine]string{ocr.Engine2: ticaImage}}
	st := &fakeResultStore{decision: store.DecisionReprocess}

	if err := newProcessor(o, st).ProcessCapture(context.Background(), capture("p8")); err != nil {
		t.Fatal(err)
	}
	if len(st.inserted) != 0 || len(st.updated) != 1 {
		t.Fatalf("inserted=%d updated=%d", len(st.inserted), len(st.updated))
	}
}

func TestProcessCapture_PrimaryOCRErrorNoWrite(t *testing.T) {
	o := &fakeOCR{errs: map[ocr.Engine]error{ocr.Engine2: errors.New("503")}}
	st := &fakeResultStore{decision: store.DecisionNew}

	err := newProcessor(o, st).ProcessCapture(context.Background(), capture("p9"))
	if err == nil {
		t.Fatal("want error from primary OCR failure")
	}
	if len(st.inserted) != 0 || len(st.updated) != 0 {
		t.Error("wrote a record despite OCR failure")
	}
}

func TestProcessCapture_CaptionOnlyItemSkipsOCR(t *testing.T) {
	o := &fakeOCR{}
	st := &fakeResultStore{decision: store.DecisionNew}
	item := domain.RawCapture{SourceText: floridaImage, ExternalID: "p10"}

	if err := newProcessor(o, st).ProcessCapture(context.Background(), item); err != nil {
		t.Fatal(err)
	}
	if len(o.calls) != 0 {
		t.Errorf("ocr calls = %v, caption-only item must not hit OCR", o.calls)
	}
	if !reflect.DeepEqual(st.inserted[0].Numbers, []string{"14", "77", "59"}) {
		t.Errorf("numbers = %v", st.inserted[0].Numbers)
	}
}
