package scrape

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"loteria-engine/internal/domain"
	"loteria-engine/internal/ocr"
	"loteria-engine/internal/parse"
	"loteria-engine/internal/store"
)

// Recognizer is the slice of the OCR gateway the processor needs.
type Recognizer interface {
	Recognize(ctx context.Context, imageURL string, engine ocr.Engine) (string, error)
}

// ResultStore is the dedup gate plus the two write paths behind it.
type ResultStore interface {
	Decide(ctx context.Context, externalID string) (store.Decision, error)
	Insert(ctx context.Context, rec domain.DrawRecord) error
	Update(ctx context.Context, rec domain.DrawRecord) error
}

// Processor turns raw captures into stored draw records. Options selects
// the per-game extraction tuning; Now is injectable for the date tests.
type Processor struct {
	OCR     Recognizer
	Store   ResultStore
	Options func(domain.Country) parse.GenericOptions
	Now     func() time.Time
}

func (p *Processor) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *Processor) options(c domain.Country) parse.GenericOptions {
	if p.Options != nil {
		return p.Options(c)
	}
	return parse.GenericOptions{}
}

// ProcessCapture runs one item through the gate, OCR, extraction and
// persistence. OCR transport failures are returned without a store write,
// so a flaky item stays eligible for the next pass instead of being junked.
func (p *Processor) ProcessCapture(ctx context.Context, item domain.RawCapture) error {
	decision, err := p.Store.Decide(ctx, item.ExternalID)
	if err != nil {
		return err
	}
	if decision == store.DecisionSkip {
		log.Printf("[process] %s: already handled, skipping", item.ExternalID)
		return nil
	}

	rec, err := p.buildBest(ctx, item)
	if err != nil {
		return err
	}

	switch decision {
	case store.DecisionNew:
		err = p.Store.Insert(ctx, rec)
	case store.DecisionReprocess:
		err = p.Store.Update(ctx, rec)
	}
	if err != nil {
		return err
	}

	if rec.Junk() {
		log.Printf("[process] %s: no lottery content, junk marker stored", item.ExternalID)
	} else {
		log.Printf("[process] %s: %s %s %v (%s)", item.ExternalID, rec.Country, rec.DrawDate, rec.Numbers, decision)
	}
	return nil
}

// buildBest extracts from the noisy high-recall engine first. When a
// recognized game comes up short of its prize count, the alternate engine
// gets one shot, and whichever pass produced strictly more numbers wins.
// Items without an image skip OCR and parse their caption text directly.
func (p *Processor) buildBest(ctx context.Context, item domain.RawCapture) (domain.DrawRecord, error) {
	now := p.now()

	if item.ImageRef == "" {
		return finalize(p.candidate(item, item.SourceText, now)), nil
	}

	text, err := p.OCR.Recognize(ctx, item.ImageRef, ocr.Engine2)
	if err != nil {
		return domain.DrawRecord{}, fmt.Errorf("ocr %s: %w", item.ExternalID, err)
	}
	rec := p.candidate(item, joinText(item.SourceText, text), now)

	if expected := domain.ExpectedNumbers(rec.Country); expected > 0 && len(rec.Numbers) < expected {
		alt, err := p.OCR.Recognize(ctx, item.ImageRef, ocr.Engine1)
		if err != nil {
			log.Printf("[process] %s: fallback ocr failed: %v", item.ExternalID, err)
		} else if altRec := p.candidate(item, joinText(item.SourceText, alt), now); len(altRec.Numbers) > len(rec.Numbers) {
			rec = altRec
		}
	}
	return finalize(rec), nil
}

func (p *Processor) candidate(item domain.RawCapture, text string, now time.Time) domain.DrawRecord {
	n := parse.Normalize(text)
	country := parse.Classify(text)
	return domain.DrawRecord{
		Country:    country,
		DrawDate:   parse.ExtractDate(text, now),
		RawTime:    parse.ExtractTime(text),
		Numbers:    parse.ExtractNumbers(country, n, p.options(country)),
		ExternalID: item.ExternalID,
		RawText:    text,
		ScrapedAt:  now,
	}
}

// finalize demotes an unusable candidate to the junk marker so the gate
// never routes this item through OCR again.
func finalize(rec domain.DrawRecord) domain.DrawRecord {
	if rec.Valid() {
		return rec
	}
	return domain.JunkRecord(rec.ExternalID, rec.RawText, rec.ScrapedAt)
}

func joinText(caption, ocrText string) string {
	caption = strings.TrimSpace(caption)
	ocrText = strings.TrimSpace(ocrText)
	switch {
	case caption == "":
		return ocrText
	case ocrText == "":
		return caption
	}
	return caption + "\n" + ocrText
}
