package domain

import "time"

// Country identifies the lottery a draw belongs to. Values match the strings
// stored in the country column, so renaming one is a data migration.
type Country string

const (
	CountryUnknown Country = "unknown"
	CostaRica      Country = "Costa Rica"
	DominicanRep   Country = "Dominican Republic"
	Nicaragua      Country = "Nicaragua"
	Honduras       Country = "Honduras"
	USA            Country = "USA"
	Panama         Country = "Panama"
)

// JunkDate marks a record persisted only to suppress reprocessing of a
// source item that contained no extractable draw.
const JunkDate = "1970-01-01"

// ExpectedNumbers returns how many prize numbers a full draw carries for the
// given game. Unknown games have no quota.
func ExpectedNumbers(c Country) int {
	if c == CountryUnknown || c == "" {
		return 0
	}
	return 3
}

// RawCapture is one discovered source item: a social post image or a DOM
// snapshot. Immutable once produced.
type RawCapture struct {
	SourceText string
	ImageRef   string
	ExternalID string
}

// DrawRecord is the canonical extraction result for one draw.
type DrawRecord struct {
	Country    Country
	DrawDate   string // YYYY-MM-DD
	RawTime    string // best-effort, "" when the source had none
	Numbers    []string
	ExternalID string
	RawText    string
	ScrapedAt  time.Time
}

// Valid reports whether the record is complete enough to store as a draw.
func (r DrawRecord) Valid() bool {
	return r.Country != CountryUnknown && r.Country != "" &&
		r.DrawDate != "" && len(r.Numbers) > 0
}

// Junk reports whether the record is a non-lottery marker.
func (r DrawRecord) Junk() bool {
	return (r.Country == CountryUnknown || r.Country == "") && len(r.Numbers) == 0
}

// JunkRecord builds the marker stored for a source item that yielded no
// usable draw, so the next run skips it instead of re-running OCR.
func JunkRecord(externalID, rawText string, scrapedAt time.Time) DrawRecord {
	return DrawRecord{
		Country:    CountryUnknown,
		DrawDate:   JunkDate,
		Numbers:    nil,
		ExternalID: externalID,
		RawText:    rawText,
		ScrapedAt:  scrapedAt,
	}
}
