package parse

import (
	"regexp"
	"strings"
)

// Noise patterns removed from OCR text before any numeric scan runs. Each
// entry exists because its digits were observed leaking into extracted
// results; tune them here, never at call sites.
var (
	// Draw dates (18-1-2026, 03/02/2026). Their day/month/year fragments are
	// the most common source of false prize numbers.
	reNoiseDate = regexp.MustCompile(`\d{1,2}\s*[-/]\s*\d{1,2}\s*[-/]\s*\d{2,4}`)

	// Phone-shaped runs (2222-3333) printed in the image footer.
	reNoisePhone = regexp.MustCompile(`\d{4}\s*[-\s]\s*\d{4}`)

	// Draw-time tokens (6:00 PM, 11 AM). The hour alone reads as a prize.
	reNoiseTime = regexp.MustCompile(`(?i)\d{1,2}(:\d{2})?\s*(AM|PM)`)
)

// Normalized is the cleaned view of one OCR text.
type Normalized struct {
	// Lines are the trimmed, uppercased, non-empty source lines in order.
	Lines []string
	// Cleaned is the full text with noise patterns blanked out. Cleaning is
	// best-effort: downstream strategies must tolerate residual noise.
	Cleaned string
}

// Normalize splits raw OCR text into lines and scrubs known noise from the
// flat text. Empty input yields an empty Normalized.
func Normalize(text string) Normalized {
	var n Normalized
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(strings.ToUpper(l))
		if l != "" {
			n.Lines = append(n.Lines, l)
		}
	}

	cleaned := text
	cleaned = reNoiseDate.ReplaceAllString(cleaned, " ")
	cleaned = reNoisePhone.ReplaceAllString(cleaned, " ")
	cleaned = reNoiseTime.ReplaceAllString(cleaned, " ")
	n.Cleaned = cleaned
	return n
}

// CleanText collapses runs of whitespace and NBSPs into single spaces.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
