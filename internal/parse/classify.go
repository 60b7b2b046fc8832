package parse

import (
	"strings"

	"loteria-engine/internal/domain"
)

// Specificity says whether a keyword names one game (high) or is shared
// branding that co-occurs with several games (low). A low match only sets a
// candidate; a high match ends the scan.
type Specificity int

const (
	LowSpecificity Specificity = iota
	HighSpecificity
)

type keywordRule struct {
	Keyword     string
	Country     domain.Country
	Specificity Specificity
}

// classifierTable is evaluated strictly in order: the source images mix a
// fixed profile banner (CHIRIQUI TICA) with the per-draw game name, and the
// banner must never beat an explicit game keyword appearing later in the
// text. Order changes classification results.
var classifierTable = []keywordRule{
	{"LA PRIMERA", domain.DominicanRep, HighSpecificity},
	{"LAPRIMERA", domain.DominicanRep, HighSpecificity},
	{"PRIMERA", domain.DominicanRep, HighSpecificity},
	{"LA NICA", domain.Nicaragua, HighSpecificity},
	{"LA TICA", domain.CostaRica, HighSpecificity},
	{"LA NEW YORK", domain.USA, HighSpecificity},
	{"NEW YORK", domain.USA, HighSpecificity},
	{"FLORIDA", domain.USA, HighSpecificity},
	{"LA FLORIDA", domain.USA, HighSpecificity},
	{"HONDUREÑA", domain.Honduras, HighSpecificity},
	// Shared branding: the profile banner names every post regardless of game.
	{"CHIRIQUI TICA", domain.CostaRica, LowSpecificity},
	// DIARIA usually means the Tica draw but also shows up in schedules.
	{"DIARIA", domain.CostaRica, LowSpecificity},
}

// Classify maps keyword evidence in the raw text to a game. A
// high-specificity match wins immediately; low-specificity matches only hold
// the answer until something better appears.
func Classify(text string) domain.Country {
	up := strings.ToUpper(text)
	country := domain.CountryUnknown
	for _, r := range classifierTable {
		if !strings.Contains(up, r.Keyword) {
			continue
		}
		country = r.Country
		if r.Specificity == HighSpecificity {
			break
		}
	}
	return country
}
