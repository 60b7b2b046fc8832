package parse

import (
	"regexp"
	"strings"
)

// Costa Rica images print two distinct prize fields: the Tica prize under a
// DIARIA (or TICA) header and a pair of Monazo prizes under MONAZOS. Each
// anchor gets its own bounded scan window.
const (
	primaryLookback = 3  // the prize sometimes renders above the header
	primaryWindow   = 10 // lines scanned past the primary anchor
	maxPrizeLineLen = 40 // longer lines are informational text, not prizes
)

var (
	reDateLine  = regexp.MustCompile(`\d{1,2}\s*[-/]\s*\d{1,2}\s*[-/]\s*\d{2,4}`)
	rePrizeTok  = regexp.MustCompile(`\b\d{2,3}\b`)
	confusables = strings.NewReplacer("1", "I", "4", "A", "0", "O")
)

// anchorIndex finds the first line containing the keyword, tolerating the
// OCR digit/letter confusions 1-I, 4-A and 0-O in the line. The folded text
// is used for matching only; number scanning always sees the original line.
func anchorIndex(lines []string, keyword string) int {
	for i, l := range lines {
		if strings.Contains(l, keyword) || strings.Contains(confusables.Replace(l), keyword) {
			return i
		}
	}
	return -1
}

// prizeToken returns the trailing two digits of a 2- or 3-digit token (a
// leading serial digit is a frequent misread), or "".
func prizeToken(tok string) string {
	if len(tok) == 3 {
		return tok[1:]
	}
	return tok
}

// ExtractCostaRica runs the keyword-anchored multi-field scan. It returns
// the tokens found in field order (Tica prize first, then Monazos) and
// whether the result fell short of the full three, in which case the caller
// gap-fills from the generic strategy.
func ExtractCostaRica(lines []string) (nums []string, short bool) {
	primary := anchorIndex(lines, "DIARIA")
	if primary == -1 {
		primary = anchorIndex(lines, "TICA")
	}

	var tica string
	if primary != -1 {
		start := primary - primaryLookback
		if start < 0 {
			start = 0
		}
		for i := start; i < len(lines) && i < primary+primaryWindow; i++ {
			l := lines[i]
			if reDateLine.MatchString(l) || len(l) > maxPrizeLineLen {
				continue
			}
			if tok := rePrizeTok.FindString(l); tok != "" {
				tica = prizeToken(tok)
				break
			}
		}
	}
	if tica != "" {
		nums = append(nums, tica)
	}

	// The Monazo field carries at most two prizes; its window runs from the
	// anchor to end of text since the field sits near the bottom.
	if monazos := anchorIndex(lines, "MONAZOS"); monazos != -1 {
		taken := 0
	scan:
		for i := monazos + 1; i < len(lines); i++ {
			l := lines[i]
			if reDateLine.MatchString(l) {
				continue
			}
			for _, tok := range rePrizeTok.FindAllString(l, -1) {
				p := prizeToken(tok)
				if contains(nums, p) {
					continue
				}
				nums = append(nums, p)
				taken++
				if taken >= 2 {
					break scan
				}
			}
		}
	}

	return nums, len(nums) < 3
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
