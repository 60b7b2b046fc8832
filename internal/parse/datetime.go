package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reDrawDate = regexp.MustCompile(`(\d{1,2})[-/](\d{1,2})[-/](\d{4})`)
	reDrawTime = regexp.MustCompile(`(?i)\b\d{1,2}(:\d{2})?\s*(AM|PM)\b`)
)

// ExtractDate finds the first DD-MM-YYYY-shaped token and returns it as
// YYYY-MM-DD. The year may be rewritten by the rollover policy; see
// CorrectYearRollover. Returns "" when no date token is present.
func ExtractDate(text string, now time.Time) string {
	m := reDrawDate.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	year = CorrectYearRollover(year, now)
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// CorrectYearRollover compensates for stale template images posted across a
// year boundary: the image still carries last year's date template while the
// draw is current. The extracted year is bumped to the current year iff the
// current year is exactly one ahead AND the current month is January or
// February. The guard is on the current month, not the extracted one.
func CorrectYearRollover(extracted int, now time.Time) int {
	if now.Year() == extracted+1 && now.Month() <= time.February {
		return now.Year()
	}
	return extracted
}

// ExtractTime returns the first HH[:MM] AM|PM token verbatim (uppercased),
// or "" when the text has none. No correction is applied.
func ExtractTime(text string) string {
	m := reDrawTime.FindString(text)
	if m == "" {
		return ""
	}
	return CleanText(strings.ToUpper(m))
}
