package internal

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// datePattern is one rule in the ordered filename pattern table.
// Patterns are tried most-unambiguous first; the first one that both
// matches and survives calendar validation wins.
type datePattern struct {
	re          *regexp.Regexp
	extract     func(groups []string) (year, month, day int)
	confidence  float64
	description string
}

// resolveDayMonth decides month/day order for two ambiguous two-digit
// numbers. A value > 12 can only be a day; otherwise month-day order
// is assumed.
func resolveDayMonth(first, second int) (month, day int) {
	if second > 12 {
		return first, second
	}
	if first > 12 {
		return second, first
	}
	return first, second
}

var datePatterns = []datePattern{
	{
		re: regexp.MustCompile(`(\d{4})[-_](\d{2})[-_](\d{2})`),
		extract: func(g []string) (int, int, int) {
			return atoi(g[1]), atoi(g[2]), atoi(g[3])
		},
		confidence:  1.0,
		description: "YYYY-MM-DD with separators",
	},
	{
		re: regexp.MustCompile(`(?:^|_)(\d{4})(\d{2})(\d{2})(?:_|$|\.|[^\d])`),
		extract: func(g []string) (int, int, int) {
			return atoi(g[1]), atoi(g[2]), atoi(g[3])
		},
		confidence:  1.0,
		description: "YYYYMMDD without separators",
	},
	{
		re: regexp.MustCompile(`(?:^|[^\d])(\d{2})[-/_](\d{2})[-/_](\d{4})(?:[^\d]|$)`),
		extract: func(g []string) (int, int, int) {
			month, day := resolveDayMonth(atoi(g[1]), atoi(g[2]))
			return atoi(g[3]), month, day
		},
		confidence:  0.8,
		description: "MM-DD-YYYY or DD-MM-YYYY (ambiguous)",
	},
	{
		re: regexp.MustCompile(`(?:^|[^\d])(\d{2})[-/](\d{2})[-/](\d{2})(?:[^\d]|$)`),
		extract: func(g []string) (int, int, int) {
			year := atoi(g[3])
			if year < 50 {
				year += 2000
			} else {
				year += 1900
			}
			month, day := resolveDayMonth(atoi(g[1]), atoi(g[2]))
			return year, month, day
		},
		confidence:  0.6,
		description: "MM-DD-YY or DD-MM-YY (two-digit year)",
	},
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// trimNonDigits strips leading and trailing non-digit characters from
// a matched substring, for the RawText audit field.
func trimNonDigits(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return r < '0' || r > '9'
	})
}

// ExtractFilenameDate scans a filename for an embedded date using the
// pattern table. Returns filename-sourced evidence; on failure the
// reason distinguishes "nothing matched" from "matched but not a real
// calendar date", which the batch classifier cares about.
func ExtractFilenameDate(filename string) DateEvidence {
	matched := false
	for _, p := range datePatterns {
		g := p.re.FindStringSubmatch(filename)
		if g == nil {
			continue
		}
		matched = true

		year, month, day := p.extract(g)
		if !isValidDate(year, month, day) {
			continue
		}

		d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		return DateEvidence{
			Date:       &d,
			Source:     SourceFilename,
			Confidence: p.confidence,
			RawText:    trimNonDigits(g[0]),
		}
	}

	reason := "no date pattern found in filename"
	if matched {
		reason = "date pattern matched but failed calendar validation"
	}
	return DateEvidence{
		Source:        SourceFilename,
		FailureReason: reason,
	}
}
