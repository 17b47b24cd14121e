package sanitize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order before the manual fallbacks kick in.
var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"02 Jan 2006",
	"Jan 2, 2006",
}

// datePattern matches the date shapes that appear inside statement text:
// d/m/yyyy (or d-m-yyyy), yyyy-m-d, and "Month d, yyyy".
var datePattern = regexp.MustCompile(
	`\b(\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}-\d{1,2}-\d{1,2}|[A-Za-z]{3,}\s+\d{1,2},\s*\d{4})\b`)

// Date parses a raw string into a calendar date. It strips quotes, tries
// the accepted layouts, then falls back to manual day/month/year
// resolution: slash triples read as d/m/y (two-digit years get 2000
// added), hyphen triples read as y-m-d when the first component exceeds
// 31 and d-m-y otherwise.
func Date(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, `"`, ""))
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return d, true
		}
	}

	if strings.Contains(raw, "/") {
		if parts := strings.Split(raw, "/"); len(parts) == 3 {
			d, m, y, ok := atoi3(parts[0], parts[1], parts[2])
			if ok {
				if y < 100 {
					y += 2000
				}
				return makeDate(y, m, d)
			}
		}
	} else if strings.Contains(raw, "-") {
		if parts := strings.Split(raw, "-"); len(parts) == 3 {
			a, b, c, ok := atoi3(parts[0], parts[1], parts[2])
			if ok {
				if a > 31 {
					return makeDate(a, b, c)
				}
				return makeDate(c, b, a)
			}
		}
	}

	return time.Time{}, false
}

// FindDate scans free text for the first date-shaped substring and parses
// it. Absence of a parseable date is not an error.
func FindDate(text string) (time.Time, bool) {
	m := datePattern.FindString(text)
	if m == "" {
		return time.Time{}, false
	}
	return Date(m)
}

func atoi3(a, b, c string) (int, int, int, bool) {
	x, err1 := strconv.Atoi(strings.TrimSpace(a))
	y, err2 := strconv.Atoi(strings.TrimSpace(b))
	z, err3 := strconv.Atoi(strings.TrimSpace(c))
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	return x, y, z, true
}

// makeDate builds a date and rejects components that would overflow,
// since time.Date silently normalizes e.g. month 13.
func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}
