package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var months = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
	"january": 1, "february": 2, "march": 3, "april": 4, "june": 6,
	"july": 7, "august": 8, "sept": 9, "september": 9, "october": 10,
	"november": 11, "december": 12,
}

var (
	sinceRe = regexp.MustCompile(`(?i)\bsince\s+([A-Za-z]+)\.?\s+(\d{1,2}),\s*(\d{4})\b`)
	dateRe  = regexp.MustCompile(`^([A-Za-z]+)\.?\s+(\d{1,2}),\s*(\d{4})$`)
)

// NormalizeDate converts "Jan 5, 2026" (or "January 5, 2026") to
// "2026-01-05". Text it does not recognise is returned unchanged with
// ok=false.
func NormalizeDate(s string) (iso string, ok bool) {
	m := dateRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return s, false
	}
	iso, ok = toISO(m[1], m[2], m[3])
	if !ok {
		return s, false
	}
	return iso, true
}

// findSince locates a "since <Month> <Day>, <Year>" marker in a text run
// and returns the ISO date.
func findSince(text string) (string, bool) {
	for _, m := range sinceRe.FindAllStringSubmatch(text, -1) {
		if iso, ok := toISO(m[1], m[2], m[3]); ok {
			return iso, true
		}
	}
	return "", false
}

func toISO(month, day, year string) (string, bool) {
	mon, ok := months[strings.ToLower(month)]
	if !ok {
		return "", false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return "", false
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return "", false
	}
	// time.Date normalizes Feb 31 into March; a round trip rejects it.
	t := time.Date(y, time.Month(mon), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || t.Month() != time.Month(mon) || t.Day() != d {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, mon, d), true
}
