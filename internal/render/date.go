package render

import "time"

// FormatSince formats an ISO date as it appears in a card badge
// ("2026-01-05" becomes "Jan 5, 2026"). Anything that is not an ISO date is
// returned unchanged.
func FormatSince(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2, 2006")
}
