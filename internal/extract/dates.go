package extract

import (
	"time"
)

// dateLayouts covers the date shapes the supported banks use. Numeric
// day-first layouts come before anything ambiguous; there is no
// US-style month-first template among Indian banks.
var dateLayouts = []string{
	"2-1-06",
	"2/1/06",
	"2-1-2006",
	"2/1/2006",
	"2006-01-02",
	"2-Jan-06",
	"2-Jan-2006",
	"2Jan06",
	"January 2, 2006",
}

// parseDate tries each known layout in order. Returns ok=false when no
// layout fits; the caller falls back to the message receipt time.
func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
