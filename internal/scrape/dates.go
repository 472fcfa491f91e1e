package scrape

import (
	"strconv"
	"strings"
	"time"
)

// Upstream prints timestamps as "Jan-09-2024 18:30". Months are resolved via
// an explicit table rather than time.Parse so a stray token fails cleanly.
var months = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// ParseUpstreamDate converts an upstream "Mon-DD-YYYY HH:MM" string into
// epoch milliseconds (UTC). Unparseable input yields 0: one bad timestamp
// must not invalidate the record it belongs to.
func ParseUpstreamDate(s string) int64 {
	s = strings.TrimSpace(s)
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return 0
	}

	date := strings.Split(parts[0], "-")
	if len(date) != 3 {
		return 0
	}
	month, found := months[strings.ToLower(date[0])]
	if !found {
		return 0
	}
	day, err := strconv.Atoi(date[1])
	if err != nil || day < 1 || day > 31 {
		return 0
	}
	year, err := strconv.Atoi(date[2])
	if err != nil {
		return 0
	}

	clock := strings.Split(parts[1], ":")
	if len(clock) != 2 {
		return 0
	}
	hour, err := strconv.Atoi(clock[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0
	}
	minute, err := strconv.Atoi(clock[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0
	}

	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC).UnixMilli()
}
