package timeline

import (
	"strconv"
	"strings"
)

// ParseFractionalYear converts a date string into a fractional year for
// sub-year placement on a year-scaled axis. Accepted forms are "1990",
// "1990-06" and "1990-06-15"; month and day shift the year by
// (month−1)/12 and (day−1)/365. Anything else reports ok=false, which
// excludes the record from the timeline rather than failing it.
func ParseFractionalYear(s string) (float64, bool) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 3)
	if parts[0] == "" {
		return 0, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	frac := float64(year)

	if len(parts) > 1 {
		month, err := strconv.Atoi(parts[1])
		if err != nil || month < 1 || month > 12 {
			return 0, false
		}
		frac += float64(month-1) / 12
	}
	if len(parts) > 2 {
		day, err := strconv.Atoi(parts[2])
		if err != nil || day < 1 || day > 31 {
			return 0, false
		}
		frac += float64(day-1) / 365
	}
	return frac, true
}
