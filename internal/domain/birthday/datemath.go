package birthday

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseAnnualDate accepts YYYY-MM-DD and, for older documents, RFC 3339 timestamps.
func ParseAnnualDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid birthday %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// DaysUntilNextOccurrence returns how many days remain until annual's month/day
// next occurs, counted from reference. A match on reference's own calendar date
// is 0 regardless of the time of day; partial days round up.
//
// Arithmetic runs on reference's wall clock projected onto UTC, so DST shifts in
// reference's location never stretch or shrink a day. Feb 29 in a non-leap year
// normalizes to Mar 1.
func DaysUntilNextOccurrence(reference, annual time.Time) int {
	y, m, d := reference.Date()
	hh, mm, ss := reference.Clock()
	ref := time.Date(y, m, d, hh, mm, ss, reference.Nanosecond(), time.UTC)
	refDay := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	next := time.Date(y, annual.Month(), annual.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(refDay) {
		next = next.AddDate(1, 0, 0)
	}

	days := int(math.Ceil(next.Sub(ref).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}
