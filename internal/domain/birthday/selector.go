package birthday

import (
	"sort"
	"time"
)

// SelectDue returns the unposted records whose next occurrence is exactly
// thresholdDays away. Input order is preserved; records with an unparseable
// birthday never match.
func SelectDue(records []Record, reference time.Time, thresholdDays int) []Record {
	due := make([]Record, 0)
	for _, r := range records {
		if r.Posted {
			continue
		}
		annual, err := r.AnnualDate()
		if err != nil {
			continue
		}
		if DaysUntilNextOccurrence(reference, annual) == thresholdDays {
			due = append(due, r)
		}
	}
	return due
}

// Due pairs a record with its computed days remaining.
type Due struct {
	Record
	DaysUntil int `json:"daysUntil"`
}

// Upcoming lists every record occurring within withinDays of reference, posted
// or not, soonest first.
func Upcoming(records []Record, reference time.Time, withinDays int) []Due {
	out := make([]Due, 0)
	for _, r := range records {
		annual, err := r.AnnualDate()
		if err != nil {
			continue
		}
		days := DaysUntilNextOccurrence(reference, annual)
		if days <= withinDays {
			out = append(out, Due{Record: r, DaysUntil: days})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DaysUntil != out[j].DaysUntil {
			return out[i].DaysUntil < out[j].DaysUntil
		}
		return out[i].Name < out[j].Name
	})
	return out
}
