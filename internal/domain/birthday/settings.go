package birthday

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const DefaultLeadDays = 2

// ErrInvalidLeadDays is returned for reminder days that are not a whole number
// of zero or more.
var ErrInvalidLeadDays = fmt.Errorf("reminder days must be a whole number, zero or more")

// Settings is the single per-organization configuration document.
type Settings struct {
	AdminAddress string   `json:"adminEmail"`
	LeadDays     LeadDays `json:"reminderDays"`
}

// DefaultSettings is returned when nothing has been stored yet.
func DefaultSettings() Settings {
	return Settings{AdminAddress: "", LeadDays: DefaultLeadDays}
}

// LeadDays is persisted as a decimal string ("2") and accepted as a string or a number.
type LeadDays int

func (d LeadDays) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.Itoa(int(d)))
}

func (d *LeadDays) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*d = DefaultLeadDays
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	if raw == "" {
		*d = DefaultLeadDays
		return nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		*d = LeadDays(n)
		return nil
	}
	// Clients may send 2.0 or "2.0" for a whole number of days.
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return fmt.Errorf("%w: got %s", ErrInvalidLeadDays, raw)
	}
	*d = LeadDays(int(f))
	return nil
}
