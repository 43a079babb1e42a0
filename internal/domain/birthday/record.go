// internal/domain/birthday/record.go
package birthday

import (
	"fmt"
	"time"
)

var ErrRecordNotFound = fmt.Errorf("birthday record not found")

// Record is one tracked person. JSON names match the stored collection document.
type Record struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Gender    string    `json:"gender"`
	Contact   string    `json:"contact"`
	Email     string    `json:"email"`
	Birthday  string    `json:"birthday"` // YYYY-MM-DD, only month and day are used
	Posted    bool      `json:"posted"`   // already publicly acknowledged
	CreatedAt time.Time `json:"createdAt"`
}

// AnnualDate parses the record's birthday.
func (r Record) AnnualDate() (time.Time, error) {
	return ParseAnnualDate(r.Birthday)
}

// FindIndex returns the position of the record with the given id, or -1.
func FindIndex(records []Record, id string) int {
	for i := range records {
		if records[i].ID == id {
			return i
		}
	}
	return -1
}
