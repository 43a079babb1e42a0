package birthday

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"
)

func sampleRecords() []Record {
	return []Record{
		{ID: "1", Name: "Ada", Birthday: "1990-03-03"},
		{ID: "2", Name: "Bola", Birthday: "1988-03-03", Posted: true},
		{ID: "3", Name: "Chidi", Birthday: "1979-03-02"},
		{ID: "4", Name: "Dayo", Birthday: "2001-03-03"},
		{ID: "5", Name: "Efe", Birthday: "not-a-date"},
		{ID: "6", Name: "Funmi", Birthday: "1995-02-28"},
	}
}

func TestSelectDue(t *testing.T) {
	ref := time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		threshold int
		wantIDs   []string
	}{
		{"Two days keeps order and skips posted", 2, []string{"1", "4"}},
		{"One day", 1, []string{"3"}},
		{"Already passed this year", 364, []string{"6"}},
		{"Nothing matches", 10, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectDue(sampleRecords(), ref, tt.threshold)
			ids := make([]string, 0, len(got))
			for _, r := range got {
				if r.Posted {
					t.Errorf("SelectDue() returned posted record %s", r.ID)
				}
				ids = append(ids, r.ID)
			}
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Errorf("SelectDue() ids = %v, want %v", ids, tt.wantIDs)
			}
		})
	}
}

func TestSelectDueIsPure(t *testing.T) {
	ref := time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)
	records := sampleRecords()
	before := sampleRecords()

	first := SelectDue(records, ref, 2)
	second := SelectDue(records, ref, 2)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("SelectDue() not idempotent: %v vs %v", first, second)
	}
	if !reflect.DeepEqual(records, before) {
		t.Error("SelectDue() mutated its input")
	}
}

func TestUpcoming(t *testing.T) {
	ref := time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)
	got := Upcoming(sampleRecords(), ref, 2)

	var names []string
	for _, d := range got {
		names = append(names, d.Name)
	}
	want := []string{"Chidi", "Ada", "Bola", "Dayo"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Upcoming() = %v, want %v", names, want)
	}
	if got[0].DaysUntil != 1 {
		t.Errorf("Upcoming()[0].DaysUntil = %d, want 1", got[0].DaysUntil)
	}
}

func TestLeadDaysJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    LeadDays
		wantErr bool
	}{
		{"Quoted string", `{"reminderDays":"3"}`, 3, false},
		{"Number", `{"reminderDays":5}`, 5, false},
		{"Null falls back to default", `{"reminderDays":null}`, DefaultLeadDays, false},
		{"Empty string falls back to default", `{"reminderDays":""}`, DefaultLeadDays, false},
		{"Whole float", `{"reminderDays":2.0}`, 2, false},
		{"Whole float string", `{"reminderDays":"7.0"}`, 7, false},
		{"Fractional", `{"reminderDays":2.5}`, 0, true},
		{"Garbage", `{"reminderDays":"soon"}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Settings
			err := json.Unmarshal([]byte(tt.input), &s)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidLeadDays) {
				t.Errorf("Unmarshal() error = %v, want ErrInvalidLeadDays", err)
			}
			if !tt.wantErr && s.LeadDays != tt.want {
				t.Errorf("LeadDays = %d, want %d", s.LeadDays, tt.want)
			}
		})
	}

	out, err := json.Marshal(Settings{AdminAddress: "admin@example.org", LeadDays: 4})
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if string(out) != `{"adminEmail":"admin@example.org","reminderDays":"4"}` {
		t.Errorf("Marshal() = %s", out)
	}
}
