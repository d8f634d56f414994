package types

import (
	"encoding/json"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar date carried as "YYYY-MM-DD" in JSON
type Date struct {
	time.Time
}

var dateLayouts = []string{
	DateLayout,
	"02-01-2006",
	"2006/01/02",
	time.RFC3339,
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		d.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("invalid date format (string expected): %w", err)
	}

	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			d.Time = DateOf(t).Time
			return nil
		}
	}

	return fmt.Errorf("cannot parse date: %s", s)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte(`null`), nil
	}
	return json.Marshal(d.Time.Format(DateLayout))
}

func (d Date) String() string {
	return d.Time.Format(DateLayout)
}

// BeforeToday reports whether d is strictly before the calendar date of now
func (d Date) BeforeToday(now time.Time) bool {
	return d.Time.Before(DateOf(now).Time)
}
