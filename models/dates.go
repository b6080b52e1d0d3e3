package models

import (
	"time"
)

// DateLayout is the wire and storage format for all calendar dates. Dates
// are plain YYYY-MM-DD strings, so lexicographic comparison in SQL matches
// chronological order.
const DateLayout = "2006-01-02"

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func ValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// DateRange holds an inclusive [Start, End] validity window.
type DateRange struct {
	Start string
	End   string
}

func (r DateRange) Contains(date string) bool {
	return r.Start <= date && date <= r.End
}

// Days returns every date in the range, in order. The range endpoints must
// already be validated.
func (r DateRange) Days() []string {
	start, err := ParseDate(r.Start)
	if err != nil {
		return nil
	}
	end, err := ParseDate(r.End)
	if err != nil {
		return nil
	}

	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DateLayout))
	}
	return days
}
