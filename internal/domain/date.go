package domain

import "time"

// dateLayout is the wire format for calendar dates (ISO-8601, date only).
const dateLayout = "2006-01-02"

// timeNow is the clock used to derive "today". Overridable in tests for
// deterministic streak and completion-date behavior.
var timeNow = time.Now

// Date is a calendar day without a time-of-day component. The zero value
// is not a meaningful date; use a *Date for "no date".
type Date struct {
	t time.Time
}

// NewDate builds a Date from year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar day according to the domain clock.
func Today() Date {
	return DateOf(timeNow())
}

// ParseDate parses an ISO-8601 date string (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.t.AddDate(0, 0, n))
}

// Equal reports whether two dates fall on the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.t.Format(dateLayout)
}
