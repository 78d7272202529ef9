package dateutil

import (
	"errors"
	"fmt"
	"time"
)

// ErrParse is returned for strings that are not well-formed YYYY-MM-DD dates.
var ErrParse = errors.New("invalid date, expected YYYY-MM-DD")

// DayID identifies a calendar day without any timezone attached. All
// arithmetic pins the day to UTC midnight so it can never drift across
// DST boundaries.
type DayID struct {
	Year  int
	Month int
	Day   int
}

func Parse(ymd string) (DayID, error) {
	t, err := time.Parse("2006-01-02", ymd)
	if err != nil {
		return DayID{}, ErrParse
	}
	return DayID{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}

func Format(d DayID) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d DayID) String() string {
	return Format(d)
}

func (d DayID) utc() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

func fromTime(t time.Time) DayID {
	return DayID{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

func AddDays(d DayID, n int) DayID {
	return fromTime(d.utc().AddDate(0, 0, n))
}

// Compare returns -1, 0 or 1 as a sorts before, equal to or after b.
func Compare(a, b DayID) int {
	at, bt := a.utc(), b.utc()
	switch {
	case at.Before(bt):
		return -1
	case at.After(bt):
		return 1
	default:
		return 0
	}
}

// Weekday returns 0..6 with 0 = Sunday, the grid's first column.
func Weekday(d DayID) int {
	return int(d.utc().Weekday())
}

// DaysInMonth returns 28..31 for the given month, leap years included.
func DaysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Today returns the current calendar day in UTC.
func Today() DayID {
	return fromTime(time.Now().UTC())
}
