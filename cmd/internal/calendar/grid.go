package calendar

import (
	"fmt"

	"fruitcal/cmd/internal/dateutil"
	"fruitcal/cmd/internal/domain/entity"
)

// GridWeeks and GridCols fix the grid to 6x7 cells so the layout height is
// stable across month navigation regardless of month length or start weekday.
const (
	GridWeeks = 6
	GridCols  = 7
)

// DefaultDisplayCap is the number of schedules shown per day cell on the
// wide layout; narrow layouts pass 4.
const DefaultDisplayCap = 3

// InvalidPeriodError reports a year/month pair that cannot name a month.
type InvalidPeriodError struct {
	Year  int
	Month int
}

func (e *InvalidPeriodError) Error() string {
	return fmt.Sprintf("invalid period %d-%d", e.Year, e.Month)
}

// Cell is one day slot of the grid. Padding cells before day 1 and after the
// last day of the month have Empty set and carry no day or schedules.
type Cell struct {
	Empty     bool
	Date      string
	Day       int
	Weekday   int
	Schedules []*entity.Schedule
	Overflow  int
	Total     int
}

type Week []Cell

type Grid struct {
	Year  int
	Month int
	Weeks []Week
}

// BuildGrid resolves the given schedules onto the 6x7 grid for year/month.
// Each schedule's inclusive day range is expanded into every covered in-grid
// day; per-cell lists keep the incoming order and are truncated to cap with
// the remainder reported as Overflow.
func BuildGrid(year, month int, schedules []*entity.Schedule, cap int) (*Grid, error) {
	if month < 1 || month > 12 || year < 1 || year > 9999 {
		return nil, &InvalidPeriodError{Year: year, Month: month}
	}
	if cap < 1 {
		cap = DefaultDisplayCap
	}

	first := dateutil.DayID{Year: year, Month: month, Day: 1}
	startWeekday := dateutil.Weekday(first)
	daysInMonth := dateutil.DaysInMonth(year, month)

	buckets := bucketByDay(year, month, schedules)

	grid := &Grid{Year: year, Month: month, Weeks: make([]Week, 0, GridWeeks)}
	week := make(Week, 0, GridCols)

	for i := 0; i < startWeekday; i++ {
		week = append(week, Cell{Empty: true, Weekday: i})
	}

	for day := 1; day <= daysInMonth; day++ {
		id := dateutil.DayID{Year: year, Month: month, Day: day}
		week = append(week, newCell(id, buckets[dateutil.Format(id)], cap))
		if len(week) == GridCols {
			grid.Weeks = append(grid.Weeks, week)
			week = make(Week, 0, GridCols)
		}
	}

	if len(week) > 0 {
		for len(week) < GridCols {
			week = append(week, Cell{Empty: true, Weekday: len(week)})
		}
		grid.Weeks = append(grid.Weeks, week)
	}

	for len(grid.Weeks) < GridWeeks {
		empty := make(Week, GridCols)
		for i := range empty {
			empty[i] = Cell{Empty: true, Weekday: i}
		}
		grid.Weeks = append(grid.Weeks, empty)
	}

	return grid, nil
}

func newCell(id dateutil.DayID, bucket []*entity.Schedule, cap int) Cell {
	shown := bucket
	overflow := 0
	if len(bucket) > cap {
		shown = bucket[:cap]
		overflow = len(bucket) - cap
	}
	if shown == nil {
		shown = []*entity.Schedule{}
	}
	return Cell{
		Date:      dateutil.Format(id),
		Day:       id.Day,
		Weekday:   dateutil.Weekday(id),
		Schedules: shown,
		Overflow:  overflow,
		Total:     len(bucket),
	}
}

// bucketByDay expands each schedule's [date, endDate] range into per-day
// membership, keyed by YYYY-MM-DD. Only days of the displayed month are
// registered, which clips ranges spanning month boundaries.
func bucketByDay(year, month int, schedules []*entity.Schedule) map[string][]*entity.Schedule {
	buckets := make(map[string][]*entity.Schedule)

	monthFirst := dateutil.DayID{Year: year, Month: month, Day: 1}
	monthLast := dateutil.DayID{Year: year, Month: month, Day: dateutil.DaysInMonth(year, month)}

	for _, s := range schedules {
		start, err := dateutil.Parse(s.Date)
		if err != nil {
			continue
		}
		end, err := dateutil.Parse(s.RangeEnd())
		if err != nil || dateutil.Compare(end, start) < 0 {
			// Negative-length ranges collapse to the start day.
			end = start
		}

		// Clamp to the displayed month so ranges spanning month
		// boundaries only register their in-month days.
		if dateutil.Compare(start, monthFirst) < 0 {
			start = monthFirst
		}
		if dateutil.Compare(end, monthLast) > 0 {
			end = monthLast
		}

		for d := start; dateutil.Compare(d, end) <= 0; d = dateutil.AddDays(d, 1) {
			key := dateutil.Format(d)
			buckets[key] = append(buckets[key], s)
		}
	}

	return buckets
}
