package service

import (
	"fruitcal/cmd/internal/calendar"
	"fruitcal/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

type CellResponse struct {
	Empty     bool                `json:"empty"`
	Date      string              `json:"date,omitempty"`
	Day       int                 `json:"day,omitempty"`
	Weekday   int                 `json:"weekday"`
	Schedules []*ScheduleResponse `json:"schedules"`
	Overflow  int                 `json:"overflow"`
	Total     int                 `json:"total"`
}

type CalendarResponse struct {
	Year  int              `json:"year"`
	Month int              `json:"month"`
	Weeks [][]CellResponse `json:"weeks"`
}

// GetCalendar resolves the month's schedules onto the fixed 6x7 grid.
func (s *DefaultScheduleService) GetCalendar(year, month, cap int) (*CalendarResponse, apierror.ErrorResponse) {
	if cap < 1 {
		cap = calendar.DefaultDisplayCap
	}

	if month < 1 || month > 12 || year < 1 || year > 9999 {
		perr := &calendar.InvalidPeriodError{Year: year, Month: month}
		return nil, apierror.NewSimple(400, perr.Error())
	}

	rangeStart, rangeEnd := monthRange(year, month)
	scheds, err := s.ScheduleRepo.FindMonthOverlap(rangeStart, rangeEnd)
	if err != nil {
		log.Errorf("failed to fetch schedules for %d-%02d: %v", year, month, err)
		return nil, apierror.InternalServerError
	}

	grid, gerr := calendar.BuildGrid(year, month, scheds, cap)
	if gerr != nil {
		log.Errorf("failed to build grid for %d-%02d: %v", year, month, gerr)
		return nil, apierror.InternalServerError
	}

	resp := &CalendarResponse{Year: grid.Year, Month: grid.Month, Weeks: make([][]CellResponse, len(grid.Weeks))}
	for wi, week := range grid.Weeks {
		cells := make([]CellResponse, len(week))
		for ci, cell := range week {
			cells[ci] = toCellResponse(cell)
		}
		resp.Weeks[wi] = cells
	}
	return resp, nil
}

func toCellResponse(cell calendar.Cell) CellResponse {
	scheds := make([]*ScheduleResponse, len(cell.Schedules))
	for i, sched := range cell.Schedules {
		scheds[i] = toScheduleResponse(sched)
	}
	return CellResponse{
		Empty:     cell.Empty,
		Date:      cell.Date,
		Day:       cell.Day,
		Weekday:   cell.Weekday,
		Schedules: scheds,
		Overflow:  cell.Overflow,
		Total:     cell.Total,
	}
}
