package routes

import (
	"errors"
	"fruitcal/cmd/internal/service"
	"fruitcal/cmd/internal/utils/apierror"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

type ScheduleService interface {
	GetSchedules(year, month int) ([]*service.ScheduleResponse, apierror.ErrorResponse)
	CreateSchedule(req *service.ScheduleRequest) (*service.ScheduleResponse, apierror.ErrorResponse)
	UpdateSchedule(id int, req *service.ScheduleUpdateRequest) (*service.ScheduleResponse, apierror.ErrorResponse)
	DeleteSchedule(id int) apierror.ErrorResponse
	SendReminder(id int) apierror.ErrorResponse
	GetCalendar(year, month, cap int) (*service.CalendarResponse, apierror.ErrorResponse)
}

type DefaultScheduleRoute struct {
	ScheduleService ScheduleService
}

func NewScheduleDefault(schedService ScheduleService) *DefaultScheduleRoute {
	return &DefaultScheduleRoute{ScheduleService: schedService}
}

// GetSchedules lists schedules, month-filtered when both year and month
// query params are present.
func (s *DefaultScheduleRoute) GetSchedules(c echo.Context) error {
	yearStr := c.QueryParam("year")
	monthStr := c.QueryParam("month")

	year, month := 0, 0
	if yearStr != "" || monthStr != "" {
		var err error
		year, err = strconv.Atoi(yearStr)
		if err != nil {
			errResp := apierror.NewSimple(400, "year is not a number")
			return c.JSON(errResp.Code(), errResp)
		}
		month, err = strconv.Atoi(monthStr)
		if err != nil {
			errResp := apierror.NewSimple(400, "month is not a number")
			return c.JSON(errResp.Code(), errResp)
		}
	}

	scheds, apierr := s.ScheduleService.GetSchedules(year, month)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, scheds)
}

func (s *DefaultScheduleRoute) CreateSchedule(c echo.Context) error {
	var req service.ScheduleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}

	sched, apierr := s.ScheduleService.CreateSchedule(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, sched)
}

func (s *DefaultScheduleRoute) UpdateSchedule(c echo.Context) error {
	id, errResp := parseIDParam(c)
	if errResp != nil {
		return c.JSON(errResp.Code(), errResp)
	}

	var req service.ScheduleUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}

	sched, apierr := s.ScheduleService.UpdateSchedule(id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, sched)
}

func (s *DefaultScheduleRoute) DeleteSchedule(c echo.Context) error {
	id, errResp := parseIDParam(c)
	if errResp != nil {
		return c.JSON(errResp.Code(), errResp)
	}

	apierr := s.ScheduleService.DeleteSchedule(id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}

// NotifySchedule fires a manual chat reminder for one schedule.
func (s *DefaultScheduleRoute) NotifySchedule(c echo.Context) error {
	id, errResp := parseIDParam(c)
	if errResp != nil {
		return c.JSON(errResp.Code(), errResp)
	}

	apierr := s.ScheduleService.SendReminder(id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// GetCalendar renders the 6x7 grid for ?month=YYYY-MM, with an optional
// per-cell display cap.
func (s *DefaultScheduleRoute) GetCalendar(c echo.Context) error {
	monthStr := c.QueryParam("month") // "2025-08"
	if monthStr == "" {
		return c.JSON(400, apierror.NewMissingParamError("month"))
	}

	year, month, err := parseMonthString(monthStr)
	if err != nil {
		apierr := apierror.NewSimple(400, "Could not understand month format")
		return c.JSON(apierr.Code(), apierr)
	}

	cap := 0
	if capStr := c.QueryParam("cap"); capStr != "" {
		cap, err = strconv.Atoi(capStr)
		if err != nil || cap < 1 || cap > 10 {
			apierr := apierror.NewSimple(400, "cap must be a number between 1 and 10")
			return c.JSON(apierr.Code(), apierr)
		}
	}

	grid, apierr := s.ScheduleService.GetCalendar(year, month, cap)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, grid)
}

func parseIDParam(c echo.Context) (int, apierror.ErrorResponse) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, apierror.NewSimple(400, "ID is not a number")
	}
	return id, nil
}

// parseMonthString takes "YYYY-MM" (e.g., "2025-08") and returns the year
// and month as ints.
func parseMonthString(monthString string) (int, int, error) {
	t, err := time.Parse("2006-01", monthString)
	if err != nil {
		return 0, 0, errors.New("invalid month format, expected YYYY-MM")
	}
	return t.Year(), int(t.Month()), nil
}
