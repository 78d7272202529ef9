package service

import (
	"fmt"

	"fruitcal/cmd/internal/dateutil"
	"fruitcal/cmd/internal/domain/entity"
	"fruitcal/cmd/internal/utils"
	"fruitcal/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type ScheduleRepository interface {
	Save(schedule *entity.Schedule) error
	FindAll() ([]*entity.Schedule, error)
	FindByID(id int) (*entity.Schedule, error)
	FindMonthOverlap(rangeStart, rangeEnd string) ([]*entity.Schedule, error)
	ExistsPayday(date string) (bool, error)
	Delete(schedule *entity.Schedule) error
}

// Notifier is the outbound chat channel. Implementations must be
// best-effort and never block the calling request on delivery.
type Notifier interface {
	NotifyLeave(sched *entity.Schedule, updated bool)
	NotifyReminder(sched *entity.Schedule)
}

type ScheduleRequest struct {
	Title       string  `json:"title" validate:"required,max=128"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Date        string  `json:"date" validate:"required,ymd"`
	EndDate     *string `json:"endDate" validate:"omitempty,ymd"`
	Time        *string `json:"time" validate:"omitempty,hhmm"`
	Category    string  `json:"category" validate:"omitempty,category"`
}

// ScheduleUpdateRequest carries a partial update: nil means "leave the field
// alone", an empty string clears an optional field.
type ScheduleUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=128"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Date        *string `json:"date" validate:"omitempty,ymd"`
	EndDate     *string `json:"endDate" validate:"omitempty,ymd"`
	Time        *string `json:"time" validate:"omitempty,hhmm"`
	Category    *string `json:"category" validate:"omitempty,category"`
}

type ScheduleResponse struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date"`
	EndDate     *string `json:"endDate,omitempty"`
	Time        *string `json:"time,omitempty"`
	Category    string  `json:"category"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type DefaultScheduleService struct {
	ScheduleRepo ScheduleRepository
	Validate     *validator.Validate
	Notifier     Notifier
}

func NewScheduleService(schedRepo ScheduleRepository, validate *validator.Validate, notifier Notifier) *DefaultScheduleService {
	return &DefaultScheduleService{ScheduleRepo: schedRepo, Validate: validate, Notifier: notifier}
}

// GetSchedules lists all schedules, or only those overlapping the given
// month when year and month are set. Results are ascending by start date.
func (s *DefaultScheduleService) GetSchedules(year, month int) ([]*ScheduleResponse, apierror.ErrorResponse) {
	var (
		scheds []*entity.Schedule
		err    error
	)

	if year == 0 && month == 0 {
		scheds, err = s.ScheduleRepo.FindAll()
	} else {
		if month < 1 || month > 12 || year < 1 || year > 9999 {
			return nil, apierror.NewSimple(400, "Invalid year/month")
		}
		rangeStart, rangeEnd := monthRange(year, month)
		scheds, err = s.ScheduleRepo.FindMonthOverlap(rangeStart, rangeEnd)
	}

	if err != nil {
		log.Errorf("failed to fetch schedules: %v", err)
		return nil, apierror.InternalServerError
	}

	response := make([]*ScheduleResponse, len(scheds))
	for i, sched := range scheds {
		response[i] = toScheduleResponse(sched)
	}
	return response, nil
}

func (s *DefaultScheduleService) CreateSchedule(req *ScheduleRequest) (*ScheduleResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	category := entity.CategoryOther
	if req.Category != "" {
		category = entity.Category(req.Category)
	}

	endDate := normalizeOptional(req.EndDate)
	if apierr := checkDateOrder(req.Date, endDate); apierr != nil {
		return nil, apierr
	}

	now := utils.NowUTC()
	sched := &entity.Schedule{
		Title:       req.Title,
		Description: normalizeOptional(req.Description),
		Date:        req.Date,
		EndDate:     endDate,
		Time:        normalizeOptional(req.Time),
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.ScheduleRepo.Save(sched); err != nil {
		log.Errorf("failed to save schedule: %v", err)
		return nil, apierror.InternalServerError
	}

	if sched.Category.IsLeave() {
		s.Notifier.NotifyLeave(sched, false)
	}
	return toScheduleResponse(sched), nil
}

// UpdateSchedule applies the supplied fields to an existing schedule.
// Validation, including date ordering over the merged record, runs before
// anything is persisted.
func (s *DefaultScheduleService) UpdateSchedule(id int, req *ScheduleUpdateRequest) (*ScheduleResponse, apierror.ErrorResponse) {
	sched, err := s.ScheduleRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch schedule by id %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if sched == nil {
		return nil, apierror.NotFoundError
	}

	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	merged := *sched
	if req.Title != nil {
		merged.Title = *req.Title
	}
	if req.Description != nil {
		merged.Description = normalizeOptional(req.Description)
	}
	if req.Date != nil {
		merged.Date = *req.Date
	}
	if req.EndDate != nil {
		merged.EndDate = normalizeOptional(req.EndDate)
	}
	if req.Time != nil {
		merged.Time = normalizeOptional(req.Time)
	}
	if req.Category != nil && *req.Category != "" {
		merged.Category = entity.Category(*req.Category)
	}

	if apierr := checkDateOrder(merged.Date, merged.EndDate); apierr != nil {
		return nil, apierr
	}

	merged.UpdatedAt = utils.NowUTC()

	if err := s.ScheduleRepo.Save(&merged); err != nil {
		log.Errorf("failed to update schedule %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if merged.Category.IsLeave() {
		s.Notifier.NotifyLeave(&merged, true)
	}
	return toScheduleResponse(&merged), nil
}

func (s *DefaultScheduleService) DeleteSchedule(id int) apierror.ErrorResponse {
	sched, err := s.ScheduleRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch schedule by id %d: %v", id, err)
		return apierror.InternalServerError
	}
	if sched == nil {
		return apierror.NotFoundError
	}

	if err := s.ScheduleRepo.Delete(sched); err != nil {
		log.Errorf("failed to delete schedule %d: %v", id, err)
		return apierror.InternalServerError
	}
	return nil
}

// SendReminder fires a chat reminder for the schedule regardless of its
// category.
func (s *DefaultScheduleService) SendReminder(id int) apierror.ErrorResponse {
	sched, err := s.ScheduleRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch schedule by id %d: %v", id, err)
		return apierror.InternalServerError
	}
	if sched == nil {
		return apierror.NotFoundError
	}

	s.Notifier.NotifyReminder(sched)
	return nil
}

// monthRange returns [first day of month, first day of next month) as
// YYYY-MM-DD strings.
func monthRange(year, month int) (string, string) {
	start := dateutil.DayID{Year: year, Month: month, Day: 1}
	nextYear, nextMonth := year, month+1
	if nextMonth > 12 {
		nextYear, nextMonth = year+1, 1
	}
	end := dateutil.DayID{Year: nextYear, Month: nextMonth, Day: 1}
	return dateutil.Format(start), dateutil.Format(end)
}

func checkDateOrder(date string, endDate *string) apierror.ErrorResponse {
	if endDate == nil {
		return nil
	}

	start, err := dateutil.Parse(date)
	if err != nil {
		return apierror.NewSimple(400, fmt.Sprintf("Invalid date: %s", date))
	}
	end, err := dateutil.Parse(*endDate)
	if err != nil {
		return apierror.NewSimple(400, fmt.Sprintf("Invalid date: %s", *endDate))
	}

	if dateutil.Compare(end, start) < 0 {
		return apierror.EndBeforeStartError
	}
	return nil
}

// normalizeOptional maps cleared-out strings to nil so optional columns
// store NULL instead of "".
func normalizeOptional(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}

func toScheduleResponse(sched *entity.Schedule) *ScheduleResponse {
	return &ScheduleResponse{
		ID:          sched.ID,
		Title:       sched.Title,
		Description: sched.Description,
		Date:        sched.Date,
		EndDate:     sched.EndDate,
		Time:        sched.Time,
		Category:    string(sched.Category),
		CreatedAt:   utils.FormatEpoch(sched.CreatedAt),
		UpdatedAt:   utils.FormatEpoch(sched.UpdatedAt),
	}
}
