package service

import (
	"sort"
	"testing"

	"fruitcal/cmd/internal/domain/entity"
	"fruitcal/cmd/internal/utils/validators"

	"github.com/go-playground/validator/v10"
)

type fakeScheduleRepo struct {
	byID   map[int]*entity.Schedule
	nextID int
	saves  int
}

func newFakeRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{byID: map[int]*entity.Schedule{}, nextID: 1}
}

func (f *fakeScheduleRepo) Save(s *entity.Schedule) error {
	f.saves++
	if s.ID == 0 {
		s.ID = f.nextID
		f.nextID++
	}
	cp := *s
	f.byID[s.ID] = &cp
	return nil
}

func (f *fakeScheduleRepo) FindAll() ([]*entity.Schedule, error) {
	var out []*entity.Schedule
	for _, s := range f.byID {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (f *fakeScheduleRepo) FindByID(id int) (*entity.Schedule, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeScheduleRepo) FindMonthOverlap(rangeStart, rangeEnd string) ([]*entity.Schedule, error) {
	var out []*entity.Schedule
	for _, s := range f.byID {
		if s.Date < rangeEnd && s.RangeEnd() >= rangeStart {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (f *fakeScheduleRepo) ExistsPayday(date string) (bool, error) {
	for _, s := range f.byID {
		if s.Category == entity.CategoryPayday && s.Date == date {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeScheduleRepo) Delete(s *entity.Schedule) error {
	delete(f.byID, s.ID)
	return nil
}

type notifyCall struct {
	kind    string
	id      int
	updated bool
}

type fakeNotifier struct {
	calls []notifyCall
}

func (f *fakeNotifier) NotifyLeave(s *entity.Schedule, updated bool) {
	f.calls = append(f.calls, notifyCall{kind: "leave", id: s.ID, updated: updated})
}

func (f *fakeNotifier) NotifyReminder(s *entity.Schedule) {
	f.calls = append(f.calls, notifyCall{kind: "reminder", id: s.ID})
}

func newTestService() (*DefaultScheduleService, *fakeScheduleRepo, *fakeNotifier) {
	validate := validator.New()
	_ = validate.RegisterValidation("ymd", validators.IsYmd)
	_ = validate.RegisterValidation("hhmm", validators.IsHourMinute)
	_ = validate.RegisterValidation("category", validators.IsCategory)

	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	return NewScheduleService(repo, validate, notifier), repo, notifier
}

func strptr(s string) *string { return &s }

func TestCreateSchedule(t *testing.T) {
	svc, repo, _ := newTestService()

	resp, apierr := svc.CreateSchedule(&ScheduleRequest{
		Title: "  sprint planning ",
		Date:  "2025-09-01",
		Time:  strptr("10:30"),
	})
	if apierr != nil {
		t.Fatalf("CreateSchedule: %v", apierr)
	}

	if resp.ID == 0 {
		t.Error("id was not assigned")
	}
	if resp.Title != "sprint planning" {
		t.Errorf("title = %q, want trimmed", resp.Title)
	}
	if resp.Category != string(entity.CategoryOther) {
		t.Errorf("category = %q, want default OTHER", resp.Category)
	}
	if resp.CreatedAt == "" || resp.UpdatedAt == "" {
		t.Error("timestamps not set")
	}
	if repo.saves != 1 {
		t.Errorf("saves = %d, want 1", repo.saves)
	}
}

func TestCreateScheduleValidation(t *testing.T) {
	tests := []struct {
		name     string
		req      ScheduleRequest
		wantCode int
	}{
		{name: "missing title", req: ScheduleRequest{Date: "2025-09-01"}, wantCode: 400},
		{name: "missing date", req: ScheduleRequest{Title: "x"}, wantCode: 400},
		{name: "malformed date", req: ScheduleRequest{Title: "x", Date: "09/01/2025"}, wantCode: 400},
		{name: "malformed time", req: ScheduleRequest{Title: "x", Date: "2025-09-01", Time: strptr("25:99")}, wantCode: 400},
		{name: "unknown category", req: ScheduleRequest{Title: "x", Date: "2025-09-01", Category: "BIRTHDAY"}, wantCode: 400},
		{name: "end before start", req: ScheduleRequest{Title: "x", Date: "2025-09-10", EndDate: strptr("2025-09-08")}, wantCode: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService()

			_, apierr := svc.CreateSchedule(&tt.req)
			if apierr == nil {
				t.Fatal("CreateSchedule should fail")
			}
			if apierr.Code() != tt.wantCode {
				t.Errorf("code = %d, want %d", apierr.Code(), tt.wantCode)
			}
			if repo.saves != 0 {
				t.Error("nothing may be persisted on validation failure")
			}
		})
	}
}

func TestCreateScheduleNotifiesLeaveCategories(t *testing.T) {
	tests := []struct {
		category   string
		wantNotify bool
	}{
		{category: "DAY_OFF", wantNotify: true},
		{category: "AM_HALF", wantNotify: true},
		{category: "PM_HALF", wantNotify: true},
		{category: "MEETING", wantNotify: false},
		{category: "PAYDAY", wantNotify: false},
		{category: "", wantNotify: false},
	}

	for _, tt := range tests {
		t.Run("category "+tt.category, func(t *testing.T) {
			svc, _, notifier := newTestService()

			_, apierr := svc.CreateSchedule(&ScheduleRequest{
				Title:    "휴가",
				Date:     "2025-09-01",
				Category: tt.category,
			})
			if apierr != nil {
				t.Fatalf("CreateSchedule: %v", apierr)
			}

			if tt.wantNotify {
				if len(notifier.calls) != 1 || notifier.calls[0].kind != "leave" || notifier.calls[0].updated {
					t.Errorf("calls = %+v, want one create-flavor leave notification", notifier.calls)
				}
			} else if len(notifier.calls) != 0 {
				t.Errorf("calls = %+v, want none", notifier.calls)
			}
		})
	}
}

func TestUpdateSchedulePartial(t *testing.T) {
	svc, _, _ := newTestService()

	created, apierr := svc.CreateSchedule(&ScheduleRequest{
		Title:       "offsite",
		Description: strptr("somewhere warm"),
		Date:        "2025-09-01",
		EndDate:     strptr("2025-09-03"),
	})
	if apierr != nil {
		t.Fatalf("CreateSchedule: %v", apierr)
	}

	updated, apierr := svc.UpdateSchedule(created.ID, &ScheduleUpdateRequest{
		Title: strptr("team offsite"),
	})
	if apierr != nil {
		t.Fatalf("UpdateSchedule: %v", apierr)
	}

	if updated.Title != "team offsite" {
		t.Errorf("title = %q", updated.Title)
	}
	// Untouched fields survive.
	if updated.Date != "2025-09-01" || updated.EndDate == nil || *updated.EndDate != "2025-09-03" {
		t.Errorf("dates changed: %+v", updated)
	}
	if updated.Description == nil || *updated.Description != "somewhere warm" {
		t.Error("description changed")
	}
	if updated.ID != created.ID {
		t.Errorf("id changed from %d to %d", created.ID, updated.ID)
	}
}

func TestUpdateScheduleClearsOptionalFields(t *testing.T) {
	svc, _, _ := newTestService()

	created, _ := svc.CreateSchedule(&ScheduleRequest{
		Title:   "standup",
		Date:    "2025-09-01",
		EndDate: strptr("2025-09-02"),
		Time:    strptr("09:00"),
	})

	updated, apierr := svc.UpdateSchedule(created.ID, &ScheduleUpdateRequest{
		EndDate: strptr(""),
		Time:    strptr(""),
	})
	if apierr != nil {
		t.Fatalf("UpdateSchedule: %v", apierr)
	}

	if updated.EndDate != nil {
		t.Errorf("endDate = %q, want cleared", *updated.EndDate)
	}
	if updated.Time != nil {
		t.Errorf("time = %q, want cleared", *updated.Time)
	}
}

func TestUpdateScheduleRejectsBadDateOrder(t *testing.T) {
	svc, repo, _ := newTestService()

	created, _ := svc.CreateSchedule(&ScheduleRequest{
		Title: "trip", Date: "2025-09-10", EndDate: strptr("2025-09-12"),
	})
	savesBefore := repo.saves

	_, apierr := svc.UpdateSchedule(created.ID, &ScheduleUpdateRequest{
		EndDate: strptr("2025-09-05"),
	})
	if apierr == nil || apierr.Code() != 400 {
		t.Fatalf("want 400, got %v", apierr)
	}
	if repo.saves != savesBefore {
		t.Error("rejected update must not be persisted")
	}

	// Same check when only the start date moves past the end.
	_, apierr = svc.UpdateSchedule(created.ID, &ScheduleUpdateRequest{
		Date: strptr("2025-09-20"),
	})
	if apierr == nil || apierr.Code() != 400 {
		t.Fatalf("want 400 when date moves past endDate, got %v", apierr)
	}
}

func TestUpdateScheduleNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, apierr := svc.UpdateSchedule(41, &ScheduleUpdateRequest{Title: strptr("x")})
	if apierr == nil || apierr.Code() != 404 {
		t.Fatalf("want 404, got %v", apierr)
	}
}

func TestUpdateScheduleNotifiesWithUpdateFlavor(t *testing.T) {
	svc, _, notifier := newTestService()

	created, _ := svc.CreateSchedule(&ScheduleRequest{
		Title: "연차", Date: "2025-09-01", Category: "DAY_OFF",
	})
	notifier.calls = nil

	_, apierr := svc.UpdateSchedule(created.ID, &ScheduleUpdateRequest{
		Date: strptr("2025-09-02"),
	})
	if apierr != nil {
		t.Fatalf("UpdateSchedule: %v", apierr)
	}

	if len(notifier.calls) != 1 || notifier.calls[0].kind != "leave" || !notifier.calls[0].updated {
		t.Errorf("calls = %+v, want one update-flavor leave notification", notifier.calls)
	}
}

func TestDeleteSchedule(t *testing.T) {
	svc, repo, _ := newTestService()

	created, _ := svc.CreateSchedule(&ScheduleRequest{Title: "x", Date: "2025-09-01"})

	if apierr := svc.DeleteSchedule(created.ID); apierr != nil {
		t.Fatalf("DeleteSchedule: %v", apierr)
	}
	if len(repo.byID) != 0 {
		t.Error("schedule still present after delete")
	}

	// Hard delete: a second attempt is a 404, not a silent success.
	if apierr := svc.DeleteSchedule(created.ID); apierr == nil || apierr.Code() != 404 {
		t.Fatalf("want 404 on double delete, got %v", apierr)
	}
}

func TestDeleteScheduleNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	if apierr := svc.DeleteSchedule(999); apierr == nil || apierr.Code() != 404 {
		t.Fatalf("want 404, got %v", apierr)
	}
}

func TestSendReminder(t *testing.T) {
	svc, _, notifier := newTestService()

	created, _ := svc.CreateSchedule(&ScheduleRequest{Title: "release", Date: "2025-09-01"})

	if apierr := svc.SendReminder(created.ID); apierr != nil {
		t.Fatalf("SendReminder: %v", apierr)
	}
	if len(notifier.calls) != 1 || notifier.calls[0].kind != "reminder" {
		t.Errorf("calls = %+v, want one reminder", notifier.calls)
	}

	if apierr := svc.SendReminder(999); apierr == nil || apierr.Code() != 404 {
		t.Fatalf("want 404 for unknown id, got %v", apierr)
	}
}

func TestGetSchedulesMonthOverlap(t *testing.T) {
	svc, _, _ := newTestService()

	// Spans the November/December boundary.
	if _, apierr := svc.CreateSchedule(&ScheduleRequest{
		Title: "workshop", Date: "2025-11-28", EndDate: strptr("2025-12-02"),
	}); apierr != nil {
		t.Fatalf("CreateSchedule: %v", apierr)
	}
	if _, apierr := svc.CreateSchedule(&ScheduleRequest{
		Title: "far away", Date: "2026-03-01",
	}); apierr != nil {
		t.Fatalf("CreateSchedule: %v", apierr)
	}

	nov, apierr := svc.GetSchedules(2025, 11)
	if apierr != nil {
		t.Fatalf("GetSchedules nov: %v", apierr)
	}
	dec, apierr := svc.GetSchedules(2025, 12)
	if apierr != nil {
		t.Fatalf("GetSchedules dec: %v", apierr)
	}

	if len(nov) != 1 || nov[0].Title != "workshop" {
		t.Errorf("november = %+v, want the spanning schedule", nov)
	}
	if len(dec) != 1 || dec[0].Title != "workshop" {
		t.Errorf("december = %+v, want the spanning schedule", dec)
	}

	oct, apierr := svc.GetSchedules(2025, 10)
	if apierr != nil {
		t.Fatalf("GetSchedules oct: %v", apierr)
	}
	if len(oct) != 0 {
		t.Errorf("october = %+v, want empty", oct)
	}

	all, apierr := svc.GetSchedules(0, 0)
	if apierr != nil {
		t.Fatalf("GetSchedules all: %v", apierr)
	}
	if len(all) != 2 {
		t.Errorf("unfiltered = %d schedules, want 2", len(all))
	}
}

func TestGetSchedulesInvalidMonth(t *testing.T) {
	svc, _, _ := newTestService()

	if _, apierr := svc.GetSchedules(2025, 13); apierr == nil || apierr.Code() != 400 {
		t.Fatalf("want 400 for month 13, got %v", apierr)
	}
}

func TestGetCalendar(t *testing.T) {
	svc, _, _ := newTestService()

	if _, apierr := svc.CreateSchedule(&ScheduleRequest{
		Title: "workshop", Date: "2025-11-28", EndDate: strptr("2025-12-02"),
	}); apierr != nil {
		t.Fatalf("CreateSchedule: %v", apierr)
	}

	grid, apierr := svc.GetCalendar(2025, 12, 0)
	if apierr != nil {
		t.Fatalf("GetCalendar: %v", apierr)
	}

	cells := 0
	var hit []string
	for _, week := range grid.Weeks {
		for _, c := range week {
			cells++
			if len(c.Schedules) > 0 {
				hit = append(hit, c.Date)
			}
		}
	}
	if cells != 42 {
		t.Errorf("cells = %d, want 42", cells)
	}
	if len(hit) != 2 || hit[0] != "2025-12-01" || hit[1] != "2025-12-02" {
		t.Errorf("occupied days = %v, want Dec 1 and 2", hit)
	}
}

func TestGetCalendarInvalidPeriod(t *testing.T) {
	svc, _, _ := newTestService()

	if _, apierr := svc.GetCalendar(2025, 0, 0); apierr == nil || apierr.Code() != 400 {
		t.Fatalf("want 400, got %v", apierr)
	}
}
