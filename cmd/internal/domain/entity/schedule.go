package entity

// Category classifies a schedule and drives labeling and notification rules.
type Category string

const (
	CategoryDayOff    Category = "DAY_OFF"
	CategoryAMHalf    Category = "AM_HALF"
	CategoryPMHalf    Category = "PM_HALF"
	CategoryMeeting   Category = "MEETING"
	CategoryImportant Category = "IMPORTANT"
	CategoryPayday    Category = "PAYDAY"
	CategoryHoliday   Category = "HOLIDAY"
	CategoryOther     Category = "OTHER"
)

type categoryInfo struct {
	Label string
	Leave bool
}

var categories = map[Category]categoryInfo{
	CategoryDayOff:    {Label: "연차", Leave: true},
	CategoryAMHalf:    {Label: "오전 반차", Leave: true},
	CategoryPMHalf:    {Label: "오후 반차", Leave: true},
	CategoryMeeting:   {Label: "미팅"},
	CategoryImportant: {Label: "중요"},
	CategoryPayday:    {Label: "월급날"},
	CategoryHoliday:   {Label: "공휴일"},
	CategoryOther:     {Label: "기타"},
}

func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

func (c Category) Label() string {
	info, ok := categories[c]
	if !ok {
		return "일정"
	}
	return info.Label
}

// IsLeave reports whether schedules in this category trigger a Slack
// notification on create/update.
func (c Category) IsLeave() bool {
	return categories[c].Leave
}

type Schedule struct {
	ID          int    `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description *string
	Date        string `gorm:"not null;index"` // YYYY-MM-DD
	EndDate     *string
	Time        *string
	Category    Category `gorm:"not null;default:OTHER"`
	CreatedAt   int64    `gorm:"not null"`
	UpdatedAt   int64    `gorm:"not null"`
}

// RangeEnd returns the inclusive last day of the schedule. Single-day
// schedules end on their start date.
func (s *Schedule) RangeEnd() string {
	if s.EndDate != nil && *s.EndDate != "" {
		return *s.EndDate
	}
	return s.Date
}
