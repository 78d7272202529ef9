package repository

import (
	"fruitcal/cmd/internal/domain/entity"
	"errors"
	"gorm.io/gorm"
)

type DefaultScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *DefaultScheduleRepository {
	return &DefaultScheduleRepository{db: db}
}

func (r *DefaultScheduleRepository) FindByID(id int) (*entity.Schedule, error) {
	var sched entity.Schedule
	err := r.db.First(&sched, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sched, err
}

func (r *DefaultScheduleRepository) FindAll() ([]*entity.Schedule, error) {
	var scheds []*entity.Schedule
	err := r.db.Order("date asc").Find(&scheds).Error
	return scheds, err
}

// FindMonthOverlap finds all schedules whose inclusive [date, end_date]
// range touches [rangeStart, rangeEnd). Bounds are YYYY-MM-DD strings, so
// the comparison is plain string ordering.
func (r *DefaultScheduleRepository) FindMonthOverlap(rangeStart, rangeEnd string) ([]*entity.Schedule, error) {
	var scheds []*entity.Schedule

	err := r.db.
		Where("date < ?", rangeEnd).
		Where("COALESCE(NULLIF(end_date, ''), date) >= ?", rangeStart).
		Order("date asc").
		Find(&scheds).Error

	if err != nil {
		return nil, err
	}
	return scheds, nil
}

// ExistsPayday reports whether a PAYDAY schedule already starts on the
// given day. Used by the seeder to stay idempotent.
func (r *DefaultScheduleRepository) ExistsPayday(date string) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Schedule{}).
		Where("category = ?", entity.CategoryPayday).
		Where("date = ?", date).
		Count(&count).Error

	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *DefaultScheduleRepository) Save(schedule *entity.Schedule) error {
	return r.db.Save(schedule).Error
}

func (r *DefaultScheduleRepository) Delete(schedule *entity.Schedule) error {
	return r.db.Delete(schedule).Error
}
