package validators

import (
	"time"

	"fruitcal/cmd/internal/domain/entity"

	"github.com/go-playground/validator/v10"
)

// IsYmd accepts calendar dates in YYYY-MM-DD form.
func IsYmd(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

// IsHourMinute accepts times of day in 24h HH:MM form.
func IsHourMinute(fl validator.FieldLevel) bool {
	_, err := time.Parse("15:04", fl.Field().String())
	return err == nil
}

// IsCategory accepts members of the schedule category enumeration.
func IsCategory(fl validator.FieldLevel) bool {
	return entity.Category(fl.Field().String()).Valid()
}
