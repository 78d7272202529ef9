package seed

import (
	"fmt"

	"fruitcal/cmd/internal/dateutil"
	"fruitcal/cmd/internal/domain/entity"
	"fruitcal/cmd/internal/utils"

	"github.com/labstack/gommon/log"
)

const (
	paydayDayOfMonth = 10
	paydayTitle      = "💰월급날💰"
	paydayNote       = "Flex!!"
)

type scheduleWriter interface {
	Save(schedule *entity.Schedule) error
	ExistsPayday(date string) (bool, error)
}

// Paydays inserts a PAYDAY schedule for every month from `from` through
// December of the following year. The base day is the 10th, shifted forward
// past weekends. Months that already hold a PAYDAY on the resolved day are
// skipped, so reruns are safe. Returns created and skipped counts.
func Paydays(repo scheduleWriter, from dateutil.DayID) (int, int, error) {
	created, skipped := 0, 0

	endYear := from.Year + 1
	for year := from.Year; year <= endYear; year++ {
		monthFrom := 1
		if year == from.Year {
			monthFrom = from.Month
		}

		for month := monthFrom; month <= 12; month++ {
			payday := nextWeekdayIfWeekend(dateutil.DayID{Year: year, Month: month, Day: paydayDayOfMonth})
			dateKey := dateutil.Format(payday)

			exists, err := repo.ExistsPayday(dateKey)
			if err != nil {
				return created, skipped, fmt.Errorf("check payday %s: %w", dateKey, err)
			}
			if exists {
				skipped++
				continue
			}

			now := utils.NowUTC()
			note := paydayNote
			sched := &entity.Schedule{
				Title:       paydayTitle,
				Description: &note,
				Date:        dateKey,
				Category:    entity.CategoryPayday,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := repo.Save(sched); err != nil {
				return created, skipped, fmt.Errorf("save payday %s: %w", dateKey, err)
			}

			created++
			log.Infof("created PAYDAY: %s", dateKey)
		}
	}

	return created, skipped, nil
}

// nextWeekdayIfWeekend shifts Saturdays and Sundays forward to the next
// Monday.
func nextWeekdayIfWeekend(d dateutil.DayID) dateutil.DayID {
	for {
		wd := dateutil.Weekday(d)
		if wd != 0 && wd != 6 {
			return d
		}
		d = dateutil.AddDays(d, 1)
	}
}
