package main

import (
	"os"

	"fruitcal/cmd/internal/dateutil"
	"fruitcal/cmd/internal/domain/sqlite"
	"fruitcal/cmd/internal/domain/sqlite/repository"
	"fruitcal/cmd/internal/seed"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

// Seeds PAYDAY schedules from the current month through December of next
// year. Safe to rerun; existing paydays are skipped.
func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warnf("no .env file loaded: %v", err)
	}

	db, err := sqlite.Init(os.Getenv("FRUITCAL_DB"))
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}

	schedRepo := repository.NewScheduleRepository(db)

	created, skipped, err := seed.Paydays(schedRepo, dateutil.Today())
	if err != nil {
		log.Fatal("failed to seed paydays", err)
	}

	log.Infof("done. created=%d, skipped=%d", created, skipped)
}
