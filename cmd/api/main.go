package main

import (
	"os"

	"fruitcal/cmd/internal/domain/sqlite"
	"fruitcal/cmd/internal/domain/sqlite/repository"
	"fruitcal/cmd/internal/integration/slack"
	"fruitcal/cmd/internal/routes"
	"fruitcal/cmd/internal/service"
	"fruitcal/cmd/internal/utils/validators"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	validate := validator.New()
	registerValidators(validate)

	err := godotenv.Load()
	if err != nil {
		log.Warnf("no .env file loaded: %v", err)
	}

	// Init SQLite
	db, err := sqlite.Init(os.Getenv("FRUITCAL_DB"))
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}

	// Slack notifier; without a webhook URL every notification is a no-op.
	notifier := slack.New(os.Getenv("SLACK_WEBHOOK_URL"))

	schedRepo := repository.NewScheduleRepository(db)
	schedService := service.NewScheduleService(schedRepo, validate, notifier)
	schedRoutes := routes.NewScheduleDefault(schedService)

	e := echo.New()
	e.Use(middleware.CORS())

	// Schedules
	e.GET("/api/schedules", schedRoutes.GetSchedules)
	e.POST("/api/schedules", schedRoutes.CreateSchedule)
	e.PATCH("/api/schedules/:id", schedRoutes.UpdateSchedule)
	e.DELETE("/api/schedules/:id", schedRoutes.DeleteSchedule)
	e.POST("/api/schedules/:id/notify", schedRoutes.NotifySchedule)

	// Month view resolved onto the fixed 6x7 grid
	e.GET("/api/calendar", schedRoutes.GetCalendar)

	addr := os.Getenv("FRUITCAL_ADDR")
	if addr == "" {
		addr = ":6060"
	}

	err = e.Start(addr)
	if err != nil {
		e.Logger.Fatal(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("ymd", validators.IsYmd)
	_ = validate.RegisterValidation("hhmm", validators.IsHourMinute)
	_ = validate.RegisterValidation("category", validators.IsCategory)
}
