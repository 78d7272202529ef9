package sqlite

import (
	"fruitcal/cmd/internal/domain/entity"
	"gorm.io/driver/sqlite"
	"time"

	"gorm.io/gorm"
)

func Init(path string) (*gorm.DB, error) {
	if path == "" {
		path = "./fruitcal.db"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&entity.Schedule{})
	if err != nil {
		return nil, err
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
