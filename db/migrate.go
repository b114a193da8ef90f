package db

import (
	"fmt"
	"log"

	"github.com/clubhive/club-booking-app/models"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Club{},
		&models.Instructor{},
		&models.Event{},
		&models.Booking{},
		&models.EventRating{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
