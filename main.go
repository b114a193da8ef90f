package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/clubhive/club-booking-app/controllers"
	"github.com/clubhive/club-booking-app/cron"
	"github.com/clubhive/club-booking-app/db"
	"github.com/clubhive/club-booking-app/redis"
	"github.com/clubhive/club-booking-app/routes"
	"github.com/clubhive/club-booking-app/utils"
)

func main() {
	app := fiber.New()

	gormDB := db.Init()
	db.Migrate(gormDB)
	redis.InitRedis()

	allowOrigins := os.Getenv("ALLOW_ORIGINS")
	if allowOrigins == "" {
		allowOrigins = "http://localhost:5173,http://localhost:5174"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))
	app.Use(logger.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Club booking API")
	})

	mailer := utils.SMTPMailer{}

	routes.SetupProfileRoutes(app, controllers.NewProfileController(gormDB))
	routes.SetupClubRoutes(app, controllers.NewClubController(gormDB))
	routes.SetupEventRoutes(app, controllers.NewEventController(gormDB))
	routes.SetupInstructorRoutes(app, controllers.NewInstructorController(gormDB))
	routes.SetupBookingRoutes(app, controllers.NewBookingController(gormDB, mailer))
	routes.SetupRatingRoutes(app, controllers.NewRatingController(gormDB))

	cron.StartCronJobs(gormDB, mailer)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
