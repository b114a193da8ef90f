package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clubhive/club-booking-app/controllers"
)

// SetupRatingRoutes configures all event rating routes
func SetupRatingRoutes(app *fiber.App, ctl *controllers.RatingController) {
	rating := app.Group("/ratings")

	rating.Post("/:userId", ctl.CreateEventRating)
	rating.Get("/:eventId/average", ctl.GetAverageRating)
	rating.Get("/:eventId", ctl.GetEventRatings)
}
