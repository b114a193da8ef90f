package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clubhive/club-booking-app/controllers"
)

// SetupClubRoutes configures all club related routes
func SetupClubRoutes(app *fiber.App, ctl *controllers.ClubController) {
	club := app.Group("/clubs")

	club.Post("/multiple", ctl.CreateMultipleClubs)
	club.Post("/", ctl.CreateClub)
	club.Get("/", ctl.GetAllClubs)
	club.Get("/:id", ctl.GetClubByID)
	club.Put("/:id", ctl.UpdateClub)
	club.Delete("/:id", ctl.DeleteClub)
}
