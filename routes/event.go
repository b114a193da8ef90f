package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clubhive/club-booking-app/controllers"
)

// SetupEventRoutes configures all event related routes
func SetupEventRoutes(app *fiber.App, ctl *controllers.EventController) {
	event := app.Group("/events")

	event.Post("/many", ctl.CreateMultipleEvents)
	event.Post("/:clubId", ctl.CreateEvent)
	event.Get("/", ctl.GetAllEvents)
	event.Get("/instructor/:instructorId", ctl.GetInstructorEvents)
	event.Put("/remove-instructor/:eventId", ctl.RemoveInstructorFromEvent)
	event.Get("/:id", ctl.GetEventByID)
	event.Put("/:id", ctl.UpdateEvent)
	event.Delete("/:id", ctl.DeleteEvent)
}
