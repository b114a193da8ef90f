package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clubhive/club-booking-app/controllers"
)

// SetupInstructorRoutes configures all instructor related routes
func SetupInstructorRoutes(app *fiber.App, ctl *controllers.InstructorController) {
	instructor := app.Group("/instructor")

	instructor.Post("/", ctl.CreateInstructor)
	instructor.Get("/", ctl.GetAllInstructors)
	instructor.Get("/:id", ctl.GetInstructorByID)
	instructor.Put("/:id", ctl.UpdateInstructor)
	instructor.Delete("/:id", ctl.DeleteInstructor)
}
