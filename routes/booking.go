package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clubhive/club-booking-app/controllers"
	"github.com/clubhive/club-booking-app/middleware"
)

// SetupBookingRoutes configures all booking related routes
func SetupBookingRoutes(app *fiber.App, ctl *controllers.BookingController) {
	booking := app.Group("/bookings")

	// /admin and /detail must register before the /:userId wildcard
	booking.Get("/admin", middleware.Protected(), middleware.RequireRole("ADMIN"), ctl.GetAllAdminBookings)
	booking.Get("/detail/:bookingId", ctl.GetBooking)

	booking.Post("/:userId", ctl.CreateBooking)
	booking.Get("/:userId", ctl.GetAllBookings)
	booking.Patch("/:bookingId/cancel", ctl.CancelBooking)
	booking.Patch("/:bookingId", ctl.UpdateBooking)
}
