package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clubhive/club-booking-app/controllers"
	"github.com/clubhive/club-booking-app/middleware"
)

// SetupProfileRoutes configures account and user administration routes
func SetupProfileRoutes(app *fiber.App, ctl *controllers.ProfileController) {
	profile := app.Group("/profile")

	// Public routes
	profile.Post("/register", ctl.Register)
	profile.Post("/login", ctl.Login)

	// Admin routes before the /:id wildcard
	profile.Get("/analytics", middleware.Protected(), middleware.RequireRole("ADMIN"), ctl.GetUserAnalytics)
	profile.Delete("/delete-all", middleware.Protected(), middleware.RequireRole("ADMIN"), ctl.DeleteAllUsers)
	profile.Get("/", middleware.Protected(), middleware.RequireRole("ADMIN"), ctl.GetAllUsers)
	profile.Patch("/role/:id", middleware.Protected(), middleware.RequireRole("ADMIN"), ctl.ChangeUserRole)

	// Account routes
	profile.Post("/logout", middleware.Protected(), ctl.Logout)
	profile.Patch("/verify/:id", ctl.VerifyUser)
	profile.Post("/photo/:id", middleware.Protected(), ctl.UploadProfilePhoto)
	profile.Get("/:id", ctl.GetUserProfile)
	profile.Put("/:id", middleware.Protected(), ctl.UpdateUser)
	profile.Delete("/:id", middleware.Protected(), middleware.RequireRole("ADMIN"), ctl.DeleteUser)
}
