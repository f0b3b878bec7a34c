package routes

import (
	"github.com/gofiber/fiber/v2"

	"digicard/pkg/controllers"
	"digicard/pkg/middleware"
)

type Controllers struct {
	Profile  *controllers.ProfileController
	Calendar *controllers.CalendarController
	Feedback *controllers.FeedbackController
	Booking  *controllers.BookingController
	Team     *controllers.TeamController
}

func Setup(app *fiber.App, ctl Controllers, jwtSecret string) {
	api := app.Group("/api")

	// 1. CALENDAR SYNC (the body carries userId + Google access token)
	api.Post("/calendar/google-sync", ctl.Calendar.Sync)

	// 2. PUBLIC card views
	api.Get("/profiles/:id", ctl.Profile.GetPublicProfile)
	api.Get("/profiles/:id/events", ctl.Calendar.PublicEvents)
	api.Post("/profiles/:id/feedback", ctl.Feedback.Submit)
	api.Post("/profiles/:id/bookings", ctl.Booking.Submit)

	// 3. OWN profile + events (JWT)
	me := api.Group("/me", middleware.JWTProtected(jwtSecret))
	me.Get("/profile", ctl.Profile.GetOwnProfile)
	me.Put("/profile", ctl.Profile.UpdateProfile)
	me.Put("/profile/integration", ctl.Profile.UpdateIntegration)
	me.Get("/events", ctl.Calendar.ListOwnEvents)
	me.Post("/events", ctl.Calendar.CreateManualEvent)
	me.Delete("/events/:id", ctl.Calendar.DeleteEvent)
	me.Get("/feedback", ctl.Feedback.List)
	me.Get("/bookings", ctl.Booking.List)

	// 4. TEAMS (JWT)
	teams := api.Group("/teams", middleware.JWTProtected(jwtSecret))
	teams.Post("/", ctl.Team.Create)
	teams.Get("/:id", ctl.Team.Get)
	teams.Post("/:id/join", ctl.Team.Join)
}
