package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"

	"digicard/pkg/config"
	"digicard/pkg/controllers"
	"digicard/pkg/database"
	"digicard/pkg/gcal"
	"digicard/pkg/routes"
	"digicard/pkg/sync"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	calendarClient := gcal.NewClient(logger)
	syncer := sync.New(db, calendarClient, logger)

	app := fiber.New()
	routes.Setup(app, routes.Controllers{
		Profile:  controllers.NewProfileController(db),
		Calendar: controllers.NewCalendarController(db, syncer),
		Feedback: controllers.NewFeedbackController(db),
		Booking:  controllers.NewBookingController(db),
		Team:     controllers.NewTeamController(db),
	}, cfg.JWTSecret)

	log.Fatal(app.Listen(":" + cfg.Port))
}
