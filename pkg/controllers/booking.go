package controllers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"digicard/pkg/middleware"
	"digicard/pkg/models"
)

type SubmitBookingInput struct {
	RequesterName      string `json:"requester_name"`
	RequesterEmail     string `json:"requester_email"`
	RequestedTime      string `json:"requested_time"`
	DurationMinutes    int    `json:"duration_minutes"`
	LocationPreference string `json:"location_preference"`
	Note               string `json:"note"`
}

type BookingController struct {
	db *gorm.DB
}

func NewBookingController(db *gorm.DB) *BookingController {
	return &BookingController{db: db}
}

// Submit records a meeting request against a profile. Open to anyone
// viewing the card.
func (ctl *BookingController) Submit(c *fiber.Ctx) error {
	var profile models.UserProfile
	if err := ctl.db.First(&profile, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	var input SubmitBookingInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(strings.TrimSpace(input.RequesterName)) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name must be at least 2 characters"})
	}
	if !strings.Contains(input.RequesterEmail, "@") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please enter a valid email"})
	}
	requestedTime, err := time.Parse(time.RFC3339, input.RequestedTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid requested_time format"})
	}
	duration := input.DurationMinutes
	if duration == 0 {
		duration = 60
	}
	if duration < 15 || duration > 240 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Duration must be between 15 and 240 minutes"})
	}

	booking := models.BookingRequest{
		UserID:          profile.ID,
		RequesterName:   strings.TrimSpace(input.RequesterName),
		RequesterEmail:  input.RequesterEmail,
		RequestedTime:   requestedTime,
		DurationMinutes: duration,
	}
	if input.LocationPreference != "" {
		booking.LocationPreference = &input.LocationPreference
	}
	if input.Note != "" {
		booking.Note = &input.Note
	}
	if err := ctl.db.Create(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save booking request"})
	}
	return c.JSON(fiber.Map{"message": "Booking request sent"})
}

// List returns the booking requests for the authenticated user,
// soonest first.
func (ctl *BookingController) List(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing user claims"})
	}
	var profile models.UserProfile
	if err := ctl.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	var bookings []models.BookingRequest
	if err := ctl.db.
		Where("user_id = ?", profile.ID).
		Order("requested_time ASC").
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load booking requests"})
	}
	return c.JSON(bookings)
}
