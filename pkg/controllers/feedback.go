package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"digicard/pkg/middleware"
	"digicard/pkg/models"
)

type SubmitFeedbackInput struct {
	Message string `json:"message"`
}

type FeedbackController struct {
	db *gorm.DB
}

func NewFeedbackController(db *gorm.DB) *FeedbackController {
	return &FeedbackController{db: db}
}

// Submit stores an anonymous feedback note for the profile in the URL.
// No authentication and no author column.
func (ctl *FeedbackController) Submit(c *fiber.Ctx) error {
	var profile models.UserProfile
	if err := ctl.db.First(&profile, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	var input SubmitFeedbackInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	message := strings.TrimSpace(input.Message)
	if len(message) < 10 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Feedback must be at least 10 characters"})
	}
	if len(message) > 1000 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Feedback must be less than 1000 characters"})
	}

	feedback := models.Feedback{
		TargetUserID: profile.ID,
		Message:      message,
		WordCount:    len(strings.Fields(message)),
	}
	if err := ctl.db.Create(&feedback).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save feedback"})
	}
	return c.JSON(fiber.Map{"message": "Feedback submitted"})
}

// List returns the feedback left for the authenticated user, newest
// first.
func (ctl *FeedbackController) List(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing user claims"})
	}
	var profile models.UserProfile
	if err := ctl.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	var feedback []models.Feedback
	if err := ctl.db.
		Where("target_user_id = ?", profile.ID).
		Order("created_at DESC").
		Find(&feedback).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load feedback"})
	}
	return c.JSON(feedback)
}
