package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"digicard/pkg/middleware"
	"digicard/pkg/models"
)

/* ---------- JSON input structs (Profile) ---------- */

type UpdateProfileInput struct {
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Position  *string `json:"position"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

type UpdateIntegrationInput struct {
	ShowPublicEvents bool `json:"show_public_events"`
}

/* ---------- Handlers ---------- */

type ProfileController struct {
	db *gorm.DB
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{db: db}
}

// GetOwnProfile returns the authenticated user's full profile,
// integration settings included.
func (ctl *ProfileController) GetOwnProfile(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing user claims"})
	}
	var profile models.UserProfile
	if err := ctl.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}
	return c.JSON(profile)
}

// GetPublicProfile is the card view: the profile row without the
// integration settings.
func (ctl *ProfileController) GetPublicProfile(c *fiber.Ctx) error {
	var profile models.UserProfile
	if err := ctl.db.First(&profile, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}
	profile.CalendarIntegration = nil
	return c.JSON(profile)
}

// UpdateProfile updates the card fields of the authenticated user.
func (ctl *ProfileController) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing user claims"})
	}
	var profile models.UserProfile
	if err := ctl.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	var input UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if input.Name != "" {
		profile.Name = input.Name
	}
	profile.Email = input.Email
	profile.Phone = input.Phone
	profile.Position = input.Position
	profile.Bio = input.Bio
	profile.AvatarURL = input.AvatarURL

	if err := ctl.db.Save(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}
	return c.JSON(fiber.Map{"profile": profile})
}

// UpdateIntegration toggles the public-events preference. It affects
// future sync runs only; already-synced rows keep the visibility they
// were written with.
func (ctl *ProfileController) UpdateIntegration(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing user claims"})
	}
	var profile models.UserProfile
	if err := ctl.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	var input UpdateIntegrationInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	integration := profile.CalendarIntegration
	if integration == nil {
		integration = &models.CalendarIntegration{}
	}
	integration.ShowPublicEvents = input.ShowPublicEvents
	profile.CalendarIntegration = integration

	if err := ctl.db.Model(&profile).Update("calendar_integration", integration).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update integration"})
	}
	return c.JSON(fiber.Map{"calendar_integration": integration})
}
