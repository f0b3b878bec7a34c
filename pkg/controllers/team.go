package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"digicard/pkg/middleware"
	"digicard/pkg/models"
)

type CreateTeamInput struct {
	Name      string `json:"name"`
	CompanyID string `json:"company_id"`
}

type TeamController struct {
	db *gorm.DB
}

func NewTeamController(db *gorm.DB) *TeamController {
	return &TeamController{db: db}
}

// Create starts a team inside the caller's company, with the caller as
// leader and first member.
func (ctl *TeamController) Create(c *fiber.Ctx) error {
	profile, ok := ctl.callerProfile(c)
	if !ok {
		return nil
	}

	var input CreateTeamInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Team name is required"})
	}
	companyID := input.CompanyID
	if companyID == "" && profile.CompanyID != nil {
		companyID = *profile.CompanyID
	}
	if companyID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Company is required"})
	}
	var company models.Company
	if err := ctl.db.First(&company, "id = ?", companyID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Company not found"})
	}

	team := models.Team{
		CompanyID: company.ID,
		LeaderID:  profile.ID,
		Name:      input.Name,
	}
	err := ctl.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}
		return tx.Create(&models.TeamMembership{TeamID: team.ID, UserID: profile.ID}).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create team"})
	}
	return c.JSON(fiber.Map{"team": team})
}

// Join adds the caller to a team.
func (ctl *TeamController) Join(c *fiber.Ctx) error {
	profile, ok := ctl.callerProfile(c)
	if !ok {
		return nil
	}

	var team models.Team
	if err := ctl.db.First(&team, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Team not found"})
	}

	membership := models.TeamMembership{TeamID: team.ID, UserID: profile.ID}
	if err := ctl.db.FirstOrCreate(&membership, membership).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to join team"})
	}
	return c.JSON(fiber.Map{"membership": membership})
}

// Get returns a team with its member profiles.
func (ctl *TeamController) Get(c *fiber.Ctx) error {
	var team models.Team
	if err := ctl.db.First(&team, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Team not found"})
	}

	var members []models.UserProfile
	if err := ctl.db.
		Joins("JOIN team_memberships ON team_memberships.user_id = user_profiles.id").
		Where("team_memberships.team_id = ?", team.ID).
		Find(&members).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load members"})
	}
	for i := range members {
		members[i].CalendarIntegration = nil
	}
	return c.JSON(fiber.Map{"team": team, "members": members})
}

// callerProfile resolves the JWT user; on failure the response has
// been written and ok is false.
func (ctl *TeamController) callerProfile(c *fiber.Ctx) (*models.UserProfile, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing user claims"})
		return nil, false
	}
	var profile models.UserProfile
	if err := ctl.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		return nil, false
	}
	return &profile, true
}
