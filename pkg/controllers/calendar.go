package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"digicard/pkg/gcal"
	"digicard/pkg/middleware"
	"digicard/pkg/models"
	"digicard/pkg/sync"
)

/* ---------- JSON input structs (Calendar) ---------- */

// SyncRequest is the body of the sync trigger.
type SyncRequest struct {
	Action      string `json:"action"`
	UserID      string `json:"userId"`
	AccessToken string `json:"accessToken"`
}

// CreateEventInput creates a manual calendar event.
type CreateEventInput struct {
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Location  string `json:"location"`
	IsPublic  bool   `json:"is_public"`
}

/* ---------- Handlers ---------- */

// EventSyncer runs one calendar sync for a user. Satisfied by
// *sync.Syncer.
type EventSyncer interface {
	SyncEvents(ctx context.Context, userID, accessToken string) (*sync.Result, error)
}

type CalendarController struct {
	db     *gorm.DB
	syncer EventSyncer
}

func NewCalendarController(db *gorm.DB, syncer EventSyncer) *CalendarController {
	return &CalendarController{db: db, syncer: syncer}
}

// Sync is the caller-facing sync trigger. The body carries the
// authenticated user's id and a Google access token obtained by the
// browser; only the "sync-events" action is supported.
func (ctl *CalendarController) Sync(c *fiber.Ctx) error {
	var req SyncRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid action"})
	}
	if req.Action != "sync-events" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid action"})
	}

	result, err := ctl.syncer.SyncEvents(c.Context(), req.UserID, req.AccessToken)
	if err != nil {
		var authErr *gcal.AuthError
		var unavailErr *gcal.UnavailableError
		switch {
		case errors.Is(err, sync.ErrProfileNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		case errors.As(err, &authErr), errors.As(err, &unavailErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to fetch calendar events"})
		case errors.Is(err, sync.ErrSaveFailed):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save events"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		}
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"eventsCount": result.EventsCount,
		"message":     "Calendar events synced successfully",
	})
}

// PublicEvents lists the publicly visible events of a profile.
func (ctl *CalendarController) PublicEvents(c *fiber.Ctx) error {
	profileID := c.Params("id")
	var profile models.UserProfile
	if err := ctl.db.First(&profile, "id = ?", profileID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	var events []models.CalendarEvent
	if err := ctl.db.
		Where("user_id = ? AND is_public = ?", profile.ID, true).
		Order("start_time ASC").
		Find(&events).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load events"})
	}
	return c.JSON(events)
}

// ListOwnEvents returns all events of the authenticated user, synced
// and manual alike.
func (ctl *CalendarController) ListOwnEvents(c *fiber.Ctx) error {
	profile, err := ctl.ownProfile(c)
	if profile == nil {
		return err
	}

	var events []models.CalendarEvent
	if err := ctl.db.
		Where("user_id = ?", profile.ID).
		Order("start_time ASC").
		Find(&events).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load events"})
	}
	return c.JSON(events)
}

// CreateManualEvent creates an event owned by the user rather than by
// the sync subsystem. Manual rows survive sync runs untouched.
func (ctl *CalendarController) CreateManualEvent(c *fiber.Ctx) error {
	profile, err := ctl.ownProfile(c)
	if profile == nil {
		return err
	}

	var input CreateEventInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if input.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title is required"})
	}
	start, err := time.Parse(time.RFC3339, input.StartTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_time format"})
	}
	end, err := time.Parse(time.RFC3339, input.EndTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end_time format"})
	}

	event := models.CalendarEvent{
		UserID:    profile.ID,
		Title:     input.Title,
		StartTime: start,
		EndTime:   end,
		IsPublic:  input.IsPublic,
	}
	if input.Location != "" {
		event.Location = &input.Location
	}
	if err := ctl.db.Create(&event).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save event"})
	}
	return c.JSON(fiber.Map{"event": event})
}

// DeleteEvent removes one of the user's own events.
func (ctl *CalendarController) DeleteEvent(c *fiber.Ctx) error {
	profile, err := ctl.ownProfile(c)
	if profile == nil {
		return err
	}

	eventID := c.Params("id")
	var event models.CalendarEvent
	if err := ctl.db.First(&event, "id = ?", eventID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Event not found"})
	}
	if event.UserID != profile.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "No access to this event"})
	}

	if err := ctl.db.Delete(&event).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete event"})
	}
	return c.JSON(fiber.Map{"message": "Event deleted"})
}

// ownProfile resolves the JWT user to a profile row. On failure the
// response has already been written and the profile is nil.
func (ctl *CalendarController) ownProfile(c *fiber.Ctx) (*models.UserProfile, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing user claims"})
	}
	var profile models.UserProfile
	if err := ctl.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}
	return &profile, nil
}
