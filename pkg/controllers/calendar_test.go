package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"google.golang.org/api/calendar/v3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"digicard/pkg/database"
	"digicard/pkg/gcal"
	"digicard/pkg/models"
	"digicard/pkg/sync"
)

type stubSyncer struct {
	result *sync.Result
	err    error
}

func (s *stubSyncer) SyncEvents(ctx context.Context, userID, accessToken string) (*sync.Result, error) {
	return s.result, s.err
}

func newSyncApp(syncer EventSyncer) *fiber.App {
	app := fiber.New()
	ctl := NewCalendarController(nil, syncer)
	app.Post("/api/calendar/google-sync", ctl.Sync)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() failed: %v", err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	var parsed map[string]interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			t.Fatalf("response is not JSON: %v (%s)", err, raw)
		}
	}
	return resp, parsed
}

// TestSync_InvalidAction tests the action guard.
func TestSync_InvalidAction(t *testing.T) {
	app := newSyncApp(&stubSyncer{})
	resp, body := postJSON(t, app, "/api/calendar/google-sync",
		`{"action":"export-events","userId":"u1","accessToken":"tok"}`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if body["error"] != "Invalid action" {
		t.Errorf("error = %q, want %q", body["error"], "Invalid action")
	}
}

// TestSync_ProfileNotFound tests the 404 mapping.
func TestSync_ProfileNotFound(t *testing.T) {
	app := newSyncApp(&stubSyncer{err: sync.ErrProfileNotFound})
	resp, body := postJSON(t, app, "/api/calendar/google-sync",
		`{"action":"sync-events","userId":"ghost","accessToken":"tok"}`)

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if body["error"] != "Profile not found" {
		t.Errorf("error = %q, want %q", body["error"], "Profile not found")
	}
}

// TestSync_UpstreamErrors tests that both provider error types map to
// the 400 fetch failure, even when wrapped.
func TestSync_UpstreamErrors(t *testing.T) {
	upstreamErrs := []error{
		fmt.Errorf("failed to fetch calendar events: %w", &gcal.AuthError{}),
		fmt.Errorf("failed to fetch calendar events: %w", &gcal.UnavailableError{StatusCode: 503}),
	}
	for _, upstreamErr := range upstreamErrs {
		app := newSyncApp(&stubSyncer{err: upstreamErr})
		resp, body := postJSON(t, app, "/api/calendar/google-sync",
			`{"action":"sync-events","userId":"u1","accessToken":"tok"}`)

		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%v: status = %d, want 400", upstreamErr, resp.StatusCode)
		}
		if body["error"] != "Failed to fetch calendar events" {
			t.Errorf("%v: error = %q, want %q", upstreamErr, body["error"], "Failed to fetch calendar events")
		}
	}
}

// TestSync_SaveFailed tests the reconciliation failure mapping.
func TestSync_SaveFailed(t *testing.T) {
	app := newSyncApp(&stubSyncer{err: fmt.Errorf("%w: disk full", sync.ErrSaveFailed)})
	resp, body := postJSON(t, app, "/api/calendar/google-sync",
		`{"action":"sync-events","userId":"u1","accessToken":"tok"}`)

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	if body["error"] != "Failed to save events" {
		t.Errorf("error = %q, want %q", body["error"], "Failed to save events")
	}
}

// TestSync_UnknownFault tests the catch-all.
func TestSync_UnknownFault(t *testing.T) {
	app := newSyncApp(&stubSyncer{err: errors.New("boom")})
	resp, body := postJSON(t, app, "/api/calendar/google-sync",
		`{"action":"sync-events","userId":"u1","accessToken":"tok"}`)

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	if body["error"] != "Internal server error" {
		t.Errorf("error = %q, want %q", body["error"], "Internal server error")
	}
}

// TestSync_Success tests the summary response.
func TestSync_Success(t *testing.T) {
	app := newSyncApp(&stubSyncer{result: &sync.Result{EventsCount: 3}})
	resp, body := postJSON(t, app, "/api/calendar/google-sync",
		`{"action":"sync-events","userId":"u1","accessToken":"tok"}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	if body["eventsCount"] != float64(3) {
		t.Errorf("eventsCount = %v, want 3", body["eventsCount"])
	}
	if body["message"] != "Calendar events synced successfully" {
		t.Errorf("message = %q", body["message"])
	}
}

/* ---------- end-to-end through the real syncer ---------- */

type fixedFetcher struct {
	items []*calendar.Event
}

func (f *fixedFetcher) FetchUpcoming(ctx context.Context, accessToken string, since time.Time) ([]*calendar.Event, error) {
	return f.items, nil
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// TestSync_EndToEnd drives the full path: HTTP trigger, real syncer,
// fake provider, SQLite store.
func TestSync_EndToEnd(t *testing.T) {
	db := openTestDB(t)
	profile := models.UserProfile{
		UserID:              "user-1",
		Name:                "Ada",
		CalendarIntegration: &models.CalendarIntegration{ShowPublicEvents: true},
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	fetcher := &fixedFetcher{items: []*calendar.Event{
		{
			Id:      "g-1",
			Summary: "Board meeting",
			Start:   &calendar.EventDateTime{DateTime: "2026-09-01T10:00:00Z"},
			End:     &calendar.EventDateTime{DateTime: "2026-09-01T11:00:00Z"},
		},
		{Id: "g-2"}, // unschedulable, must be filtered
	}}

	app := newSyncApp(sync.New(db, fetcher, nil))
	resp, body := postJSON(t, app, "/api/calendar/google-sync",
		`{"action":"sync-events","userId":"user-1","accessToken":"tok"}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %v)", resp.StatusCode, body)
	}
	if body["eventsCount"] != float64(1) {
		t.Errorf("eventsCount = %v, want 1", body["eventsCount"])
	}

	var events []models.CalendarEvent
	if err := db.Where("user_id = ?", profile.ID).Find(&events).Error; err != nil {
		t.Fatalf("failed to load events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d rows, want 1", len(events))
	}
	if events[0].GoogleEventID == nil || *events[0].GoogleEventID != "g-1" {
		t.Errorf("external id = %v, want g-1", events[0].GoogleEventID)
	}
	if !events[0].IsPublic {
		t.Error("IsPublic = false, want true per preference")
	}
}
