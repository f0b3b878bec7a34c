package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"google.golang.org/api/calendar/v3"
	"gorm.io/gorm"

	"digicard/pkg/models"
)

// ErrProfileNotFound is returned when the userId resolves to no
// profile row.
var ErrProfileNotFound = errors.New("profile not found")

// ErrSaveFailed wraps persistence failures during reconciliation.
var ErrSaveFailed = errors.New("failed to save events")

const defaultFetchTimeout = 30 * time.Second

// EventsFetcher is the upstream calendar dependency. Satisfied by
// *gcal.Client; tests substitute fakes.
type EventsFetcher interface {
	FetchUpcoming(ctx context.Context, accessToken string, since time.Time) ([]*calendar.Event, error)
}

// Result summarizes a successful sync run.
type Result struct {
	EventsCount int
}

// Syncer imports a profile's upcoming Google Calendar events into the
// canonical store, replacing whatever the previous sync left behind.
type Syncer struct {
	db      *gorm.DB
	fetcher EventsFetcher
	logger  *slog.Logger
	timeout time.Duration

	// Serializes sync runs per profile so two overlapping runs cannot
	// interleave their delete and insert phases.
	ownersMu sync.Mutex
	owners   map[string]*sync.Mutex
}

// New creates a Syncer. If logger is nil, slog.Default() is used.
func New(db *gorm.DB, fetcher EventsFetcher, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{
		db:      db,
		fetcher: fetcher,
		logger:  logger,
		timeout: defaultFetchTimeout,
		owners:  make(map[string]*sync.Mutex),
	}
}

// SyncEvents runs one full sync for the profile identified by userID,
// using the caller-supplied bearer token. There is no retry at any
// step; a failed sync is re-triggered by the caller.
func (s *Syncer) SyncEvents(ctx context.Context, userID, accessToken string) (*Result, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	// Visibility is fixed from the preference as it stands now, even if
	// it changes while the run is in flight.
	isPublic := PublicVisibility(profile.CalendarIntegration)

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	items, err := s.fetcher.FetchUpcoming(fetchCtx, accessToken, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar events: %w", err)
	}

	candidates := Normalize(items)

	unlock := s.lockOwner(profile.ID)
	count, err := ReplaceSyncedEvents(ctx, s.db, profile.ID, candidates, isPublic)
	unlock()
	if err != nil {
		s.logger.Error("reconciliation failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	s.touchLastSynced(ctx, &profile)

	s.logger.Info("synced calendar events", "user_id", userID, "count", count)
	return &Result{EventsCount: count}, nil
}

// touchLastSynced records the sync time on the profile. Best effort: a
// failure here is logged and does not fail the run.
func (s *Syncer) touchLastSynced(ctx context.Context, profile *models.UserProfile) {
	now := time.Now().UTC()
	integration := profile.CalendarIntegration
	if integration == nil {
		integration = &models.CalendarIntegration{}
	}
	integration.LastSyncedAt = &now
	if err := s.db.WithContext(ctx).
		Model(profile).
		Update("calendar_integration", integration).Error; err != nil {
		s.logger.Warn("failed to update last sync timestamp", "profile_id", profile.ID, "error", err)
	}
}

// lockOwner takes the per-profile mutex, creating it on first use, and
// returns the matching unlock.
func (s *Syncer) lockOwner(profileID string) func() {
	s.ownersMu.Lock()
	mu, ok := s.owners[profileID]
	if !ok {
		mu = &sync.Mutex{}
		s.owners[profileID] = mu
	}
	s.ownersMu.Unlock()

	mu.Lock()
	return mu.Unlock
}
