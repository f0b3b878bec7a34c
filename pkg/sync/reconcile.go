package sync

import (
	"context"

	"gorm.io/gorm"

	"digicard/pkg/models"
)

// ReplaceSyncedEvents swaps the sync-owned events of a profile for the
// given candidates. The provider only reports current events, never
// deletions, so the previous sync-owned set is deleted wholesale and
// the fresh set inserted; diffing cannot reflect provider-side
// cancellations. Manually entered rows (nil GoogleEventID) are left
// alone.
//
// Delete and insert run in one transaction: a failure in either phase
// rolls back to the pre-sync state. An empty candidate set still clears
// the previous sync-owned rows.
//
// Returns the number of rows inserted.
func ReplaceSyncedEvents(ctx context.Context, db *gorm.DB, profileID string, candidates []Candidate, isPublic bool) (int, error) {
	rows := make([]models.CalendarEvent, 0, len(candidates))
	for _, cand := range candidates {
		externalID := cand.GoogleEventID
		rows = append(rows, models.CalendarEvent{
			GoogleEventID: &externalID,
			UserID:        profileID,
			Title:         cand.Title,
			StartTime:     cand.StartTime,
			EndTime:       cand.EndTime,
			Location:      cand.Location,
			IsPublic:      isPublic,
			// The provider does not report RSVP ambiguity here.
			IsConfirmedAttendance: true,
		})
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("user_id = ? AND google_event_id IS NOT NULL", profileID).
			Delete(&models.CalendarEvent{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}
