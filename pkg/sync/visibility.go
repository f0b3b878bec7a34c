package sync

import "digicard/pkg/models"

// PublicVisibility decides whether the events of the current sync run
// are publicly visible. The preference is read once at the start of a
// run and applied uniformly; a profile that never configured the
// integration defaults to private.
func PublicVisibility(integration *models.CalendarIntegration) bool {
	if integration == nil {
		return false
	}
	return integration.ShowPublicEvents
}
