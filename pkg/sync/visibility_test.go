package sync

import (
	"testing"

	"digicard/pkg/models"
)

func TestPublicVisibility(t *testing.T) {
	tests := []struct {
		name        string
		integration *models.CalendarIntegration
		want        bool
	}{
		{"never configured", nil, false},
		{"configured private", &models.CalendarIntegration{ShowPublicEvents: false}, false},
		{"configured public", &models.CalendarIntegration{ShowPublicEvents: true}, true},
	}
	for _, tt := range tests {
		if got := PublicVisibility(tt.integration); got != tt.want {
			t.Errorf("%s: PublicVisibility() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
