package alerts

import (
	"fmt"

	"github.com/lifeblood-dev/lifeblood/internal/models"
	"github.com/lifeblood-dev/lifeblood/internal/types"
)

// VolunteerDirectory is read-only access to the volunteer registry; the alert
// core never writes through it.
type VolunteerDirectory interface {
	ByHospitalAndSeverity(hospitalID uint, level int) ([]models.Volunteer, error)
	All() ([]models.Volunteer, error)
}

// ListenerResolver computes which volunteers are notified for an alert.
// Severity acts as an escalating override: a life-or-death alert bypasses the
// hospital and threshold filters and goes to the entire subscriber base.
type ListenerResolver struct {
	volunteers VolunteerDirectory
}

func NewListenerResolver(volunteers VolunteerDirectory) *ListenerResolver {
	return &ListenerResolver{volunteers: volunteers}
}

func (r *ListenerResolver) FindListeners(alert *models.Alert) ([]models.Volunteer, error) {
	switch alert.AlertLevel {
	case types.AlertLevelRoutine, types.AlertLevelUrgent:
		return r.volunteers.ByHospitalAndSeverity(alert.HospitalID, alert.AlertLevel.Level())
	case types.AlertLevelLifeOrDeath:
		return r.volunteers.All()
	default:
		return nil, fmt.Errorf("unknown alert level %q", alert.AlertLevel)
	}
}
