package store

import (
	"github.com/lifeblood-dev/lifeblood/internal/alerts"
	"github.com/lifeblood-dev/lifeblood/internal/notifications"
)

// The gorm stores are the production implementations of the interfaces the
// alert core is written against.
var (
	_ alerts.VolunteerDirectory = (*VolunteerStore)(nil)
	_ alerts.HospitalDirectory  = (*HospitalStore)(nil)
	_ alerts.AlertRepository    = (*AlertStore)(nil)
	_ notifications.OutboxStore = (*NotificationStore)(nil)
)
