package handlers

import (
	"github.com/lifeblood-dev/lifeblood/internal/alerts"
)

var (
	alertService *alerts.Service

	// phoneRegion is the default region for parsing national phone numbers.
	phoneRegion = "JO"
)

// Configure wires the handler package to its collaborators. Must be called
// before the router starts serving.
func Configure(alerts *alerts.Service, region string) {
	alertService = alerts
	if region != "" {
		phoneRegion = region
	}
}
