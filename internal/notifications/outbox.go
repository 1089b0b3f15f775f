package notifications

import (
	"strings"

	"github.com/lib/pq"

	"github.com/lifeblood-dev/lifeblood/internal/models"
	"github.com/lifeblood-dev/lifeblood/internal/types"
)

// DonationAlertTemplate is the provider-side template used for alert chat
// messages; its variables are substituted positionally.
const DonationAlertTemplate = "donation_alert"

// VerificationCodeTemplate carries a single variable, the code itself.
const VerificationCodeTemplate = "verification_code"

// PushTitle renders the notification title for an alert level.
func PushTitle(level types.AlertLevel) string {
	return level.DisplayName() + " alert"
}

// PushBody renders the notification body. The trailing doctor-message
// sentence is appended only when the message has content; downstream
// consumers rely on this exact wording.
func PushBody(hospitalName string, level types.AlertLevel, doctorMessage string) string {
	body := "Donation request at hospital " + hospitalName + " with level " + level.DisplayName() + "."
	if strings.TrimSpace(doctorMessage) != "" {
		body += " Doctor message: " + doctorMessage
	}
	return body
}

// BuildPushNotifications snapshots one unsent push record per recipient that
// has the push channel enabled and a usable device token. alert.Hospital must
// be populated.
func BuildPushNotifications(alert *models.Alert, recipients []models.Volunteer) []models.PushNotification {
	var records []models.PushNotification
	for _, volunteer := range recipients {
		if !volunteer.ReceivesChannel(types.ChannelPushNotifications) {
			continue
		}
		if strings.TrimSpace(volunteer.PushNotificationToken) == "" {
			continue
		}
		records = append(records, models.PushNotification{
			UserToken:            volunteer.PushNotificationToken,
			Title:                PushTitle(alert.AlertLevel),
			Body:                 PushBody(alert.Hospital.Name, alert.AlertLevel, alert.DoctorMessage),
			PushNotificationType: volunteer.PushNotificationType,
		})
	}
	return records
}

// BuildWhatsAppMessages snapshots one unsent chat record per recipient with
// the chat channel enabled. Variable order matters: severity name first,
// doctor message (possibly empty) second.
func BuildWhatsAppMessages(alert *models.Alert, recipients []models.Volunteer) []models.WhatsAppMessage {
	var records []models.WhatsAppMessage
	for _, volunteer := range recipients {
		if !volunteer.ReceivesChannel(types.ChannelWhatsAppMessages) {
			continue
		}
		records = append(records, models.WhatsAppMessage{
			PhoneNumber:       volunteer.PhoneNumber,
			TemplateName:      DonationAlertTemplate,
			TemplateVariables: pq.StringArray{string(alert.AlertLevel), alert.DoctorMessage},
		})
	}
	return records
}
