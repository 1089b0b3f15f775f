package notifications

import (
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeblood-dev/lifeblood/internal/models"
	"github.com/lifeblood-dev/lifeblood/internal/types"
)

func testAlert(level types.AlertLevel, doctorMessage string) *models.Alert {
	return &models.Alert{
		AlertLevel:    level,
		DoctorMessage: doctorMessage,
		Hospital:      models.Hospital{Name: "City Hospital"},
	}
}

func testVolunteer(phone, token string, channels ...types.NotificationChannel) models.Volunteer {
	names := make([]string, 0, len(channels))
	for _, c := range channels {
		names = append(names, string(c))
	}
	return models.Volunteer{
		PhoneNumber:           phone,
		PushNotificationToken: token,
		PushNotificationType:  types.PushProviderFirebase,
		NotificationChannels:  pq.StringArray(names),
	}
}

func TestPushBodyWithDoctorMessage(t *testing.T) {
	body := PushBody("City Hospital", types.AlertLevelLifeOrDeath, "Urgent need")
	assert.Equal(t, "Donation request at hospital City Hospital with level Life or death. Doctor message: Urgent need", body)
}

func TestPushBodyWithoutDoctorMessage(t *testing.T) {
	body := PushBody("City Hospital", types.AlertLevelRoutine, "")
	assert.Equal(t, "Donation request at hospital City Hospital with level Routine.", body)

	// Whitespace-only counts as blank: no dangling sentence or space.
	body = PushBody("City Hospital", types.AlertLevelRoutine, "   ")
	assert.Equal(t, "Donation request at hospital City Hospital with level Routine.", body)
}

func TestPushTitle(t *testing.T) {
	assert.Equal(t, "Life or death alert", PushTitle(types.AlertLevelLifeOrDeath))
	assert.Equal(t, "Routine alert", PushTitle(types.AlertLevelRoutine))
}

func TestBuildPushNotificationsFiltersChannelAndToken(t *testing.T) {
	alert := testAlert(types.AlertLevelUrgent, "bring O-")
	recipients := []models.Volunteer{
		testVolunteer("+962790000001", "token-1", types.ChannelPushNotifications, types.ChannelWhatsAppMessages),
		testVolunteer("+962790000002", "", types.ChannelPushNotifications),        // no token
		testVolunteer("+962790000003", "token-3", types.ChannelWhatsAppMessages), // push disabled
		testVolunteer("+962790000004", "   ", types.ChannelPushNotifications),    // blank token
	}

	records := BuildPushNotifications(alert, recipients)

	require.Len(t, records, 1)
	assert.Equal(t, "token-1", records[0].UserToken)
	assert.Equal(t, "Urgent alert", records[0].Title)
	assert.Equal(t, "Donation request at hospital City Hospital with level Urgent. Doctor message: bring O-", records[0].Body)
	assert.Equal(t, types.PushProviderFirebase, records[0].PushNotificationType)
	assert.False(t, records[0].Sent)
}

func TestBuildWhatsAppMessagesVariableOrder(t *testing.T) {
	alert := testAlert(types.AlertLevelRoutine, "")
	recipients := []models.Volunteer{
		testVolunteer("+962790000001", "token-1", types.ChannelWhatsAppMessages),
	}

	records := BuildWhatsAppMessages(alert, recipients)

	require.Len(t, records, 1)
	assert.Equal(t, "donation_alert", records[0].TemplateName)
	assert.Equal(t, []string{"ROUTINE", ""}, []string(records[0].TemplateVariables))
	assert.Equal(t, "+962790000001", records[0].PhoneNumber)
	assert.False(t, records[0].Sent)
}

func TestBuildOneRecordPerRecipientPerChannel(t *testing.T) {
	alert := testAlert(types.AlertLevelLifeOrDeath, "all hands")

	var recipients []models.Volunteer
	for i := 0; i < 10; i++ {
		recipients = append(recipients, testVolunteer(
			fmt.Sprintf("+96279000%04d", i),
			fmt.Sprintf("token-%d", i),
			types.ChannelPushNotifications,
			types.ChannelWhatsAppMessages,
		))
	}

	pushes := BuildPushNotifications(alert, recipients)
	messages := BuildWhatsAppMessages(alert, recipients)

	assert.Len(t, pushes, 10)
	assert.Len(t, messages, 10)
}
