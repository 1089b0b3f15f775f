package types

// NotificationChannel names a delivery channel a volunteer can enable.
type NotificationChannel string

const (
	ChannelPushNotifications NotificationChannel = "PUSH_NOTIFICATIONS"
	ChannelWhatsAppMessages  NotificationChannel = "WHATSAPP_MESSAGES"
)

// AllChannels returns every channel name; new volunteers start with all of
// them enabled.
func AllChannels() []string {
	return []string{
		string(ChannelPushNotifications),
		string(ChannelWhatsAppMessages),
	}
}

// PushProvider tags a push notification record with the provider back-end
// that must deliver it.
type PushProvider string

const (
	PushProviderFirebase PushProvider = "FIREBASE"
	PushProviderAPNS     PushProvider = "APPLE_PUSH_NOTIFICATION"
)
