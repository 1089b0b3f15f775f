package types

import "time"

// WhatsAppConfig holds everything the WhatsApp Cloud API sender needs.
// APIURL is the graph base URL; the sender phone id is appended per call.
type WhatsAppConfig struct {
	APIURL        string
	SenderPhoneID string
	BearerToken   string
	Timeout       time.Duration
}
