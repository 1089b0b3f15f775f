package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lifeblood-dev/lifeblood/internal/models"
	"github.com/lifeblood-dev/lifeblood/internal/types"
)

type whatsAppTemplateLanguage struct {
	Code string `json:"code"`
}

type whatsAppTemplate struct {
	Name     string                   `json:"name"`
	Language whatsAppTemplateLanguage `json:"language"`
}

type whatsAppRequest struct {
	MessagingProduct string           `json:"messaging_product"`
	To               string           `json:"to"`
	Type             string           `json:"type"`
	Template         whatsAppTemplate `json:"template"`
}

// WhatsAppClient posts templated messages to the WhatsApp Cloud API. Any
// transport failure or non-2xx response surfaces as one opaque delivery
// error; retry policy lives with the dispatch loop.
type WhatsAppClient struct {
	httpClient *http.Client
	config     types.WhatsAppConfig
}

func NewWhatsAppClient(config types.WhatsAppConfig) *WhatsAppClient {
	return &WhatsAppClient{
		httpClient: &http.Client{Timeout: config.Timeout},
		config:     config,
	}
}

func (c *WhatsAppClient) Send(ctx context.Context, message *models.WhatsAppMessage) error {
	payload := whatsAppRequest{
		MessagingProduct: "whatsapp",
		To:               message.PhoneNumber,
		Type:             "template",
		Template: whatsAppTemplate{
			Name:     message.TemplateName,
			Language: whatsAppTemplateLanguage{Code: "en_US"},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal WhatsApp payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.config.APIURL, c.config.SenderPhoneID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to build WhatsApp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.BearerToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send WhatsApp message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("WhatsApp API returned status %d", resp.StatusCode)
	}

	return nil
}
