package notifications

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/lifeblood-dev/lifeblood/internal/models"
)

// FirebaseSender delivers push records through Firebase Cloud Messaging.
type FirebaseSender struct {
	client *messaging.Client
}

func NewFirebaseSender(ctx context.Context, credentialsFile string) (*FirebaseSender, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create FCM client: %w", err)
	}

	return &FirebaseSender{client: client}, nil
}

func (s *FirebaseSender) Send(ctx context.Context, notification *models.PushNotification) error {
	message := &messaging.Message{
		Token: notification.UserToken,
		Notification: &messaging.Notification{
			Title: notification.Title,
			Body:  notification.Body,
		},
	}

	if _, err := s.client.Send(ctx, message); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}

	return nil
}
