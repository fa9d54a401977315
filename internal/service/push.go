package service

import (
	"context"
	"fmt"
	"strconv"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type fcmPushService struct {
	client *messaging.Client
}

// NewFCMPushService builds a push service backed by Firebase Cloud
// Messaging. Used for notify events whose recipient has no live session.
func NewFCMPushService(ctx context.Context, credentialsFile string) (PushService, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize FCM client: %w", err)
	}
	return &fcmPushService{client: client}, nil
}

func (s *fcmPushService) Send(ctx context.Context, deviceToken string, kind string, requestID int32) error {
	msg := &messaging.Message{
		Token: deviceToken,
		Data: map[string]string{
			"kind":       kind,
			"request_id": strconv.Itoa(int(requestID)),
		},
	}
	_, err := s.client.Send(ctx, msg)
	return err
}
