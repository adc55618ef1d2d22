package push

import (
	"context"
	"errors"
	"sync"

	"jobvibes_backend/internal/logger"
	"jobvibes_backend/internal/repositories"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var ErrNoCredential = errors.New("push credential not configured")

// FCMSender sends through Firebase Cloud Messaging. The messaging client is
// built lazily from the service-account key stored in the database, once, on
// first send.
type FCMSender struct {
	users repositories.UserRepository

	mu     sync.Mutex
	client *messaging.Client
}

func NewFCMSender(users repositories.UserRepository) *FCMSender {
	return &FCMSender{users: users}
}

func (s *FCMSender) Send(ctx context.Context, msg Message) error {
	client, err := s.getClient(ctx)
	if err != nil {
		return err
	}

	_, err = client.Send(ctx, &messaging.Message{
		Token: msg.Token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
	})
	return err
}

func (s *FCMSender) getClient(ctx context.Context) (*messaging.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return s.client, nil
	}

	cred, err := s.users.GetFirebaseCredential()
	if err != nil {
		return nil, ErrNoCredential
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON([]byte(cred.Data)))
	if err != nil {
		return nil, err
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, err
	}

	s.client = client
	logger.Info("firebase messaging client initialized")
	return s.client, nil
}
