package repository

import (
	"context"

	"github.com/cloudnotes/cloudnotes-api/internal/models"
	"github.com/cloudnotes/cloudnotes-api/pkg/logger"
	"go.uber.org/zap"
)

// DisabledContactStore is the log-only ContactMessageStore used when Airtable
// credentials are absent. Submissions are logged and dropped; no network call
// is ever made.
type DisabledContactStore struct{}

// NewDisabledContactStore creates a log-only contact message store
func NewDisabledContactStore() *DisabledContactStore {
	return &DisabledContactStore{}
}

func (s *DisabledContactStore) Save(_ context.Context, msg *models.ContactMessage) PersistOutcome {
	logger.Info("Contact form submission (record store not configured)",
		zap.String("name", msg.Name),
		zap.String("email", msg.Email),
		zap.String("subject", msg.Subject),
		zap.String("submitted_at", msg.SubmittedAt),
		zap.String("source_ip", msg.SourceIP),
	)
	return PersistOutcomeDegradedSkipped
}

// DisabledSubscriberStore is the log-only SubscriberStore used when Airtable
// credentials are absent. Every email looks unsubscribed and creates are
// logged and dropped.
type DisabledSubscriberStore struct{}

// NewDisabledSubscriberStore creates a log-only subscriber store
func NewDisabledSubscriberStore() *DisabledSubscriberStore {
	return &DisabledSubscriberStore{}
}

func (s *DisabledSubscriberStore) Exists(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (s *DisabledSubscriberStore) Create(_ context.Context, sub *models.NewsletterSubscriber) SubscribeOutcome {
	logger.Info("Newsletter subscription (record store not configured)",
		zap.String("email", sub.Email),
		zap.String("name", sub.Name),
		zap.String("subscribed_at", sub.SubscribedAt),
	)
	return SubscribeSkipped
}

// Ensure the disabled stores implement their interfaces
var _ ContactMessageStore = (*DisabledContactStore)(nil)
var _ SubscriberStore = (*DisabledSubscriberStore)(nil)
