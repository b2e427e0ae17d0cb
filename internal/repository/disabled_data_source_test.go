package repository

import (
	"context"
	"testing"

	"github.com/cloudnotes/cloudnotes-api/internal/models"
	"github.com/cloudnotes/cloudnotes-api/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func init() {
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

func TestDisabledContactStore_SaveIsDegradedSkipped(t *testing.T) {
	store := NewDisabledContactStore()

	outcome := store.Save(context.Background(), &models.ContactMessage{
		Name:        "Test User",
		Email:       "test@example.com",
		Subject:     "Hello",
		Message:     "This is a long enough message.",
		SubmittedAt: "2026-08-31T12:00:00Z",
		SourceIP:    "203.0.113.7",
	})

	assert.Equal(t, PersistOutcomeDegradedSkipped, outcome)
}

func TestDisabledSubscriberStore_NeverFindsAndSkipsCreates(t *testing.T) {
	store := NewDisabledSubscriberStore()

	exists, err := store.Exists(context.Background(), "test@example.com")
	assert.NoError(t, err)
	assert.False(t, exists)

	outcome := store.Create(context.Background(), &models.NewsletterSubscriber{
		Email:        "test@example.com",
		SubscribedAt: "2026-08-31T12:00:00Z",
		Status:       models.SubscriberStatusActive,
		Source:       models.SubscriberSourceWebsite,
	})
	assert.Equal(t, SubscribeSkipped, outcome)
}

func TestOutcomeStrings(t *testing.T) {
	assert.Equal(t, "persisted", PersistOutcomePersisted.String())
	assert.Equal(t, "degraded_skipped", PersistOutcomeDegradedSkipped.String())
	assert.Equal(t, "degraded_failed", PersistOutcomeDegradedFailed.String())

	assert.Equal(t, "created", SubscribeCreated.String())
	assert.Equal(t, "duplicate", SubscribeDuplicate.String())
	assert.Equal(t, "degraded", SubscribeDegraded.String())
	assert.Equal(t, "skipped", SubscribeSkipped.String())
}
