package repository

import (
	"context"

	"github.com/cloudnotes/cloudnotes-api/internal/models"
)

// PersistOutcome is the explicit result of a best-effort write. Callers log
// and count it but never surface DegradedSkipped/DegradedFailed to the client:
// user-facing availability wins over strict durability here.
type PersistOutcome int

const (
	// PersistOutcomePersisted means the record landed in the external store.
	PersistOutcomePersisted PersistOutcome = iota
	// PersistOutcomeDegradedSkipped means no store is configured; the record
	// was logged locally instead.
	PersistOutcomeDegradedSkipped
	// PersistOutcomeDegradedFailed means the store call failed and the record
	// was dropped after logging.
	PersistOutcomeDegradedFailed
)

func (o PersistOutcome) String() string {
	switch o {
	case PersistOutcomePersisted:
		return "persisted"
	case PersistOutcomeDegradedSkipped:
		return "degraded_skipped"
	default:
		return "degraded_failed"
	}
}

// SubscribeOutcome is the tagged result of a subscriber create attempt.
type SubscribeOutcome int

const (
	// SubscribeCreated means a new subscriber record was stored.
	SubscribeCreated SubscribeOutcome = iota
	// SubscribeDuplicate means the store reported the email as already subscribed.
	SubscribeDuplicate
	// SubscribeDegraded means the store call failed for a non-duplicate reason;
	// the subscription is still accepted.
	SubscribeDegraded
	// SubscribeSkipped means no store is configured; the subscriber was logged.
	SubscribeSkipped
)

func (o SubscribeOutcome) String() string {
	switch o {
	case SubscribeCreated:
		return "created"
	case SubscribeDuplicate:
		return "duplicate"
	case SubscribeDegraded:
		return "degraded"
	default:
		return "skipped"
	}
}

// ContactMessageStore persists contact form submissions.
type ContactMessageStore interface {
	// Save writes the message best-effort and reports what happened.
	// It never returns an error: failure is a PersistOutcome, not a fault
	// the request should see.
	Save(ctx context.Context, msg *models.ContactMessage) PersistOutcome
}

// SubscriberStore persists newsletter subscribers keyed by normalized email.
type SubscriberStore interface {
	// Exists reports whether a subscriber with the given normalized email is
	// already stored. Errors are returned so the caller can decide to proceed;
	// the create path remains the authoritative duplicate check.
	Exists(ctx context.Context, email string) (bool, error)

	// Create stores a new subscriber and classifies the result.
	Create(ctx context.Context, sub *models.NewsletterSubscriber) SubscribeOutcome
}
