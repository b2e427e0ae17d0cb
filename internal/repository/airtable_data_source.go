package repository

import (
	"context"

	"github.com/cloudnotes/cloudnotes-api/internal/models"
	"github.com/cloudnotes/cloudnotes-api/pkg/airtable"
	"github.com/cloudnotes/cloudnotes-api/pkg/logger"
	"go.uber.org/zap"
)

// Airtable field names for the contact messages table
const (
	contactFieldName      = "Name"
	contactFieldEmail     = "Email"
	contactFieldSubject   = "Subject"
	contactFieldMessage   = "Message"
	contactFieldSubmitted = "Submitted"
	contactFieldIP        = "IP Address"
	contactFieldStatus    = "Status"

	contactStatusNew = "New"
)

// Airtable field names for the subscribers table
const (
	subscriberFieldEmail        = "Email"
	subscriberFieldName         = "Name"
	subscriberFieldSubscribedAt = "Subscribed At"
	subscriberFieldStatus       = "Status"
	subscriberFieldSource       = "Source"
)

// AirtableContactStore implements ContactMessageStore against Airtable
type AirtableContactStore struct {
	client *airtable.Client
	table  string
}

// NewAirtableContactStore creates an Airtable-backed contact message store
func NewAirtableContactStore(client *airtable.Client, table string) *AirtableContactStore {
	return &AirtableContactStore{client: client, table: table}
}

// Save writes the contact message to Airtable. A failed write is logged and
// reported as degraded; it never fails the caller.
func (s *AirtableContactStore) Save(ctx context.Context, msg *models.ContactMessage) PersistOutcome {
	fields := map[string]interface{}{
		contactFieldName:      msg.Name,
		contactFieldEmail:     msg.Email,
		contactFieldSubject:   msg.Subject,
		contactFieldMessage:   msg.Message,
		contactFieldSubmitted: msg.SubmittedAt,
		contactFieldIP:        msg.SourceIP,
		contactFieldStatus:    contactStatusNew,
	}

	recordID, err := s.client.CreateRecord(ctx, s.table, fields)
	if err != nil {
		logger.Warn("Contact message not persisted, continuing",
			zap.String("email", msg.Email),
			zap.Error(err))
		return PersistOutcomeDegradedFailed
	}

	logger.Info("Contact message stored",
		zap.String("record_id", recordID))
	return PersistOutcomePersisted
}

// AirtableSubscriberStore implements SubscriberStore against Airtable
type AirtableSubscriberStore struct {
	client *airtable.Client
	table  string
}

// NewAirtableSubscriberStore creates an Airtable-backed subscriber store
func NewAirtableSubscriberStore(client *airtable.Client, table string) *AirtableSubscriberStore {
	return &AirtableSubscriberStore{client: client, table: table}
}

// Exists checks for a subscriber record with the given normalized email.
func (s *AirtableSubscriberStore) Exists(ctx context.Context, email string) (bool, error) {
	_, found, err := s.client.FindFirstByField(ctx, s.table, subscriberFieldEmail, email)
	if err != nil {
		return false, err
	}
	return found, nil
}

// Create stores a new subscriber record. The store's duplicate signal is
// authoritative: two concurrent signups can both pass the existence pre-check.
func (s *AirtableSubscriberStore) Create(ctx context.Context, sub *models.NewsletterSubscriber) SubscribeOutcome {
	fields := map[string]interface{}{
		subscriberFieldEmail:        sub.Email,
		subscriberFieldName:         sub.Name,
		subscriberFieldSubscribedAt: sub.SubscribedAt,
		subscriberFieldStatus:       sub.Status,
		subscriberFieldSource:       sub.Source,
	}

	outcome, recordID, err := s.client.CreateRecordUnique(ctx, s.table, fields)
	switch outcome {
	case airtable.CreateUniqueCreated:
		logger.Info("Newsletter subscriber stored",
			zap.String("record_id", recordID))
		return SubscribeCreated
	case airtable.CreateUniqueAlreadyExists:
		logger.Info("Newsletter subscriber already exists",
			zap.String("email", sub.Email))
		return SubscribeDuplicate
	default:
		logger.Warn("Newsletter subscriber not persisted, accepting anyway",
			zap.String("email", sub.Email),
			zap.Error(err))
		return SubscribeDegraded
	}
}

// Ensure the Airtable stores implement their interfaces
var _ ContactMessageStore = (*AirtableContactStore)(nil)
var _ SubscriberStore = (*AirtableSubscriberStore)(nil)
