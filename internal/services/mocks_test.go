package services_test

import (
	"context"

	"github.com/cloudnotes/cloudnotes-api/internal/models"
	"github.com/cloudnotes/cloudnotes-api/internal/repository"
	"github.com/stretchr/testify/mock"
)

// MockContactMessageStore is a mock implementation of ContactMessageStore
type MockContactMessageStore struct {
	mock.Mock
}

func (m *MockContactMessageStore) Save(ctx context.Context, msg *models.ContactMessage) repository.PersistOutcome {
	args := m.Called(ctx, msg)
	return args.Get(0).(repository.PersistOutcome)
}

// MockSubscriberStore is a mock implementation of SubscriberStore
type MockSubscriberStore struct {
	mock.Mock
}

func (m *MockSubscriberStore) Exists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubscriberStore) Create(ctx context.Context, sub *models.NewsletterSubscriber) repository.SubscribeOutcome {
	args := m.Called(ctx, sub)
	return args.Get(0).(repository.SubscribeOutcome)
}
