package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cloudnotes/cloudnotes-api/internal/models"
	"github.com/cloudnotes/cloudnotes-api/internal/repository"
	"github.com/cloudnotes/cloudnotes-api/internal/services"
	apperrors "github.com/cloudnotes/cloudnotes-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func validContactRequest() *models.ContactRequest {
	return &models.ContactRequest{
		Name:    "Test User",
		Email:   "test@example.com",
		Subject: "Question about Terraform post",
		Message: "I have a question about the state locking section.",
	}
}

func TestContactService_SubmitContactForm_Success(t *testing.T) {
	mockStore := new(MockContactMessageStore)
	service := services.NewContactService(mockStore)

	mockStore.On("Save", mock.Anything, mock.MatchedBy(func(msg *models.ContactMessage) bool {
		return msg.Name == "Test User" &&
			msg.Email == "test@example.com" &&
			msg.SourceIP == "203.0.113.7"
	})).Return(repository.PersistOutcomePersisted)

	resp, err := service.SubmitContactForm(context.Background(), validContactRequest(), "203.0.113.7")

	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Thank you for your message! We'll get back to you soon.", resp.Message)
	assert.NotEmpty(t, resp.ID)

	mockStore.AssertExpectations(t)
}

func TestContactService_SubmitContactForm_TrimsFieldsBeforeStoring(t *testing.T) {
	mockStore := new(MockContactMessageStore)
	service := services.NewContactService(mockStore)

	req := &models.ContactRequest{
		Name:    "  Test User  ",
		Email:   "  test@example.com ",
		Subject: " Hello ",
		Message: "  This message has surrounding whitespace.  ",
	}

	mockStore.On("Save", mock.Anything, mock.MatchedBy(func(msg *models.ContactMessage) bool {
		return msg.Name == "Test User" &&
			msg.Email == "test@example.com" &&
			msg.Subject == "Hello" &&
			msg.Message == "This message has surrounding whitespace."
	})).Return(repository.PersistOutcomePersisted)

	_, err := service.SubmitContactForm(context.Background(), req, "203.0.113.7")

	assert.NoError(t, err)
	mockStore.AssertExpectations(t)
}

func TestContactService_SubmitContactForm_MissingFields(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*models.ContactRequest)
	}{
		{"missing_name", func(r *models.ContactRequest) { r.Name = "" }},
		{"missing_email", func(r *models.ContactRequest) { r.Email = "" }},
		{"missing_subject", func(r *models.ContactRequest) { r.Subject = "" }},
		{"missing_message", func(r *models.ContactRequest) { r.Message = "" }},
		{"whitespace_only_name", func(r *models.ContactRequest) { r.Name = "   " }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockStore := new(MockContactMessageStore)
			service := services.NewContactService(mockStore)

			req := validContactRequest()
			tc.mutate(req)

			resp, err := service.SubmitContactForm(context.Background(), req, "203.0.113.7")

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			assert.EqualError(t, err, "All fields are required")
			mockStore.AssertNotCalled(t, "Save")
		})
	}
}

func TestContactService_SubmitContactForm_InvalidEmail(t *testing.T) {
	testCases := []string{
		"not-an-email",
		"missing@domain",
		"@nodomain.com",
		"spaces in@example.com",
		"two@@example.com",
	}

	for _, email := range testCases {
		t.Run(email, func(t *testing.T) {
			mockStore := new(MockContactMessageStore)
			service := services.NewContactService(mockStore)

			req := validContactRequest()
			req.Email = email

			resp, err := service.SubmitContactForm(context.Background(), req, "203.0.113.7")

			assert.Nil(t, resp)
			var verr *apperrors.ValidationError
			assert.ErrorAs(t, err, &verr)
			assert.Equal(t, "Invalid email format", verr.Message)
			mockStore.AssertNotCalled(t, "Save")
		})
	}
}

func TestContactService_SubmitContactForm_MessageTooShort(t *testing.T) {
	mockStore := new(MockContactMessageStore)
	service := services.NewContactService(mockStore)

	req := validContactRequest()
	req.Message = "Too short"

	resp, err := service.SubmitContactForm(context.Background(), req, "203.0.113.7")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.EqualError(t, err, "message: Message must be at least 10 characters long")
	mockStore.AssertNotCalled(t, "Save")
}

func TestContactService_SubmitContactForm_MessageLengthCheckedAfterTrim(t *testing.T) {
	mockStore := new(MockContactMessageStore)
	service := services.NewContactService(mockStore)

	req := validContactRequest()
	// 9 characters once the padding is stripped
	req.Message = "   " + strings.Repeat("a", 9) + "   "

	resp, err := service.SubmitContactForm(context.Background(), req, "203.0.113.7")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	mockStore.AssertNotCalled(t, "Save")
}

func TestContactService_SubmitContactForm_StoreFailureStillSucceeds(t *testing.T) {
	mockStore := new(MockContactMessageStore)
	service := services.NewContactService(mockStore)

	mockStore.On("Save", mock.Anything, mock.Anything).
		Return(repository.PersistOutcomeDegradedFailed)

	resp, err := service.SubmitContactForm(context.Background(), validContactRequest(), "203.0.113.7")

	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.ID)
	mockStore.AssertExpectations(t)
}

func TestContactService_SubmitContactForm_UnknownSourceIP(t *testing.T) {
	mockStore := new(MockContactMessageStore)
	service := services.NewContactService(mockStore)

	mockStore.On("Save", mock.Anything, mock.MatchedBy(func(msg *models.ContactMessage) bool {
		return msg.SourceIP == "unknown"
	})).Return(repository.PersistOutcomePersisted)

	_, err := service.SubmitContactForm(context.Background(), validContactRequest(), "")

	assert.NoError(t, err)
	mockStore.AssertExpectations(t)
}

func TestContactService_SubmitContactForm_SubmittedAtIsRFC3339(t *testing.T) {
	mockStore := new(MockContactMessageStore)
	service := services.NewContactService(mockStore)

	var captured *models.ContactMessage
	mockStore.On("Save", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*models.ContactMessage)
		}).
		Return(repository.PersistOutcomePersisted)

	_, err := service.SubmitContactForm(context.Background(), validContactRequest(), "203.0.113.7")

	assert.NoError(t, err)
	_, parseErr := time.Parse(time.RFC3339, captured.SubmittedAt)
	assert.NoError(t, parseErr)
}
