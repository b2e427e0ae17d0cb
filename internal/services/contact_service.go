package services

import (
	"context"
	"strings"
	"time"

	"github.com/cloudnotes/cloudnotes-api/internal/models"
	"github.com/cloudnotes/cloudnotes-api/internal/repository"
	apperrors "github.com/cloudnotes/cloudnotes-api/pkg/errors"
	"github.com/cloudnotes/cloudnotes-api/pkg/logger"
	"github.com/cloudnotes/cloudnotes-api/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	minMessageLength = 10

	contactSuccessMessage = "Thank you for your message! We'll get back to you soon."
)

// ContactService handles contact form submissions
type ContactService struct {
	store repository.ContactMessageStore
}

// NewContactService creates a new contact service
func NewContactService(store repository.ContactMessageStore) *ContactService {
	return &ContactService{store: store}
}

// SubmitContactForm validates a submission and forwards it to the message
// store best-effort. A valid submission always succeeds from the caller's
// point of view, even when the store write fails.
func (s *ContactService) SubmitContactForm(ctx context.Context, req *models.ContactRequest, sourceIP string) (*models.ContactResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	subject := strings.TrimSpace(req.Subject)
	message := strings.TrimSpace(req.Message)

	if name == "" || email == "" || subject == "" || message == "" {
		metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
		return nil, apperrors.NewValidationError("", "All fields are required")
	}

	if !isValidEmail(email) {
		metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
		return nil, apperrors.NewValidationError("email", "Invalid email format")
	}

	if len(message) < minMessageLength {
		metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
		return nil, apperrors.NewValidationError("message", "Message must be at least 10 characters long")
	}

	if sourceIP == "" {
		sourceIP = "unknown"
	}

	msg := &models.ContactMessage{
		Name:        name,
		Email:       email,
		Subject:     subject,
		Message:     message,
		SubmittedAt: time.Now().UTC().Format(time.RFC3339),
		SourceIP:    sourceIP,
	}

	outcome := s.store.Save(ctx, msg)
	metrics.ContactSubmissions.WithLabelValues(outcome.String()).Inc()

	logger.Info("Contact form submitted",
		zap.String("email", email),
		zap.String("outcome", outcome.String()),
		zap.String("source_ip", sourceIP))

	return &models.ContactResponse{
		Success: true,
		Message: contactSuccessMessage,
		ID:      uuid.NewString(),
	}, nil
}
