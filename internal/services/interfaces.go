package services

import (
	"context"

	"github.com/cloudnotes/cloudnotes-api/internal/models"
)

// ContactServiceInterface defines the contract for contact form operations
type ContactServiceInterface interface {
	SubmitContactForm(ctx context.Context, req *models.ContactRequest, sourceIP string) (*models.ContactResponse, error)
}

// NewsletterServiceInterface defines the contract for newsletter operations
type NewsletterServiceInterface interface {
	Subscribe(ctx context.Context, req *models.SubscribeRequest) (*models.SubscriptionData, error)
}

// Ensure services implement their interfaces
var _ ContactServiceInterface = (*ContactService)(nil)
var _ NewsletterServiceInterface = (*NewsletterService)(nil)
