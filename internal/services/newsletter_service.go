package services

import (
	"context"
	"strings"
	"time"

	"github.com/cloudnotes/cloudnotes-api/internal/cache"
	"github.com/cloudnotes/cloudnotes-api/internal/models"
	"github.com/cloudnotes/cloudnotes-api/internal/repository"
	apperrors "github.com/cloudnotes/cloudnotes-api/pkg/errors"
	"github.com/cloudnotes/cloudnotes-api/pkg/logger"
	"github.com/cloudnotes/cloudnotes-api/pkg/metrics"
	"go.uber.org/zap"
)

const duplicateSubscriberMessage = "This email is already subscribed to our newsletter"

// NewsletterService handles newsletter subscriptions
type NewsletterService struct {
	store repository.SubscriberStore
	cache *cache.SubscriberCache
}

// NewNewsletterService creates a new newsletter service
func NewNewsletterService(store repository.SubscriberStore, subscriberCache *cache.SubscriberCache) *NewsletterService {
	return &NewsletterService{
		store: store,
		cache: subscriberCache,
	}
}

// Subscribe validates and normalizes the email, rejects known duplicates, and
// creates the subscriber record. The create call is the authoritative
// duplicate check; the cache and the existence pre-check only cut traffic.
// When the store fails for a non-duplicate reason the subscription is still
// accepted: losing a signup hurts more than double-writing one.
func (s *NewsletterService) Subscribe(ctx context.Context, req *models.SubscribeRequest) (*models.SubscriptionData, error) {
	if strings.TrimSpace(req.Email) == "" {
		metrics.NewsletterSignups.WithLabelValues("invalid").Inc()
		return nil, apperrors.NewValidationError("email", "Email address is required")
	}

	email := normalizeEmail(req.Email)
	if !isValidEmail(email) {
		metrics.NewsletterSignups.WithLabelValues("invalid").Inc()
		return nil, apperrors.NewValidationError("email", "Please enter a valid email address")
	}

	if s.cache.IsSubscribed(email) {
		metrics.NewsletterSignups.WithLabelValues("duplicate").Inc()
		return nil, apperrors.NewConflictError(duplicateSubscriberMessage)
	}

	exists, err := s.store.Exists(ctx, email)
	if err != nil {
		// Pre-check failure is not fatal; the create path still catches
		// duplicates.
		logger.Warn("Subscriber existence check failed, proceeding to create",
			zap.String("email", email),
			zap.Error(err))
	} else if exists {
		s.cache.MarkSubscribed(email)
		metrics.NewsletterSignups.WithLabelValues("duplicate").Inc()
		return nil, apperrors.NewConflictError(duplicateSubscriberMessage)
	}

	subscribedAt := time.Now().UTC().Format(time.RFC3339)
	sub := &models.NewsletterSubscriber{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		SubscribedAt: subscribedAt,
		Status:       models.SubscriberStatusActive,
		Source:       models.SubscriberSourceWebsite,
	}

	outcome := s.store.Create(ctx, sub)
	metrics.NewsletterSignups.WithLabelValues(outcome.String()).Inc()

	switch outcome {
	case repository.SubscribeDuplicate:
		s.cache.MarkSubscribed(email)
		return nil, apperrors.NewConflictError(duplicateSubscriberMessage)
	case repository.SubscribeCreated:
		s.cache.MarkSubscribed(email)
	}

	logger.Info("Newsletter subscription accepted",
		zap.String("email", email),
		zap.String("outcome", outcome.String()))

	return &models.SubscriptionData{
		Email:        email,
		SubscribedAt: subscribedAt,
	}, nil
}
