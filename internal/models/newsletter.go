package models

const (
	// SubscriberStatusActive is the status every new subscriber record gets.
	SubscriberStatusActive = "active"
	// SubscriberSourceWebsite identifies the origin channel of a signup.
	SubscriberSourceWebsite = "website"
)

// SubscribeRequest represents a newsletter subscription payload
type SubscribeRequest struct {
	Email string `json:"email" binding:"max=254"`
	Name  string `json:"name" binding:"max=200"`
}

// SubscriptionData is the payload echoed back on a successful subscription
type SubscriptionData struct {
	Email        string `json:"email"`
	SubscribedAt string `json:"subscribedAt"`
}

// SubscribeResponse represents the response after a subscription attempt
type SubscribeResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    *SubscriptionData `json:"data,omitempty"`
}

// NewsletterSubscriber is the record created in the external store. Email is
// normalized (lowercased, trimmed) and acts as the uniqueness key.
type NewsletterSubscriber struct {
	Email        string
	Name         string
	SubscribedAt string // RFC 3339
	Status       string
	Source       string
}
