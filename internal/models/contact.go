package models

// ContactRequest represents a contact form submission payload.
// Required/empty checks happen in the service after trimming, so the binding
// tags only guard structural limits.
type ContactRequest struct {
	Name    string `json:"name" binding:"max=200"`
	Email   string `json:"email" binding:"max=254"`
	Subject string `json:"subject" binding:"max=300"`
	Message string `json:"message" binding:"max=10000"`
}

// ContactResponse represents the response after submitting the contact form
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

// ContactMessage is the record forwarded to the external store. It is built
// per request and discarded afterwards; nothing is retained locally.
type ContactMessage struct {
	Name        string
	Email       string
	Subject     string
	Message     string
	SubmittedAt string // RFC 3339
	SourceIP    string // "unknown" when the client address cannot be determined
}
