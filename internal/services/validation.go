package services

import (
	"regexp"
	"strings"
)

// emailPattern mirrors the website's client-side check: something before the
// @, something after it, and at least one dot in the domain part. Anything
// stricter rejects addresses the frontend already accepted.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// normalizeEmail trims and lowercases an email so it can act as the
// uniqueness key in the subscriber store.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
