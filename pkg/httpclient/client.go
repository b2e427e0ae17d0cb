package httpclient

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds any single call to an external service so a slow
// dependency cannot hang request handling.
const DefaultTimeout = 10 * time.Second

// New returns an *http.Client with the given timeout, for SDKs that accept a
// custom client (the Airtable SDK does).
func New(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
