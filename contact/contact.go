// Package contact forwards contact-form submissions to a hosted form backend.
package contact

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrInvalidSubmission = errors.New("invalid submission")
	ErrRateLimited       = errors.New("too many submissions")
	ErrInProgress        = errors.New("submission already in progress")
	ErrRejected          = errors.New("form backend rejected submission")
	ErrNotConfigured     = errors.New("contact form not configured")
)

const MaxMessageLength = 5000

type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Company string `json:"company,omitempty"`

	// Website is the honeypot field. People never see it; bots fill it in.
	Website string `json:"company_website,omitempty"`
}

// Receipt acknowledges a forwarded submission.
type Receipt struct {
	ID         string    `json:"id"`
	ReceivedAt time.Time `json:"receivedAt"`
}

func (s Submission) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidSubmission)
	}
	if strings.TrimSpace(s.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidSubmission)
	}
	if _, err := mail.ParseAddress(s.Email); err != nil {
		return fmt.Errorf("%w: invalid email address", ErrInvalidSubmission)
	}
	if strings.TrimSpace(s.Message) == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidSubmission)
	}
	if n := utf8.RuneCountInString(s.Message); n > MaxMessageLength {
		return fmt.Errorf("%w: message is %d characters, limit is %d", ErrInvalidSubmission, n, MaxMessageLength)
	}
	return nil
}

// IsBot reports whether the honeypot field was filled.
func (s Submission) IsBot() bool {
	return s.Website != ""
}

func (s Submission) key() string {
	return strings.ToLower(strings.TrimSpace(s.Email)) + "\x00" + strings.TrimSpace(s.Message)
}
