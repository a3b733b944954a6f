package domain

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Client represents a spa guest identified by phone number
type Client struct {
	ID         uuid.UUID
	Name       string
	Phone      string
	Email      string
	Notes      *string
	RoomNumber *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasRealEmail returns true if the client email is not a generated placeholder
func (c *Client) HasRealEmail() bool {
	return c.Email != "" && !IsPlaceholderEmail(c.Email)
}

// PlaceholderEmail builds the synthetic email stored for clients that did not provide one
func PlaceholderEmail(phone string) string {
	return PlaceholderEmailPrefix + DigitsOnly(phone) + "@" + PlaceholderEmailDomain
}

// IsPlaceholderEmail returns true if email was produced by PlaceholderEmail
func IsPlaceholderEmail(email string) bool {
	return strings.HasPrefix(email, PlaceholderEmailPrefix) &&
		strings.HasSuffix(email, "@"+PlaceholderEmailDomain)
}

// DigitsOnly strips everything except digits, used to compare phone numbers
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
