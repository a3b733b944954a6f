package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/spa-booking-service/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusScheduled BookingStatus = "scheduled"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// FinalStatuses statuses that close the booking lifecycle
var FinalStatuses = []BookingStatus{StatusCompleted, StatusCancelled}

// IsValid returns true if the status is one of the known booking statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsFinal returns true if the status closes the booking lifecycle
func (s BookingStatus) IsFinal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Booking represents a spa appointment
type Booking struct {
	ID             uuid.UUID
	ClientID       uuid.UUID
	ProfessionalID *uuid.UUID
	Date           time.Time
	Time           types.TimeString
	Status         BookingStatus

	CompletedAt *time.Time
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Items []BookingItem
}

// FormattedDate returns the booking date in DateFormat
func (b *Booking) FormattedDate() string {
	return b.Date.Format(DateFormat)
}

// BookingItem is a line item of a booking: a service, an optional price variation and a quantity
type BookingItem struct {
	ServiceID   int64
	VariationID *int64
	Quantity    int
}

// BookingLine is a booking item enriched with catalog data.
// Unit values come from the variation when one is selected.
type BookingLine struct {
	ServiceID       int64
	ServiceName     string
	VariationID     *int64
	VariationName   *string
	UnitPrice       float64
	DurationMinutes int
	Quantity        int
}

// Subtotal returns the line price contribution
func (l BookingLine) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// TotalDuration returns the line duration contribution in minutes
func (l BookingLine) TotalDuration() int {
	return l.DurationMinutes * l.Quantity
}

// NewBookingLine builds an enriched line from a catalog service.
// A nil variation means the base service price and duration are used.
func NewBookingLine(service *Service, variation *PriceVariation, quantity int) BookingLine {
	if quantity < 1 {
		quantity = DefaultQuantity
	}

	line := BookingLine{
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		UnitPrice:       service.Price,
		DurationMinutes: service.DurationMinutes,
		Quantity:        quantity,
	}

	if variation != nil {
		id := variation.ID
		line.VariationID = &id
		line.VariationName = variation.Name
		line.UnitPrice = variation.Price
		line.DurationMinutes = variation.DurationMinutes
	}

	return line
}

// Totals sums price and duration over the lines. Totals are never stored.
func Totals(lines []BookingLine) (price float64, durationMinutes int) {
	for _, l := range lines {
		price += l.Subtotal()
		durationMinutes += l.TotalDuration()
	}
	return price, durationMinutes
}
