package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/spa-booking-service/pkg/types"
)

// BookingsFilter фильтр для выборки бронирований
// Professional/date/time уходят в SQL, service/client применяются после обогащения
type BookingsFilter struct {
	ProfessionalID *uuid.UUID
	ServiceID      *int64
	ClientQuery    string            // подстрока имени, email или телефона клиента
	ClientPhone    *string           // точное совпадение телефона (портал клиента)
	Time           *types.TimeString // точное время, имеет приоритет над диапазоном
	TimeFrom       *types.TimeString
	TimeTo         *types.TimeString
	DateFrom       *time.Time
	DateTo         *time.Time
}

// HasExactTime returns true if the exact time filter is set
func (f BookingsFilter) HasExactTime() bool {
	return f.Time != nil && !f.Time.IsZero()
}

// BookingView is a booking enriched with client, professional, lines, totals
// and the most relevant reschedule request
type BookingView struct {
	Booking      Booking
	Client       Client
	Professional *Professional
	Lines        []BookingLine
	Reschedule   *RescheduleRequest

	TotalPrice           float64
	TotalDurationMinutes int
}

// FormatPrice renders a price with two decimals
func FormatPrice(price float64) string {
	return fmt.Sprintf("%.2f", price)
}

// TotalPriceString returns the total price with two decimals
func (v *BookingView) TotalPriceString() string {
	return FormatPrice(v.TotalPrice)
}

// HasService returns true if any line references the service
func (v *BookingView) HasService(serviceID int64) bool {
	for _, l := range v.Lines {
		if l.ServiceID == serviceID {
			return true
		}
	}
	return false
}
