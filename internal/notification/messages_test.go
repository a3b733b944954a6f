package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/spa-booking-service/internal/domain"
	"github.com/m04kA/spa-booking-service/pkg/ptr"
	"github.com/m04kA/spa-booking-service/pkg/types"
)

func completedView() *domain.BookingView {
	massage := &domain.Service{ID: 1, Name: "Massage", Price: 100, DurationMinutes: 60}
	facial := &domain.Service{ID: 2, Name: "Facial", Price: 50, DurationMinutes: 30}

	view := &domain.BookingView{
		Booking: domain.Booking{
			Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			Time: types.MustTimeString("10:30"),
		},
		Client: domain.Client{Name: "Ana"},
		Lines: []domain.BookingLine{
			domain.NewBookingLine(massage, nil, 2),
			domain.NewBookingLine(facial, nil, 1),
		},
	}
	view.TotalPrice, view.TotalDurationMinutes = domain.Totals(view.Lines)
	return view
}

func TestCompletionForClient(t *testing.T) {
	msg := CompletionForClient(completedView(), "Blue Spa")

	assert.Contains(t, msg.Body, "Hello Ana!")
	assert.Contains(t, msg.Body, "2025-03-14 at 10:30")
	assert.Contains(t, msg.Body, "with "+domain.DefaultProfessionalName)
	assert.Contains(t, msg.Body, "- Massage x2: 200.00")
	assert.Contains(t, msg.Body, "- Facial: 50.00")
	assert.Contains(t, msg.Body, "Total: 250.00")
	assert.Contains(t, msg.Body, "Blue Spa")
}

func TestCompletionForProfessional_DefaultClientName(t *testing.T) {
	view := completedView()
	view.Client.Name = ""

	msg := CompletionForProfessional(view)

	assert.Contains(t, msg.Body, "Client: "+domain.DefaultClientName)
	assert.Contains(t, msg.Body, "Time: 10:30")
	assert.Contains(t, msg.Body, "Total: 250.00")
}

func TestRescheduleDecision(t *testing.T) {
	view := completedView()
	req := &domain.RescheduleRequest{
		RequestedDate: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
		RequestedTime: types.MustTimeString("15:00"),
		OriginalDate:  time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		OriginalTime:  types.MustTimeString("10:30"),
	}

	req.Status = domain.RescheduleStatusAccepted
	accepted := RescheduleDecision(view, req, "")
	assert.Contains(t, accepted.Body, "accepted. New appointment: 2025-03-20 at 15:00")

	req.Status = domain.RescheduleStatusRejected
	req.ResponseMessage = ptr.Ptr("fully booked")
	rejected := RescheduleDecision(view, req, "")
	assert.Contains(t, rejected.Body, "stays on 2025-03-14 at 10:30")
	assert.Contains(t, rejected.Body, "Message: fully booked")
}
