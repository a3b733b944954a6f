package notification

import (
	"fmt"
	"strings"

	"github.com/m04kA/spa-booking-service/internal/domain"
)

// CompletionForClient сообщение клиенту о завершённом визите со списком услуг и итогом
func CompletionForClient(view *domain.BookingView, businessName string) Message {
	var b strings.Builder

	fmt.Fprintf(&b, "Hello %s!\n\n", clientName(view))
	fmt.Fprintf(&b, "Your appointment on %s at %s with %s is complete.\n\n",
		view.Booking.FormattedDate(), view.Booking.Time.Short(), professionalName(view))
	writeServices(&b, view)
	if businessName != "" {
		fmt.Fprintf(&b, "\nThank you for visiting %s!", businessName)
	} else {
		b.WriteString("\nThank you for your visit!")
	}

	return Message{
		Subject: "Your appointment is complete",
		Body:    b.String(),
	}
}

// CompletionForProfessional сообщение профессионалу о завершённом визите
func CompletionForProfessional(view *domain.BookingView) Message {
	var b strings.Builder

	b.WriteString("Appointment completed\n\n")
	fmt.Fprintf(&b, "Client: %s\n", clientName(view))
	fmt.Fprintf(&b, "Date: %s\n", view.Booking.FormattedDate())
	fmt.Fprintf(&b, "Time: %s\n\n", view.Booking.Time.Short())
	writeServices(&b, view)

	return Message{
		Subject: "Appointment completed",
		Body:    b.String(),
	}
}

// RescheduleDecision сообщение клиенту о решении по заявке на перенос
func RescheduleDecision(view *domain.BookingView, req *domain.RescheduleRequest, businessName string) Message {
	var b strings.Builder

	fmt.Fprintf(&b, "Hello %s!\n\n", clientName(view))

	subject := "Your reschedule request was declined"
	if req.Status == domain.RescheduleStatusAccepted {
		subject = "Your reschedule request was accepted"
		fmt.Fprintf(&b, "Your reschedule request was accepted. New appointment: %s at %s.",
			req.RequestedDate.Format(domain.DateFormat), req.RequestedTime.Short())
	} else {
		fmt.Fprintf(&b, "Your reschedule request was declined. Your appointment stays on %s at %s.",
			req.OriginalDate.Format(domain.DateFormat), req.OriginalTime.Short())
	}

	if req.ResponseMessage != nil && *req.ResponseMessage != "" {
		fmt.Fprintf(&b, "\n\nMessage: %s", *req.ResponseMessage)
	}
	if businessName != "" {
		fmt.Fprintf(&b, "\n\n%s", businessName)
	}

	return Message{
		Subject: subject,
		Body:    b.String(),
	}
}

func writeServices(b *strings.Builder, view *domain.BookingView) {
	b.WriteString("Services:\n")
	for _, line := range view.Lines {
		name := line.ServiceName
		if line.VariationName != nil && *line.VariationName != "" {
			name += " (" + *line.VariationName + ")"
		}
		if line.Quantity > 1 {
			fmt.Fprintf(b, "- %s x%d: %s\n", name, line.Quantity, domain.FormatPrice(line.Subtotal()))
		} else {
			fmt.Fprintf(b, "- %s: %s\n", name, domain.FormatPrice(line.Subtotal()))
		}
	}
	fmt.Fprintf(b, "Total: %s\n", view.TotalPriceString())
}

func clientName(view *domain.BookingView) string {
	if view.Client.Name != "" {
		return view.Client.Name
	}
	return domain.DefaultClientName
}

func professionalName(view *domain.BookingView) string {
	if view.Professional != nil && view.Professional.Name != "" {
		return view.Professional.Name
	}
	return domain.DefaultProfessionalName
}
