package patch_bookings

// Действия PATCH /bookings
const (
	ActionReschedule        = "reschedule"
	ActionRespondReschedule = "respond-reschedule"
)

// actionEnvelope общая часть тела запроса, по action выбирается вариант
type actionEnvelope struct {
	Action string `json:"action"`
}

// RescheduleAction action=reschedule
type RescheduleAction struct {
	BookingID string `json:"bookingId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

// RespondRescheduleAction action=respond-reschedule
type RespondRescheduleAction struct {
	RequestID       string  `json:"requestId"`
	Decision        string  `json:"decision"`
	ResponseMessage *string `json:"responseMessage,omitempty"`
	RespondedBy     *string `json:"respondedBy,omitempty"`
}
