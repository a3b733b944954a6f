package request_reschedule

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	Date string `json:"date"` // "2025-10-15"
	Time string `json:"time"` // "10:00" или "10:00:00"
}
