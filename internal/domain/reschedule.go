package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/spa-booking-service/pkg/types"
)

// RescheduleStatus represents the state of a reschedule request
type RescheduleStatus string

const (
	RescheduleStatusPending  RescheduleStatus = "pending"
	RescheduleStatusAccepted RescheduleStatus = "accepted"
	RescheduleStatusRejected RescheduleStatus = "rejected"
)

// RescheduleDecision is the staff answer to a reschedule request
type RescheduleDecision string

const (
	DecisionAccept RescheduleDecision = "accept"
	DecisionReject RescheduleDecision = "reject"
)

// IsValid returns true for accept and reject
func (d RescheduleDecision) IsValid() bool {
	return d == DecisionAccept || d == DecisionReject
}

// Status returns the request status the decision leads to
func (d RescheduleDecision) Status() RescheduleStatus {
	if d == DecisionAccept {
		return RescheduleStatusAccepted
	}
	return RescheduleStatusRejected
}

// RequestedByClient is the only originator of reschedule requests
const RequestedByClient = "client"

// RescheduleRequest is a client proposal to move a booking.
// OriginalDate/OriginalTime are a snapshot of the booking at request time.
type RescheduleRequest struct {
	ID              uuid.UUID
	BookingID       uuid.UUID
	RequestedDate   time.Time
	RequestedTime   types.TimeString
	OriginalDate    time.Time
	OriginalTime    types.TimeString
	Status          RescheduleStatus
	RequestedBy     string
	ResponseMessage *string
	RespondedBy     *string
	CreatedAt       time.Time
	RespondedAt     *time.Time
}

// IsPending returns true while the request awaits a decision
func (r *RescheduleRequest) IsPending() bool {
	return r.Status == RescheduleStatusPending
}

// RelevantReschedule picks the request shown with a booking:
// the pending one, otherwise the latest created, otherwise nil
func RelevantReschedule(requests []RescheduleRequest) *RescheduleRequest {
	var latest *RescheduleRequest
	for i := range requests {
		r := &requests[i]
		if r.IsPending() {
			return r
		}
		if latest == nil || r.CreatedAt.After(latest.CreatedAt) {
			latest = r
		}
	}
	return latest
}
