package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/spa-booking-service/internal/domain"
	"github.com/m04kA/spa-booking-service/pkg/types"
)

var (
	// ErrInvalidFilter возвращается при некорректном параметре фильтра
	ErrInvalidFilter = errors.New("invalid bookings filter")
)

// Request модели

// ListBookingsRequest параметры выборки бронирований (query string)
type ListBookingsRequest struct {
	ProfessionalID string `json:"professionalId,omitempty"`
	ServiceID      string `json:"serviceId,omitempty"`
	Client         string `json:"client,omitempty"`   // подстрока имени, email или телефона
	Time           string `json:"time,omitempty"`     // точное время, имеет приоритет над диапазоном
	TimeFrom       string `json:"timeFrom,omitempty"` // начало диапазона времени
	TimeTo         string `json:"timeTo,omitempty"`   // конец диапазона времени
	From           string `json:"from,omitempty"`     // начальная дата (YYYY-MM-DD)
	To             string `json:"to,omitempty"`       // конечная дата (YYYY-MM-DD)
}

// ToDomainFilter конвертирует request в domain фильтр
// Пустые параметры игнорируются
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	var filter domain.BookingsFilter

	if v := strings.TrimSpace(r.ProfessionalID); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, fmt.Errorf("%w: professional_id: %v", ErrInvalidFilter, err)
		}
		filter.ProfessionalID = &id
	}

	if v := strings.TrimSpace(r.ServiceID); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("%w: service_id: %v", ErrInvalidFilter, err)
		}
		filter.ServiceID = &id
	}

	filter.ClientQuery = strings.TrimSpace(r.Client)

	var err error
	if filter.Time, err = parseTime("time", r.Time); err != nil {
		return filter, err
	}
	if filter.TimeFrom, err = parseTime("time_from", r.TimeFrom); err != nil {
		return filter, err
	}
	if filter.TimeTo, err = parseTime("time_to", r.TimeTo); err != nil {
		return filter, err
	}
	if filter.DateFrom, err = parseDate("from", r.From); err != nil {
		return filter, err
	}
	if filter.DateTo, err = parseDate("to", r.To); err != nil {
		return filter, err
	}

	return filter, nil
}

func parseTime(name, value string) (*types.TimeString, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := types.NewTimeStringFromString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFilter, name, err)
	}
	return &t, nil
}

func parseDate(name, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	d, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: expected YYYY-MM-DD", ErrInvalidFilter, name)
	}
	return &d, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID     string `json:"id"`
	Date   string `json:"date"` // "2025-10-15"
	Time   string `json:"time"` // "10:00:00"
	Status string `json:"status"`

	ClientID         string  `json:"clientId"`
	ClientName       string  `json:"clientName"`
	ClientPhone      string  `json:"clientPhone"`
	ClientEmail      string  `json:"clientEmail"`
	ClientRoomNumber *string `json:"clientRoomNumber,omitempty"`

	ProfessionalID   *string `json:"professionalId,omitempty"`
	ProfessionalName *string `json:"professionalName,omitempty"`

	Services             []BookingServiceResponse `json:"services"`
	TotalPrice           string                   `json:"totalPrice"` // "150.00"
	TotalDurationMinutes int                      `json:"totalDurationMinutes"`

	RescheduleRequest *RescheduleRequestResponse `json:"rescheduleRequest,omitempty"`

	CompletedAt *string   `json:"completedAt,omitempty"` // ISO 8601 format
	CancelledAt *string   `json:"cancelledAt,omitempty"` // ISO 8601 format
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BookingServiceResponse позиция бронирования
type BookingServiceResponse struct {
	ServiceID       int64   `json:"serviceId"`
	Name            string  `json:"name"`
	VariationID     *int64  `json:"variationId,omitempty"`
	VariationName   *string `json:"variationName,omitempty"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	Quantity        int     `json:"quantity"`
}

// RescheduleRequestResponse заявка на перенос, показываемая вместе с бронированием
type RescheduleRequestResponse struct {
	ID              string  `json:"id"`
	Status          string  `json:"status"`
	RequestedDate   string  `json:"requestedDate"`
	RequestedTime   string  `json:"requestedTime"`
	OriginalDate    string  `json:"originalDate"`
	OriginalTime    string  `json:"originalTime"`
	RequestedBy     string  `json:"requestedBy"`
	ResponseMessage *string `json:"responseMessage,omitempty"`
	RespondedBy     *string `json:"respondedBy,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	RespondedAt     *string `json:"respondedAt,omitempty"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainView конвертирует обогащённое бронирование в DTO
func FromDomainView(v *domain.BookingView) *BookingResponse {
	if v == nil {
		return nil
	}

	b := v.Booking
	resp := &BookingResponse{
		ID:                   b.ID.String(),
		Date:                 b.FormattedDate(),
		Time:                 b.Time.String(),
		Status:               string(b.Status),
		ClientID:             v.Client.ID.String(),
		ClientName:           v.Client.Name,
		ClientPhone:          v.Client.Phone,
		ClientEmail:          v.Client.Email,
		ClientRoomNumber:     v.Client.RoomNumber,
		Services:             make([]BookingServiceResponse, 0, len(v.Lines)),
		TotalPrice:           v.TotalPriceString(),
		TotalDurationMinutes: v.TotalDurationMinutes,
		CompletedAt:          formatTimestamp(b.CompletedAt),
		CancelledAt:          formatTimestamp(b.CancelledAt),
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}

	if b.ProfessionalID != nil {
		id := b.ProfessionalID.String()
		resp.ProfessionalID = &id
	}
	if v.Professional != nil {
		name := v.Professional.Name
		resp.ProfessionalName = &name
	}

	for _, l := range v.Lines {
		resp.Services = append(resp.Services, BookingServiceResponse{
			ServiceID:       l.ServiceID,
			Name:            l.ServiceName,
			VariationID:     l.VariationID,
			VariationName:   l.VariationName,
			Price:           l.UnitPrice,
			DurationMinutes: l.DurationMinutes,
			Quantity:        l.Quantity,
		})
	}

	if r := v.Reschedule; r != nil {
		createdAt := r.CreatedAt.Format(time.RFC3339)
		resp.RescheduleRequest = &RescheduleRequestResponse{
			ID:              r.ID.String(),
			Status:          string(r.Status),
			RequestedDate:   r.RequestedDate.Format(domain.DateFormat),
			RequestedTime:   r.RequestedTime.String(),
			OriginalDate:    r.OriginalDate.Format(domain.DateFormat),
			OriginalTime:    r.OriginalTime.String(),
			RequestedBy:     r.RequestedBy,
			ResponseMessage: r.ResponseMessage,
			RespondedBy:     r.RespondedBy,
			CreatedAt:       createdAt,
			RespondedAt:     formatTimestamp(r.RespondedAt),
		}
	}

	return resp
}

// FromDomainViewList конвертирует список обогащённых бронирований в DTO
func FromDomainViewList(views []domain.BookingView) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(views)),
	}

	for i := range views {
		if r := FromDomainView(&views[i]); r != nil {
			resp.Bookings = append(resp.Bookings, *r)
		}
	}

	return resp
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
