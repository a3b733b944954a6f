package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/spa-booking-service/internal/domain"
	"github.com/m04kA/spa-booking-service/pkg/types"
)

// validateRequest валидирует входные данные и нормализует их
func validateRequest(req *Request) (*validatedRequest, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	dateStr := strings.TrimSpace(req.Date)
	timeStr := strings.TrimSpace(req.Time)

	if dateStr == "" || timeStr == "" {
		return nil, fmt.Errorf("%w: date and time are required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Client.Name) == "" || strings.TrimSpace(req.Client.Phone) == "" {
		return nil, fmt.Errorf("%w: client name and phone are required", ErrInvalidInput)
	}

	if len(req.Services) == 0 {
		return nil, fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrInvalidInput, dateStr)
	}

	// "HH:MM" расширяется до "HH:MM:SS"
	at, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
	}

	items := make([]validatedItem, 0, len(req.Services))
	for i, s := range req.Services {
		if s.ServiceID <= 0 {
			return nil, fmt.Errorf("%w: services[%d]: serviceId must be positive", ErrInvalidInput, i)
		}

		quantity := domain.DefaultQuantity
		if s.Quantity != nil {
			if *s.Quantity < 1 {
				return nil, fmt.Errorf("%w: services[%d]: quantity must be at least 1", ErrInvalidInput, i)
			}
			quantity = *s.Quantity
		}

		items = append(items, validatedItem{
			serviceID:   s.ServiceID,
			variationID: s.VariationID,
			quantity:    quantity,
		})
	}

	client := req.Client
	client.Name = strings.TrimSpace(client.Name)
	client.Phone = strings.TrimSpace(client.Phone)

	return &validatedRequest{
		date:           date,
		time:           at,
		professionalID: req.ProfessionalID,
		client:         client,
		items:          items,
	}, nil
}

// clientEmail возвращает email клиента или плейсхолдер, email в базе никогда не пустой
func clientEmail(client ClientInput) string {
	if client.Email != nil {
		if email := strings.TrimSpace(*client.Email); email != "" {
			return email
		}
	}
	return domain.PlaceholderEmail(client.Phone)
}
