package domain

import "github.com/google/uuid"

// Service represents a catalog service (massage, facial, etc.)
type Service struct {
	ID              int64
	Name            string
	Price           float64
	DurationMinutes int
	ProfessionalID  *uuid.UUID // responsible professional, used for inference
	CategoryID      *int64
	ImageURL        *string
	Variations      []PriceVariation
}

// PriceVariation is an alternative duration/price of a service
type PriceVariation struct {
	ID              int64
	ServiceID       int64
	Name            *string
	DurationMinutes int
	Price           float64
	DisplayOrder    int
}

// Variation finds a variation of the service by id
func (s *Service) Variation(id int64) (*PriceVariation, bool) {
	for i := range s.Variations {
		if s.Variations[i].ID == id {
			return &s.Variations[i], true
		}
	}
	return nil, false
}

// Professional represents a staff member who performs services
type Professional struct {
	ID    uuid.UUID
	Name  string
	Phone *string
	Email *string
}
