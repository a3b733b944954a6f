package catalog

import (
	"github.com/google/uuid"

	"github.com/m04kA/spa-booking-service/internal/domain"
)

type cachedProfessional struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone *string   `json:"phone,omitempty"`
	Email *string   `json:"email,omitempty"`
}

func toCached(p domain.Professional) cachedProfessional {
	return cachedProfessional{
		ID:    p.ID,
		Name:  p.Name,
		Phone: p.Phone,
		Email: p.Email,
	}
}

func (c cachedProfessional) toDomain() domain.Professional {
	return domain.Professional{
		ID:    c.ID,
		Name:  c.Name,
		Phone: c.Phone,
		Email: c.Email,
	}
}
