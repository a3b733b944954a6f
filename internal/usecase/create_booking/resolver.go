package create_booking

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/m04kA/spa-booking-service/internal/domain"
)

// resolveLines загружает услуги и строит позиции бронирования
// Отсутствующие услуги собираются все сразу, чтобы клиент увидел полный список
func (uc *UseCase) resolveLines(ctx context.Context, items []validatedItem) (map[int64]domain.Service, []domain.BookingLine, error) {
	ids := distinctServiceIDs(items)

	services, err := uc.services.GetServicesByIDs(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	missing := make([]int64, 0)
	for _, id := range ids {
		if _, ok := services[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, nil, &ServicesNotFoundError{IDs: missing}
	}

	lines := make([]domain.BookingLine, 0, len(items))
	for _, item := range items {
		service := services[item.serviceID]

		var variation *domain.PriceVariation
		if item.variationID != nil {
			v, ok := service.Variation(*item.variationID)
			if !ok {
				return nil, nil, fmt.Errorf("%w: variation %d of service %d", ErrVariationNotFound, *item.variationID, item.serviceID)
			}
			variation = v
		}

		lines = append(lines, domain.NewBookingLine(&service, variation, item.quantity))
	}

	return services, lines, nil
}

// inferProfessional выводит профессионала из ответственных за услуги
// Один уникальный - он и назначается; несколько - конфликт; ни одного - не назначается
func inferProfessional(services map[int64]domain.Service) (*uuid.UUID, error) {
	distinct := make(map[uuid.UUID]struct{})
	for _, s := range services {
		if s.ProfessionalID != nil {
			distinct[*s.ProfessionalID] = struct{}{}
		}
	}

	switch len(distinct) {
	case 0:
		return nil, nil
	case 1:
		for id := range distinct {
			return &id, nil
		}
	}

	return nil, fmt.Errorf("%w: %d distinct professionals", ErrConflictingProfessionals, len(distinct))
}

// distinctServiceIDs возвращает уникальные ID услуг по возрастанию
func distinctServiceIDs(items []validatedItem) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.serviceID]; ok {
			continue
		}
		seen[item.serviceID] = struct{}{}
		ids = append(ids, item.serviceID)
	}
	slices.Sort(ids)
	return ids
}
