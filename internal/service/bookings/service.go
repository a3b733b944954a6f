package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/spa-booking-service/internal/domain"
	bookingRepo "github.com/m04kA/spa-booking-service/internal/infra/storage/booking"
	"github.com/m04kA/spa-booking-service/internal/service/bookings/models"
)

// Service сервис чтения бронирований: выборка, фильтрация и обогащение
type Service struct {
	bookingRepo    BookingRepository
	clientRepo     ClientRepository
	services       ServiceProvider
	professionals  ProfessionalProvider
	rescheduleRepo RescheduleRepository
	logger         Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	clientRepo ClientRepository,
	services ServiceProvider,
	professionals ProfessionalProvider,
	rescheduleRepo RescheduleRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		clientRepo:     clientRepo,
		services:       services,
		professionals:  professionals,
		rescheduleRepo: rescheduleRepo,
		logger:         logger,
	}
}

// List возвращает бронирования по фильтру, отсортированные по дате и времени
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	views, err := s.ListViews(ctx, filter)
	if err != nil {
		return nil, err
	}

	return models.FromDomainViewList(views), nil
}

// GetClientBookings возвращает бронирования клиента по номеру телефона
// Для неизвестного телефона возвращается пустой список
func (s *Service) GetClientBookings(ctx context.Context, phone string) (*models.BookingListResponse, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	s.logger.Info("GetClientBookings: fetching bookings for client phone")

	views, err := s.ListViews(ctx, domain.BookingsFilter{ClientPhone: &phone})
	if err != nil {
		return nil, err
	}

	return models.FromDomainViewList(views), nil
}

// GetByID возвращает обогащённое бронирование по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.BookingResponse, error) {
	view, err := s.GetView(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainView(view), nil
}

// GetView возвращает бронирование с клиентом, профессионалом, позициями и заявкой на перенос
func (s *Service) GetView(ctx context.Context, id uuid.UUID) (*domain.BookingView, error) {
	s.logger.Info("GetView: fetching booking id=%s", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetView: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetView: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetView - repository error: %v", ErrInternal, err)
	}

	views, err := s.enrich(ctx, []domain.Booking{*booking})
	if err != nil {
		return nil, err
	}

	return &views[0], nil
}

// ListViews возвращает обогащённые бронирования по domain фильтру
// Professional/date/time фильтруются в БД, service и client - после обогащения
func (s *Service) ListViews(ctx context.Context, filter domain.BookingsFilter) ([]domain.BookingView, error) {
	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListViews: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListViews - repository error: %v", ErrInternal, err)
	}

	if len(bookings) == 0 {
		return []domain.BookingView{}, nil
	}

	views, err := s.enrich(ctx, bookings)
	if err != nil {
		return nil, err
	}

	result := make([]domain.BookingView, 0, len(views))
	for _, v := range views {
		if filter.ServiceID != nil && !v.HasService(*filter.ServiceID) {
			continue
		}
		if filter.ClientQuery != "" && !matchesClient(v.Client, filter.ClientQuery) {
			continue
		}
		result = append(result, v)
	}

	s.logger.Info("ListViews: found %d bookings (%d before post-filter)", len(result), len(views))
	return result, nil
}

// enrich загружает связанные данные пачками и собирает представления бронирований
func (s *Service) enrich(ctx context.Context, bookings []domain.Booking) ([]domain.BookingView, error) {
	clientIDs := make([]uuid.UUID, 0, len(bookings))
	professionalIDs := make([]uuid.UUID, 0)
	bookingIDs := make([]uuid.UUID, 0, len(bookings))
	serviceIDs := make([]int64, 0)

	seenClients := make(map[uuid.UUID]struct{})
	seenProfessionals := make(map[uuid.UUID]struct{})
	seenServices := make(map[int64]struct{})

	for _, b := range bookings {
		bookingIDs = append(bookingIDs, b.ID)
		if _, ok := seenClients[b.ClientID]; !ok {
			seenClients[b.ClientID] = struct{}{}
			clientIDs = append(clientIDs, b.ClientID)
		}
		if b.ProfessionalID != nil {
			if _, ok := seenProfessionals[*b.ProfessionalID]; !ok {
				seenProfessionals[*b.ProfessionalID] = struct{}{}
				professionalIDs = append(professionalIDs, *b.ProfessionalID)
			}
		}
		for _, item := range b.Items {
			if _, ok := seenServices[item.ServiceID]; !ok {
				seenServices[item.ServiceID] = struct{}{}
				serviceIDs = append(serviceIDs, item.ServiceID)
			}
		}
	}

	clients, err := s.clientRepo.GetByIDs(ctx, clientIDs)
	if err != nil {
		s.logger.Error("enrich: failed to load clients: %v", err)
		return nil, fmt.Errorf("%w: enrich - clients: %v", ErrInternal, err)
	}

	professionals := map[uuid.UUID]domain.Professional{}
	if len(professionalIDs) > 0 {
		professionals, err = s.professionals.GetProfessionalsByIDs(ctx, professionalIDs)
		if err != nil {
			s.logger.Error("enrich: failed to load professionals: %v", err)
			return nil, fmt.Errorf("%w: enrich - professionals: %v", ErrInternal, err)
		}
	}

	services := map[int64]domain.Service{}
	if len(serviceIDs) > 0 {
		services, err = s.services.GetServicesByIDs(ctx, serviceIDs)
		if err != nil {
			s.logger.Error("enrich: failed to load services: %v", err)
			return nil, fmt.Errorf("%w: enrich - services: %v", ErrInternal, err)
		}
	}

	reschedules, err := s.rescheduleRepo.ListByBookingIDs(ctx, bookingIDs)
	if err != nil {
		s.logger.Error("enrich: failed to load reschedule requests: %v", err)
		return nil, fmt.Errorf("%w: enrich - reschedule requests: %v", ErrInternal, err)
	}

	views := make([]domain.BookingView, 0, len(bookings))
	for _, b := range bookings {
		view := domain.BookingView{
			Booking: b,
			Lines:   buildLines(b.Items, services),
		}

		if c, ok := clients[b.ClientID]; ok {
			view.Client = c
		} else {
			// Клиент удалён, показываем только идентификатор
			view.Client = domain.Client{ID: b.ClientID}
		}

		if b.ProfessionalID != nil {
			if p, ok := professionals[*b.ProfessionalID]; ok {
				p := p
				view.Professional = &p
			}
		}

		view.Reschedule = domain.RelevantReschedule(reschedules[b.ID])
		view.TotalPrice, view.TotalDurationMinutes = domain.Totals(view.Lines)

		views = append(views, view)
	}

	return views, nil
}

// buildLines собирает позиции бронирования из каталога
// Услуга, отсутствующая в каталоге, даёт позицию с нулевой ценой и длительностью
func buildLines(items []domain.BookingItem, services map[int64]domain.Service) []domain.BookingLine {
	lines := make([]domain.BookingLine, 0, len(items))
	for _, item := range items {
		service, ok := services[item.ServiceID]
		if !ok {
			quantity := item.Quantity
			if quantity < 1 {
				quantity = domain.DefaultQuantity
			}
			lines = append(lines, domain.BookingLine{
				ServiceID:   item.ServiceID,
				VariationID: item.VariationID,
				Quantity:    quantity,
			})
			continue
		}

		var variation *domain.PriceVariation
		if item.VariationID != nil {
			if v, found := service.Variation(*item.VariationID); found {
				variation = v
			}
		}

		lines = append(lines, domain.NewBookingLine(&service, variation, item.Quantity))
	}
	return lines
}

// matchesClient проверяет совпадение клиента с поисковой строкой
// Без учёта регистра по имени, email и телефону, телефон дополнительно сравнивается по цифрам
func matchesClient(c domain.Client, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	if strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.Email), q) ||
		strings.Contains(strings.ToLower(c.Phone), q) {
		return true
	}

	digits := domain.DigitsOnly(q)
	return digits != "" && strings.Contains(domain.DigitsOnly(c.Phone), digits)
}
