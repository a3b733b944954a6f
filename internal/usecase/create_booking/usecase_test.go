package create_booking

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/spa-booking-service/internal/domain"
	catalogRepo "github.com/m04kA/spa-booking-service/internal/infra/storage/catalog"
	"github.com/m04kA/spa-booking-service/pkg/logger"
	"github.com/m04kA/spa-booking-service/pkg/ptr"
)

type fakeBookingRepo struct {
	created []*domain.Booking
	err     error
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	b.ID = uuid.New()
	f.created = append(f.created, b)
	return b, nil
}

type fakeClientRepo struct {
	byPhone map[string]*domain.Client
	err     error
}

func (f *fakeClientRepo) Upsert(_ context.Context, c *domain.Client) (*domain.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	if existing, ok := f.byPhone[c.Phone]; ok {
		c.ID = existing.ID
	} else {
		c.ID = uuid.New()
	}
	f.byPhone[c.Phone] = c
	return c, nil
}

type fakeCatalog struct {
	services      map[int64]domain.Service
	professionals map[uuid.UUID]domain.Professional
	requested     [][]int64
}

func (f *fakeCatalog) GetServicesByIDs(_ context.Context, ids []int64) (map[int64]domain.Service, error) {
	f.requested = append(f.requested, ids)
	out := make(map[int64]domain.Service)
	for _, id := range ids {
		if s, ok := f.services[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetProfessional(_ context.Context, id uuid.UUID) (*domain.Professional, error) {
	p, ok := f.professionals[id]
	if !ok {
		return nil, catalogRepo.ErrProfessionalNotFound
	}
	return &p, nil
}

type fakeTx struct {
	calls int
}

func (f *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeMetrics struct {
	results []string
}

func (f *fakeMetrics) IncBookingCreated(result string) {
	f.results = append(f.results, result)
}

type fixture struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	clients  *fakeClientRepo
	catalog  *fakeCatalog
	tx       *fakeTx
	metrics  *fakeMetrics
	profA    uuid.UUID
	profB    uuid.UUID
}

func newFixture() *fixture {
	f := &fixture{
		bookings: &fakeBookingRepo{},
		clients:  &fakeClientRepo{byPhone: map[string]*domain.Client{}},
		tx:       &fakeTx{},
		metrics:  &fakeMetrics{},
		profA:    uuid.New(),
		profB:    uuid.New(),
	}

	f.catalog = &fakeCatalog{
		services: map[int64]domain.Service{
			1: {ID: 1, Name: "Massage", Price: 100, DurationMinutes: 60, ProfessionalID: &f.profA,
				Variations: []domain.PriceVariation{{ID: 11, ServiceID: 1, Price: 140, DurationMinutes: 90}}},
			2: {ID: 2, Name: "Scrub", Price: 50, DurationMinutes: 30, ProfessionalID: &f.profA},
			3: {ID: 3, Name: "Facial", Price: 80, DurationMinutes: 45, ProfessionalID: &f.profB},
			4: {ID: 4, Name: "Sauna", Price: 20, DurationMinutes: 30},
		},
		professionals: map[uuid.UUID]domain.Professional{
			f.profA: {ID: f.profA, Name: "Carla"},
			f.profB: {ID: f.profB, Name: "Joana"},
		},
	}

	f.uc = NewUseCase(f.bookings, f.clients, f.catalog, f.catalog, f.tx, f.metrics, logger.Nop())
	return f
}

func baseRequest(services ...ServiceInput) *Request {
	return &Request{
		Date:     "2025-03-14",
		Time:     "14:30",
		Client:   ClientInput{Name: "Ana", Phone: "+55 11 99999-0000"},
		Services: services,
	}
}

func TestExecute_InfersSingleProfessional(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), baseRequest(
		ServiceInput{ServiceID: 1},
		ServiceInput{ServiceID: 2, Quantity: ptr.Ptr(2)},
		ServiceInput{ServiceID: 4},
	))
	require.NoError(t, err)

	require.NotNil(t, resp.ProfessionalID)
	assert.Equal(t, f.profA, *resp.ProfessionalID)
	assert.Equal(t, "scheduled", resp.Status)
	assert.InDelta(t, 220.0, resp.TotalPrice, 0.001)
	assert.Equal(t, 150, resp.TotalDurationMinutes)
	assert.Equal(t, "14:30:00", resp.Time.String())
	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, []string{resultCreated}, f.metrics.results)

	require.Len(t, f.bookings.created, 1)
	created := f.bookings.created[0]
	assert.Equal(t, resp.BookingID, created.ID)
	require.Len(t, created.Items, 3)
	assert.Equal(t, 1, created.Items[0].Quantity, "quantity defaults to 1")
	assert.Equal(t, 2, created.Items[1].Quantity)
}

func TestExecute_TwoServicesTotals(t *testing.T) {
	f := newFixture()
	f.catalog.services[5] = domain.Service{ID: 5, Name: "Manicure", Price: 80, DurationMinutes: 30}
	f.catalog.services[6] = domain.Service{ID: 6, Name: "Hot stones", Price: 120, DurationMinutes: 45}

	req := baseRequest(ServiceInput{ServiceID: 5}, ServiceInput{ServiceID: 6})
	req.Date = "2025-06-01"
	req.Time = "14:00"

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "2025-06-01", resp.Date.Format(domain.DateFormat))
	assert.Equal(t, "14:00:00", resp.Time.String())
	assert.Equal(t, 75, resp.TotalDurationMinutes)
	assert.Equal(t, "200.00", domain.FormatPrice(resp.TotalPrice))
}

func TestExecute_DifferentProfessionalsConflict(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), baseRequest(
		ServiceInput{ServiceID: 1},
		ServiceInput{ServiceID: 3},
	))

	require.ErrorIs(t, err, ErrConflictingProfessionals)
	assert.Empty(t, f.bookings.created)
	assert.Empty(t, f.clients.byPhone, "no client is written on conflict")
	assert.Equal(t, []string{resultRejected}, f.metrics.results)
}

func TestExecute_ExplicitProfessionalSkipsInference(t *testing.T) {
	f := newFixture()
	req := baseRequest(ServiceInput{ServiceID: 1}, ServiceInput{ServiceID: 3})
	req.ProfessionalID = &f.profB

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, f.profB, *resp.ProfessionalID)
}

func TestExecute_NoResponsibleProfessionalLeavesUnset(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), baseRequest(ServiceInput{ServiceID: 4}))
	require.NoError(t, err)
	assert.Nil(t, resp.ProfessionalID)
}

func TestExecute_UnknownProfessional(t *testing.T) {
	f := newFixture()
	req := baseRequest(ServiceInput{ServiceID: 1})
	req.ProfessionalID = ptr.Ptr(uuid.New())

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrProfessionalNotFound)
	assert.Empty(t, f.catalog.requested, "services are not loaded when the professional is unknown")
}

func TestExecute_AllMissingServicesReported(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), baseRequest(
		ServiceInput{ServiceID: 99},
		ServiceInput{ServiceID: 1},
		ServiceInput{ServiceID: 42},
		ServiceInput{ServiceID: 99},
	))

	require.ErrorIs(t, err, ErrServicesNotFound)

	var notFound *ServicesNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, []int64{42, 99}, notFound.IDs)
	assert.Empty(t, f.bookings.created)
}

func TestExecute_VariationMustBelongToService(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), baseRequest(
		ServiceInput{ServiceID: 2, VariationID: ptr.Ptr(int64(11))},
	))
	require.ErrorIs(t, err, ErrVariationNotFound)
}

func TestExecute_VariationPricesLine(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), baseRequest(
		ServiceInput{ServiceID: 1, VariationID: ptr.Ptr(int64(11)), Quantity: ptr.Ptr(2)},
	))
	require.NoError(t, err)

	assert.InDelta(t, 280.0, resp.TotalPrice, 0.001)
	assert.Equal(t, 180, resp.TotalDurationMinutes)
}

func TestExecute_PlaceholderEmailAndClientReuse(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.uc.Execute(ctx, baseRequest(ServiceInput{ServiceID: 4}))
	require.NoError(t, err)

	stored := f.clients.byPhone["+55 11 99999-0000"]
	require.NotNil(t, stored)
	assert.Equal(t, "whatsapp_5511999990000@temp.local", stored.Email)

	req := baseRequest(ServiceInput{ServiceID: 4})
	req.Client.Name = "Ana Maria"
	req.Client.Email = ptr.Ptr("ana@example.com")

	second, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.ClientID, second.ClientID, "same phone resolves to the same client")
	stored = f.clients.byPhone["+55 11 99999-0000"]
	assert.Equal(t, "Ana Maria", stored.Name)
	assert.Equal(t, "ana@example.com", stored.Email)
}

func TestExecute_PersistenceFailureIsInternal(t *testing.T) {
	f := newFixture()
	f.bookings.err = errors.New("insert booking_services: fk violation")

	_, err := f.uc.Execute(context.Background(), baseRequest(ServiceInput{ServiceID: 1}))

	require.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, []string{resultFailed}, f.metrics.results)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"missing date", func(r *Request) { r.Date = "" }},
		{"missing time", func(r *Request) { r.Time = "" }},
		{"bad time", func(r *Request) { r.Time = "2pm" }},
		{"bad date", func(r *Request) { r.Date = "14/03/2025" }},
		{"missing name", func(r *Request) { r.Client.Name = " " }},
		{"missing phone", func(r *Request) { r.Client.Phone = "" }},
		{"no services", func(r *Request) { r.Services = nil }},
		{"zero quantity", func(r *Request) { r.Services[0].Quantity = ptr.Ptr(0) }},
		{"non-positive service id", func(r *Request) { r.Services[0].ServiceID = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := baseRequest(ServiceInput{ServiceID: 1})
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, f.bookings.created)
		})
	}
}

func TestValidateRequest_AcceptsFullTime(t *testing.T) {
	req := baseRequest(ServiceInput{ServiceID: 1})
	req.Time = "09:15:30"

	in, err := validateRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "09:15:30", in.time.String())
}

func TestInferProfessional(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	got, err := inferProfessional(map[int64]domain.Service{1: {ProfessionalID: &a}, 2: {ProfessionalID: &a}, 3: {}})
	require.NoError(t, err)
	assert.Equal(t, a, *got)

	_, err = inferProfessional(map[int64]domain.Service{1: {ProfessionalID: &a}, 2: {ProfessionalID: &b}})
	require.ErrorIs(t, err, ErrConflictingProfessionals)

	got, err = inferProfessional(map[int64]domain.Service{1: {}})
	require.NoError(t, err)
	assert.Nil(t, got)
}
