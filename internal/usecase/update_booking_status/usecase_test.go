package update_booking_status

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/spa-booking-service/internal/domain"
	bookingRepo "github.com/m04kA/spa-booking-service/internal/infra/storage/booking"
	"github.com/m04kA/spa-booking-service/internal/notification"
	"github.com/m04kA/spa-booking-service/pkg/logger"
	"github.com/m04kA/spa-booking-service/pkg/ptr"
	"github.com/m04kA/spa-booking-service/pkg/types"
)

type fakeRepo struct {
	statuses   map[uuid.UUID]domain.BookingStatus
	guardCalls []bool
	err        error
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.BookingStatus, guardFinal bool) error {
	f.guardCalls = append(f.guardCalls, guardFinal)
	if f.err != nil {
		return f.err
	}
	current, ok := f.statuses[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if guardFinal && current.IsFinal() {
		return bookingRepo.ErrBookingFinalized
	}
	f.statuses[id] = status
	return nil
}

type fakeViewer struct {
	view *domain.BookingView
	err  error
}

func (f *fakeViewer) GetView(_ context.Context, _ uuid.UUID) (*domain.BookingView, error) {
	return f.view, f.err
}

type sentMessage struct {
	dest notification.Destination
	msg  notification.Message
}

type fakeNotifier struct {
	sent    []sentMessage
	failFor string
}

func (f *fakeNotifier) Send(_ context.Context, dest notification.Destination, msg notification.Message) notification.Result {
	f.sent = append(f.sent, sentMessage{dest: dest, msg: msg})
	if dest.Address == f.failFor {
		return notification.Result{Channel: dest.Channel, Err: errors.New("gateway down")}
	}
	return notification.Result{Channel: dest.Channel, Success: true}
}

type fakeMetrics struct {
	results []string
}

func (f *fakeMetrics) IncStatusTransition(status, result string) {
	f.results = append(f.results, status+":"+result)
}

type fixture struct {
	uc       *UseCase
	repo     *fakeRepo
	viewer   *fakeViewer
	notifier *fakeNotifier
	metrics  *fakeMetrics
	id       uuid.UUID
}

func newFixture(opts Options) *fixture {
	id := uuid.New()
	f := &fixture{
		id:       id,
		repo:     &fakeRepo{statuses: map[uuid.UUID]domain.BookingStatus{id: domain.StatusScheduled}},
		notifier: &fakeNotifier{},
		metrics:  &fakeMetrics{},
	}

	f.viewer = &fakeViewer{view: &domain.BookingView{
		Booking: domain.Booking{
			ID: id, Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			Time: types.MustTimeString("14:30"), Status: domain.StatusCompleted,
		},
		Client:       domain.Client{Name: "Ana", Phone: "+5511999990000"},
		Professional: &domain.Professional{Name: "Carla", Phone: ptr.Ptr("+5511988880000")},
		Lines: []domain.BookingLine{
			{ServiceID: 1, ServiceName: "Massage", UnitPrice: 100, DurationMinutes: 60, Quantity: 2},
		},
		TotalPrice:           200,
		TotalDurationMinutes: 120,
	}}

	f.uc = NewUseCase(f.repo, f.viewer, f.notifier, f.metrics, logger.Nop(), opts)
	return f
}

func TestExecute_CompletedWithNotification(t *testing.T) {
	f := newFixture(Options{RejectFromFinal: true, BusinessName: "Ocean Spa"})

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: f.id, Status: "completed", SendNotification: true})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, f.repo.statuses[f.id])
	require.Len(t, f.notifier.sent, 2)

	client := f.notifier.sent[0]
	assert.Equal(t, notification.ChannelWhatsApp, client.dest.Channel)
	assert.Equal(t, "+5511999990000", client.dest.Address)
	assert.Contains(t, client.msg.Body, "Massage x2: 200.00")
	assert.Contains(t, client.msg.Body, "Total: 200.00")
	assert.Contains(t, client.msg.Body, "Ocean Spa")

	assert.Equal(t, "+5511988880000", f.notifier.sent[1].dest.Address)

	require.Len(t, resp.Notifications, 2)
	assert.Equal(t, recipientClient, resp.Notifications[0].Recipient)
	assert.True(t, resp.Notifications[1].Success)
	assert.Equal(t, []string{"completed:updated"}, f.metrics.results)
}

func TestExecute_NotificationFailureDoesNotFail(t *testing.T) {
	f := newFixture(Options{})
	f.notifier.failFor = "+5511999990000"

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: f.id, Status: "completed", SendNotification: true})
	require.NoError(t, err)

	require.Len(t, resp.Notifications, 2)
	assert.False(t, resp.Notifications[0].Success)
	assert.True(t, resp.Notifications[1].Success)
}

func TestExecute_ViewLoadFailureStillSucceeds(t *testing.T) {
	f := newFixture(Options{})
	f.viewer.err = errors.New("db down")

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: f.id, Status: "completed", SendNotification: true})
	require.NoError(t, err)
	assert.Empty(t, resp.Notifications)
	assert.Empty(t, f.notifier.sent)
}

func TestExecute_NoNotificationUnlessRequested(t *testing.T) {
	f := newFixture(Options{})

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: f.id, Status: "completed"})
	require.NoError(t, err)
	assert.Empty(t, f.notifier.sent)
}

func TestExecute_NoNotificationForCancel(t *testing.T) {
	f := newFixture(Options{})

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: f.id, Status: "cancelled", SendNotification: true})
	require.NoError(t, err)
	assert.Empty(t, f.notifier.sent)
	assert.Equal(t, domain.StatusCancelled, f.repo.statuses[f.id])
}

func TestExecute_SkipsProfessionalWithoutPhone(t *testing.T) {
	f := newFixture(Options{})
	f.viewer.view.Professional = nil

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: f.id, Status: "completed", SendNotification: true})
	require.NoError(t, err)

	require.Len(t, f.notifier.sent, 1)
	assert.True(t, strings.HasPrefix(f.notifier.sent[0].msg.Body, "Hello Ana!"))
	assert.Len(t, resp.Notifications, 1)
}

func TestExecute_ClientWithoutPhoneOnlyProfessionalNotified(t *testing.T) {
	f := newFixture(Options{})
	f.viewer.view.Client.Phone = ""
	f.notifier.failFor = "+5511988880000"

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: f.id, Status: "completed", SendNotification: true})
	require.NoError(t, err)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "+5511988880000", f.notifier.sent[0].dest.Address)
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, recipientProfessional, resp.Notifications[0].Recipient)
	assert.False(t, resp.Notifications[0].Success)
	assert.Equal(t, domain.StatusCompleted, f.repo.statuses[f.id])
}

func TestExecute_TerminalTransitionPolicy(t *testing.T) {
	t.Run("reject", func(t *testing.T) {
		f := newFixture(Options{RejectFromFinal: true})
		f.repo.statuses[f.id] = domain.StatusCancelled

		_, err := f.uc.Execute(context.Background(), &Request{BookingID: f.id, Status: "scheduled"})
		assert.ErrorIs(t, err, ErrBookingFinalized)
		assert.Equal(t, domain.StatusCancelled, f.repo.statuses[f.id])
		assert.Equal(t, []bool{true}, f.repo.guardCalls)
		assert.Equal(t, []string{"scheduled:finalized"}, f.metrics.results)
	})

	t.Run("allow", func(t *testing.T) {
		f := newFixture(Options{RejectFromFinal: false})
		f.repo.statuses[f.id] = domain.StatusCancelled

		_, err := f.uc.Execute(context.Background(), &Request{BookingID: f.id, Status: "scheduled"})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusScheduled, f.repo.statuses[f.id])
		assert.Equal(t, []bool{false}, f.repo.guardCalls)
	})
}

func TestExecute_Errors(t *testing.T) {
	t.Run("unknown status", func(t *testing.T) {
		f := newFixture(Options{})
		_, err := f.uc.Execute(context.Background(), &Request{BookingID: f.id, Status: "done"})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Empty(t, f.repo.guardCalls)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(Options{})
		_, err := f.uc.Execute(context.Background(), &Request{BookingID: uuid.New(), Status: "completed", SendNotification: true})
		assert.ErrorIs(t, err, ErrBookingNotFound)
		assert.Empty(t, f.notifier.sent)
	})

	t.Run("persistence failure before dispatch", func(t *testing.T) {
		f := newFixture(Options{})
		f.repo.err = errors.New("connection reset")
		_, err := f.uc.Execute(context.Background(), &Request{BookingID: f.id, Status: "completed", SendNotification: true})
		assert.ErrorIs(t, err, ErrInternal)
		assert.Empty(t, f.notifier.sent)
	})
}
