package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/spa-booking-service/internal/integrations/whatsapp"
	"github.com/m04kA/spa-booking-service/pkg/logger"
	"github.com/m04kA/spa-booking-service/pkg/metrics"
)

type fakeSender struct {
	channel Channel
	err     error
	panicV  interface{}
	sent    []Destination
}

func (f *fakeSender) Channel() Channel { return f.channel }

func (f *fakeSender) Send(_ context.Context, dest Destination, _ Message) error {
	if f.panicV != nil {
		panic(f.panicV)
	}
	f.sent = append(f.sent, dest)
	return f.err
}

func newDispatcher(senders ...Sender) *Dispatcher {
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), "test")
	return NewDispatcher(logger.Nop(), m, 0, 1, senders...)
}

func TestDispatcher_Success(t *testing.T) {
	s := &fakeSender{channel: ChannelWhatsApp}
	d := newDispatcher(s)

	res := d.Send(context.Background(), Destination{Channel: ChannelWhatsApp, Address: "5511999", Name: "Ana"}, Message{Body: "hi"})

	assert.True(t, res.Success)
	assert.NoError(t, res.Err)
	require.Len(t, s.sent, 1)
}

func TestDispatcher_FailureIsReportedNotRaised(t *testing.T) {
	s := &fakeSender{channel: ChannelWhatsApp, err: errors.New("gateway down")}
	d := newDispatcher(s)

	res := d.Send(context.Background(), Destination{Channel: ChannelWhatsApp, Address: "1"}, Message{Body: "hi"})

	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, ErrSendFailed)
}

func TestDispatcher_PanicIsRecovered(t *testing.T) {
	s := &fakeSender{channel: ChannelEmail, panicV: "boom"}
	d := newDispatcher(s)

	var res Result
	require.NotPanics(t, func() {
		res = d.Send(context.Background(), Destination{Channel: ChannelEmail, Address: "a@b.c"}, Message{Body: "hi"})
	})

	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, ErrSendPanic)
}

func TestDispatcher_MissingChannelAndAddress(t *testing.T) {
	d := newDispatcher(&fakeSender{channel: ChannelWhatsApp})

	res := d.Send(context.Background(), Destination{Channel: ChannelEmail, Address: "a@b.c"}, Message{})
	assert.ErrorIs(t, res.Err, ErrChannelUnavailable)
	assert.False(t, d.HasChannel(ChannelEmail))

	res = d.Send(context.Background(), Destination{Channel: ChannelWhatsApp}, Message{})
	assert.ErrorIs(t, res.Err, ErrNoAddress)
}

func TestDispatcher_RateLimiterRespectsContext(t *testing.T) {
	s := &fakeSender{channel: ChannelWhatsApp}
	d := NewDispatcher(logger.Nop(), nil, 0.001, 1, s)
	dest := Destination{Channel: ChannelWhatsApp, Address: "1"}

	first := d.Send(context.Background(), dest, Message{})
	require.True(t, first.Success)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	second := d.Send(ctx, dest, Message{})
	assert.False(t, second.Success)
	assert.ErrorIs(t, second.Err, ErrSendFailed)
	assert.Len(t, s.sent, 1)
}

type fakeGateway struct {
	phone, message string
}

func (g *fakeGateway) SendMessage(_ context.Context, phone, message string) (*whatsapp.SendMessageResponse, error) {
	g.phone, g.message = phone, message
	return &whatsapp.SendMessageResponse{ID: "1"}, nil
}

func TestWhatsAppSender_SendsBody(t *testing.T) {
	gw := &fakeGateway{}
	sender := NewWhatsAppSender(gw)

	err := sender.Send(context.Background(), Destination{Address: "+5511999"}, Message{Subject: "ignored", Body: "text"})
	require.NoError(t, err)

	assert.Equal(t, ChannelWhatsApp, sender.Channel())
	assert.Equal(t, "+5511999", gw.phone)
	assert.Equal(t, "text", gw.message)
}

func TestNewSendGridSender(t *testing.T) {
	assert.Nil(t, NewSendGridSender(SendGridConfig{FromEmail: "spa@example.com"}))

	sender := NewSendGridSender(SendGridConfig{APIKey: "key", FromEmail: "spa@example.com"})
	require.NotNil(t, sender)
	assert.Equal(t, defaultFromName, sender.fromName)
	assert.Equal(t, ChannelEmail, sender.Channel())
}

func TestSendGridSender_RefusesPlaceholder(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{APIKey: "key", FromEmail: "spa@example.com"})

	err := sender.Send(context.Background(), Destination{Address: "whatsapp_5511999@temp.local"}, Message{Body: "x"})
	require.ErrorIs(t, err, ErrPlaceholderAddress)
}

func TestSendGridSender_NilClient(t *testing.T) {
	err := (&SendGridSender{}).Send(context.Background(), Destination{Address: "a@b.c"}, Message{})
	require.ErrorIs(t, err, ErrChannelUnavailable)
}
