package notification

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/m04kA/spa-booking-service/pkg/metrics"
)

// Результаты отправки для метрик
const (
	resultSent    = "sent"
	resultFailed  = "failed"
	resultSkipped = "skipped"
)

// Dispatcher рассылает уведомления по каналам
// Отправка best-effort: ошибки логируются и считаются в метриках, но не прерывают
// бизнес-операцию. Частота отправки ограничена общим лимитером
type Dispatcher struct {
	senders map[Channel]Sender
	limiter *rate.Limiter
	logger  Logger
	metrics *metrics.Metrics
}

// NewDispatcher создает диспетчер уведомлений
// ratePerSecond <= 0 отключает ограничение частоты
func NewDispatcher(logger Logger, m *metrics.Metrics, ratePerSecond float64, burst int, senders ...Sender) *Dispatcher {
	limit := rate.Inf
	if ratePerSecond > 0 {
		limit = rate.Limit(ratePerSecond)
	}
	if burst <= 0 {
		burst = 1
	}

	d := &Dispatcher{
		senders: make(map[Channel]Sender, len(senders)),
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
		metrics: m,
	}
	for _, s := range senders {
		if s != nil {
			d.senders[s.Channel()] = s
		}
	}
	return d
}

// HasChannel возвращает true, если для канала настроен отправитель
func (d *Dispatcher) HasChannel(ch Channel) bool {
	_, ok := d.senders[ch]
	return ok
}

// Send отправляет одно уведомление
func (d *Dispatcher) Send(ctx context.Context, dest Destination, msg Message) (res Result) {
	res.Channel = dest.Channel

	sender, ok := d.senders[dest.Channel]
	if !ok {
		res.Err = fmt.Errorf("%w: %s", ErrChannelUnavailable, dest.Channel)
		d.metrics.IncNotification(string(dest.Channel), resultSkipped)
		return res
	}

	if dest.Address == "" {
		res.Err = ErrNoAddress
		d.metrics.IncNotification(string(dest.Channel), resultSkipped)
		return res
	}

	defer func() {
		if p := recover(); p != nil {
			res.Success = false
			res.Err = fmt.Errorf("%w: %v", ErrSendPanic, p)
			d.metrics.IncNotification(string(dest.Channel), resultFailed)
			d.logger.Error("Notification: %s sender panicked: %v", dest.Channel, p)
		}
	}()

	if err := d.limiter.Wait(ctx); err != nil {
		res.Err = fmt.Errorf("%w: rate limiter: %v", ErrSendFailed, err)
		d.metrics.IncNotification(string(dest.Channel), resultFailed)
		d.logger.Warn("Notification: %s dropped by rate limiter: %v", dest.Channel, err)
		return res
	}

	if err := sender.Send(ctx, dest, msg); err != nil {
		res.Err = fmt.Errorf("%w: %v", ErrSendFailed, err)
		d.metrics.IncNotification(string(dest.Channel), resultFailed)
		d.logger.Error("Notification: failed to send %s to %s: %v", dest.Channel, dest.Name, err)
		return res
	}

	res.Success = true
	d.metrics.IncNotification(string(dest.Channel), resultSent)
	d.logger.Info("Notification: %s sent to %s", dest.Channel, dest.Name)
	return res
}
