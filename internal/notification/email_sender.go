package notification

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/m04kA/spa-booking-service/internal/domain"
)

const defaultFromName = "Spa"

// SendGridConfig настройки отправителя SendGrid
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// SendGridSender отправляет уведомления по email через SendGrid
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

// NewSendGridSender создает отправителя SendGrid
// Без API ключа возвращает nil: канал email считается выключенным
func NewSendGridSender(cfg SendGridConfig) *SendGridSender {
	if cfg.APIKey == "" {
		return nil
	}
	if cfg.FromName == "" {
		cfg.FromName = defaultFromName
	}
	return &SendGridSender{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

// Channel возвращает канал отправителя
func (s *SendGridSender) Channel() Channel {
	return ChannelEmail
}

// Send отправляет письмо
// Сгенерированные адреса вида whatsapp_<digits>@temp.local не существуют, на них не пишем
func (s *SendGridSender) Send(ctx context.Context, dest Destination, msg Message) error {
	if s.client == nil {
		return fmt.Errorf("%w: sendgrid client", ErrChannelUnavailable)
	}
	if domain.IsPlaceholderEmail(dest.Address) {
		return ErrPlaceholderAddress
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(dest.Name, dest.Address)
	message := mail.NewSingleEmailPlainText(from, msg.Subject, to, msg.Body)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}

	return nil
}
