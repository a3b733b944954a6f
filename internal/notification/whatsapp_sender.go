package notification

import "context"

// WhatsAppSender отправляет уведомления через шлюз WhatsApp
type WhatsAppSender struct {
	gateway WhatsAppGateway
}

// NewWhatsAppSender создает отправителя WhatsApp
func NewWhatsAppSender(gateway WhatsAppGateway) *WhatsAppSender {
	return &WhatsAppSender{gateway: gateway}
}

// Channel возвращает канал отправителя
func (s *WhatsAppSender) Channel() Channel {
	return ChannelWhatsApp
}

// Send отправляет тело сообщения на телефон получателя
func (s *WhatsAppSender) Send(ctx context.Context, dest Destination, msg Message) error {
	_, err := s.gateway.SendMessage(ctx, dest.Address, msg.Body)
	return err
}
