package notification

// Channel канал доставки уведомлений
type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
)

// Destination получатель уведомления
type Destination struct {
	Channel Channel
	Address string // телефон для WhatsApp, email для почты
	Name    string
}

// Message текст уведомления
// Subject используется только для email
type Message struct {
	Subject string
	Body    string
}

// Result результат отправки
// Ошибка доставки никогда не возвращается вызывающему как error, только в Result
type Result struct {
	Channel Channel
	Success bool
	Err     error
}
