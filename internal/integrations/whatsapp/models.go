package whatsapp

// SendMessageRequest тело запроса к шлюзу WhatsApp
type SendMessageRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// SendMessageResponse ответ шлюза при успешной отправке
type SendMessageResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ErrorResponse модель ошибки от шлюза
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
