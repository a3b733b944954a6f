package whatsapp

import "errors"

var (
	// ErrNotConfigured возвращается, если не задан адрес шлюза
	ErrNotConfigured = errors.New("whatsapp client: gateway is not configured")

	// ErrInvalidPhone возвращается, если номер не содержит цифр
	ErrInvalidPhone = errors.New("whatsapp client: invalid phone number")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("whatsapp client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("whatsapp client: invalid response")

	// ErrRejected возвращается, когда шлюз отклонил сообщение (4xx)
	ErrRejected = errors.New("whatsapp client: message rejected")
)
