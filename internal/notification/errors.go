package notification

import "errors"

var (
	// ErrChannelUnavailable возвращается, если для канала не настроен отправитель
	ErrChannelUnavailable = errors.New("notification: channel is not configured")

	// ErrNoAddress возвращается, если у получателя нет адреса
	ErrNoAddress = errors.New("notification: destination has no address")

	// ErrPlaceholderAddress возвращается при попытке отправить письмо на сгенерированный email
	ErrPlaceholderAddress = errors.New("notification: placeholder email address")

	// ErrSendPanic возвращается, если отправитель упал с паникой
	ErrSendPanic = errors.New("notification: sender panicked")

	// ErrSendFailed возвращается при ошибке отправки
	ErrSendFailed = errors.New("notification: send failed")
)
