package request_reschedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("request_reschedule: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("request_reschedule: booking not found")

	// ErrPendingExists возвращается, когда у бронирования уже есть ожидающая заявка
	ErrPendingExists = errors.New("request_reschedule: reschedule request already pending")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("request_reschedule: internal error")
)
