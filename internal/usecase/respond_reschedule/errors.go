package respond_reschedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("respond_reschedule: invalid input data")

	// ErrRequestNotFound возвращается, когда заявка на перенос не найдена
	ErrRequestNotFound = errors.New("respond_reschedule: reschedule request not found")

	// ErrAlreadyAnswered возвращается при повторном ответе на заявку
	ErrAlreadyAnswered = errors.New("respond_reschedule: reschedule request already answered")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("respond_reschedule: internal error")
)
