package reschedule

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка на перенос не найдена
	ErrRequestNotFound = errors.New("reschedule.repository: reschedule request not found")

	// ErrPendingExists возвращается, когда у бронирования уже есть ожидающая заявка
	ErrPendingExists = errors.New("reschedule.repository: pending reschedule request already exists")

	// ErrAlreadyAnswered возвращается при ответе на уже обработанную заявку
	ErrAlreadyAnswered = errors.New("reschedule.repository: reschedule request already answered")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reschedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reschedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reschedule.repository: failed to scan row")
)
