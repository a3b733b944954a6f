package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrProfessionalNotFound возвращается, когда указанный профессионал не найден
	ErrProfessionalNotFound = errors.New("create_booking: professional not found")

	// ErrServicesNotFound возвращается, когда часть услуг не найдена
	ErrServicesNotFound = errors.New("create_booking: services not found")

	// ErrVariationNotFound возвращается, когда вариация цены не принадлежит услуге
	ErrVariationNotFound = errors.New("create_booking: price variation not found")

	// ErrConflictingProfessionals возвращается, когда услуги закреплены за разными профессионалами
	ErrConflictingProfessionals = errors.New("create_booking: services belong to different professionals")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// ServicesNotFoundError перечисляет все отсутствующие услуги
// errors.Is(err, ErrServicesNotFound) == true
type ServicesNotFoundError struct {
	IDs []int64
}

func (e *ServicesNotFoundError) Error() string {
	return fmt.Sprintf("%s: %v", ErrServicesNotFound.Error(), e.IDs)
}

// Is позволяет сравнивать ошибку с ErrServicesNotFound
func (e *ServicesNotFoundError) Is(target error) bool {
	return target == ErrServicesNotFound
}
