package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const (
	// TimeLayout формат времени с точностью до секунд, в котором время хранится в БД
	TimeLayout = "15:04:05"
	// ShortTimeLayout формат времени без секунд, который приходит от клиентов
	ShortTimeLayout = "15:04"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format")

// TimeString время дня в нормализованном формате "HH:MM:SS"
// Значение "HH:MM" расширяется до "HH:MM:00"
type TimeString struct {
	value string
}

// NewTimeString создает TimeString из time.Time (дата отбрасывается)
func NewTimeString(t time.Time) TimeString {
	return TimeString{value: t.Format(TimeLayout)}
}

// NewTimeStringFromString парсит и нормализует строку времени
// Допустимы форматы "HH:MM" и "HH:MM:SS"
func NewTimeStringFromString(s string) (TimeString, error) {
	switch len(s) {
	case len(ShortTimeLayout):
		s += ":00"
	case len(TimeLayout):
	default:
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	parsed, err := time.Parse(TimeLayout, s)
	if err != nil {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	return NewTimeString(parsed), nil
}

// MustTimeString как NewTimeStringFromString, но паникует при ошибке
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// String возвращает время в формате "HH:MM:SS"
func (t TimeString) String() string {
	return t.value
}

// Short возвращает время в формате "HH:MM" (для сообщений клиентам)
func (t TimeString) Short() string {
	if len(t.value) < len(ShortTimeLayout) {
		return t.value
	}
	return t.value[:len(ShortTimeLayout)]
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t.value == ""
}

// Scan реализует sql.Scanner
// lib/pq отдаёт колонку типа time как time.Time, текстовые драйверы - как строку
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		t.value = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.value, nil
}

// MarshalText реализует encoding.TextMarshaler (используется encoding/json)
func (t TimeString) MarshalText() ([]byte, error) {
	return []byte(t.value), nil
}

// UnmarshalText реализует encoding.TextUnmarshaler
func (t *TimeString) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		t.value = ""
		return nil
	}
	return t.scanString(string(data))
}
