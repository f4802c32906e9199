package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")
)

// TimeString время суток в формате "HH:MM" (например, "09:30")
// Хранится как строка, сравнивается и складывается как время
// Значения нормализуются: "9:30" приводится к "09:30"
type TimeString string

// NewTimeString создает TimeString из time.Time (берутся только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString парсит и нормализует строку времени
// Допускает отсутствие ведущего нуля в часах ("9:30" → "09:30")
func NewTimeStringFromString(s string) (TimeString, error) {
	h, m, err := parseHourMinute(s)
	if err != nil {
		return "", err
	}
	return TimeString(fmt.Sprintf("%02d:%02d", h, m)), nil
}

// parseHourMinute разбирает строку "H:MM" / "HH:MM" на часы и минуты
func parseHourMinute(s string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	return h, m, nil
}

// String возвращает строковое представление времени
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет, что значение является корректным временем суток
func (t TimeString) Validate() error {
	_, _, err := parseHourMinute(string(t))
	return err
}

// minutes возвращает количество минут с начала суток
func (t TimeString) minutes() (int, error) {
	h, m, err := parseHourMinute(string(t))
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

// AddMinutes возвращает время, сдвинутое на minutes минут вперед
// Выход за границу суток считается ошибкой
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := t.minutes()
	if err != nil {
		return "", err
	}

	total += minutes
	if total < 0 || total > 24*60 {
		return "", fmt.Errorf("%w: %q +%d minutes is out of day range", ErrInvalidTimeString, t, minutes)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore возвращает true, если t строго раньше other
// Некорректные значения считаются несравнимыми (false)
func (t TimeString) IsBefore(other TimeString) bool {
	a, err := t.minutes()
	if err != nil {
		return false
	}
	b, err := other.minutes()
	if err != nil {
		return false
	}
	return a < b
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, err := t.minutes()
	if err != nil {
		return false
	}
	b, err := other.minutes()
	if err != nil {
		return false
	}
	return a > b
}

// Equal сравнивает два времени по значению (после нормализации)
func (t TimeString) Equal(other TimeString) bool {
	a, err := t.minutes()
	if err != nil {
		return false
	}
	b, err := other.minutes()
	if err != nil {
		return false
	}
	return a == b
}
