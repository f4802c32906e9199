package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SLN-BookingService/pkg/types"
)

var (
	// ErrInvalidSlotLabel возвращается при некорректной метке слота
	ErrInvalidSlotLabel = errors.New("invalid slot label")
)

// TimeSlot фиксированный интервал времени, доступный для записи
// Значения нормализованы ("9:00-10:00" приводится к "09:00-10:00"),
// поэтому сравнение значений эквивалентно сравнению нормализованных меток
type TimeSlot struct {
	Start types.TimeString
	End   types.TimeString
}

// ParseSlotLabel парсит метку слота вида "HH:MM-HH:MM" с нормализацией
// Допускает отсутствие ведущих нулей ("9:00-10:00")
func ParseSlotLabel(label string) (TimeSlot, error) {
	parts := strings.Split(strings.TrimSpace(label), "-")
	if len(parts) != 2 {
		return TimeSlot{}, fmt.Errorf("%w: %q", ErrInvalidSlotLabel, label)
	}

	start, err := types.NewTimeStringFromString(parts[0])
	if err != nil {
		return TimeSlot{}, fmt.Errorf("%w: %q", ErrInvalidSlotLabel, label)
	}

	end, err := types.NewTimeStringFromString(parts[1])
	if err != nil {
		return TimeSlot{}, fmt.Errorf("%w: %q", ErrInvalidSlotLabel, label)
	}

	if !start.IsBefore(end) {
		return TimeSlot{}, fmt.Errorf("%w: %q: start must be before end", ErrInvalidSlotLabel, label)
	}

	return TimeSlot{Start: start, End: end}, nil
}

// Label возвращает каноническую метку слота "HH:MM-HH:MM"
func (s TimeSlot) Label() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// IsZero возвращает true, если слот не задан
func (s TimeSlot) IsZero() bool {
	return s.Start.IsZero() && s.End.IsZero()
}

// Equal сравнивает слоты по нормализованным началу и концу
func (s TimeSlot) Equal(other TimeSlot) bool {
	return s.Start.Equal(other.Start) && s.End.Equal(other.End)
}

// Occupancy множество занятых слотов зоны на конкретную дату
// Вычисляется на лету из активных бронирований, нигде не хранится
type Occupancy struct {
	slots []TimeSlot
	index map[TimeSlot]struct{}
}

// NewOccupancy создает пустое множество занятых слотов
func NewOccupancy() *Occupancy {
	return &Occupancy{index: make(map[TimeSlot]struct{})}
}

// Add добавляет слот в множество (повторное добавление игнорируется)
func (o *Occupancy) Add(slot TimeSlot) {
	if _, ok := o.index[slot]; ok {
		return
	}
	o.index[slot] = struct{}{}
	o.slots = append(o.slots, slot)
}

// Contains возвращает true, если слот занят
func (o *Occupancy) Contains(slot TimeSlot) bool {
	_, ok := o.index[slot]
	return ok
}

// Slots возвращает занятые слоты в порядке добавления
func (o *Occupancy) Slots() []TimeSlot {
	out := make([]TimeSlot, len(o.slots))
	copy(out, o.slots)
	return out
}

// Labels возвращает канонические метки занятых слотов
func (o *Occupancy) Labels() []string {
	labels := make([]string, len(o.slots))
	for i, s := range o.slots {
		labels[i] = s.Label()
	}
	return labels
}

// Len возвращает количество занятых слотов
func (o *Occupancy) Len() int {
	return len(o.slots)
}
