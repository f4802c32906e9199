package domain

import (
	"time"
)

// BookingStatus represents the lifecycle state of a booking
// Закрытый enum: статус меняется только переходом active → cancelled
type BookingStatus string

const (
	StatusActive    BookingStatus = "active"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid returns true if the status is a known lifecycle state
func (s BookingStatus) IsValid() bool {
	return s == StatusActive || s == StatusCancelled
}

// Booking represents a client appointment in the system
type Booking struct {
	ID        int64
	ClientID  int64
	ServiceID int64
	AreaID    int64
	Date      time.Time // Дата записи (без компонента времени)
	SlotLabel string    // Метка слота "HH:MM-HH:MM"; новые записи хранят каноническую форму
	Status    BookingStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking counts toward occupancy
func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

// IsCancelled returns true if the booking has been cancelled
// Отмена терминальна: перехода cancelled → active нет
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// ParseSlot парсит метку слота бронирования с нормализацией
// Старые записи могут содержать метку без ведущих нулей или мусор -
// вызывающий сам решает, пропустить такую запись или вернуть ошибку
func (b *Booking) ParseSlot() (TimeSlot, error) {
	return ParseSlotLabel(b.SlotLabel)
}

// AreaBookingsFilter фильтр для получения бронирований зоны обслуживания
type AreaBookingsFilter struct {
	AreaID           int64          // Обязательный параметр
	Date             *time.Time     // Фильтр по дате (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отменённые бронирования
}
