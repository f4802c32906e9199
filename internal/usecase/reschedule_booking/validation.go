package reschedule_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.SlotLabel == "" {
		return fmt.Errorf("%w: slot is required", ErrInvalidInput)
	}

	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// parseDate парсит дату в строгом формате YYYY-MM-DD
func parseDate(s string, loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation(domain.DateFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q, expected YYYY-MM-DD", ErrInvalidDate, s)
	}
	return date, nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

// slotHeldByOther проверяет, что слот занят активным бронированием,
// отличным от excludeID
//
// Исключение по ID бронирования (а не по кортежу клиент/услуга/дата/слот)
// критично: без него работник не смог бы сохранить запись с прежним слотом,
// меняя другие поля
func slotHeldByOther(bookings []*domain.Booking, slot domain.TimeSlot, excludeID int64) *domain.Booking {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if b.ID == excludeID {
			continue
		}

		held, err := b.ParseSlot()
		if err != nil {
			continue
		}

		if held.Equal(slot) {
			return b
		}
	}
	return nil
}
