package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.AreaID <= 0 {
		return fmt.Errorf("%w: areaID must be positive", ErrInvalidInput)
	}

	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.SlotLabel == "" {
		return fmt.Errorf("%w: slot is required", ErrInvalidInput)
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
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

// slotHeldByOther проверяет, что слот занят активным бронированием,
// отличным от excludeID (0 - без исключения)
//
// Сравнение идет по нормализованным меткам: запись с меткой "9:00-10:00"
// держит тот же слот, что и "09:00-10:00". Нечитаемые метки пропускаются -
// их занятость не определена (см. резолвер занятости)
func slotHeldByOther(bookings []*domain.Booking, slot domain.TimeSlot, excludeID int64) *domain.Booking {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if excludeID != 0 && b.ID == excludeID {
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
