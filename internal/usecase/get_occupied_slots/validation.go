package get_occupied_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AreaID <= 0 {
		return fmt.Errorf("%w: areaID must be positive", ErrInvalidInput)
	}

	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// parseDate парсит дату в строгом формате YYYY-MM-DD
// "2025-13-40" и "2025-6-10" отклоняются как некорректные
func parseDate(s string, loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation(domain.DateFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q, expected YYYY-MM-DD", ErrInvalidDate, s)
	}
	return date, nil
}
