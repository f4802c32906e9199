package get_area_slots

import (
	"github.com/m04kA/SLN-BookingService/internal/domain"
)

type SlotCatalog interface {
	SlotsForArea(areaID int64) []domain.TimeSlot
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
