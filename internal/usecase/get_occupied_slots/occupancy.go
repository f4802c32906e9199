package get_occupied_slots

import (
	"github.com/m04kA/SLN-BookingService/internal/domain"
)

// buildOccupancy собирает множество занятых слотов из активных бронирований
//
// Метка слота каждого бронирования нормализуется перед сравнением, поэтому
// старые записи вида "9:00-10:00" занимают тот же слот, что и "09:00-10:00".
// Бронирование с нечитаемой меткой исключается из занятости с предупреждением
// о нарушении целостности данных - резолвер никогда не падает из-за одной
// испорченной записи.
//
// Интервалы сравниваются только по равенству нормализованных меток: запись
// "11:00-13:00" не помечает занятыми слоты "11:00-12:00" и "12:00-13:00".
func buildOccupancy(bookings []*domain.Booking, log Logger) *domain.Occupancy {
	occ := domain.NewOccupancy()

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}

		slot, err := b.ParseSlot()
		if err != nil {
			log.Warn("OccupiedSlots: data integrity: booking id=%d has malformed slot label %q, excluded from occupancy",
				b.ID, b.SlotLabel)
			continue
		}

		occ.Add(slot)
	}

	return occ
}
