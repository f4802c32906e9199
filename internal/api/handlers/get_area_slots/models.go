package get_area_slots

import (
	"github.com/m04kA/SLN-BookingService/internal/domain"
)

// SlotItem HTTP модель одного слота каталога
type SlotItem struct {
	Label string `json:"label"` // "09:00-10:00"
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "10:00"
}

// AreaSlotsResponse HTTP response model
type AreaSlotsResponse struct {
	AreaID int64      `json:"areaId"`
	Slots  []SlotItem `json:"slots"`
}

// FromCatalogSlots конвертирует слоты каталога в HTTP response
// Порядок слотов сохраняется как в каталоге
func FromCatalogSlots(areaID int64, slots []domain.TimeSlot) *AreaSlotsResponse {
	items := make([]SlotItem, 0, len(slots))
	for _, slot := range slots {
		items = append(items, SlotItem{
			Label: slot.Label(),
			Start: slot.Start.String(),
			End:   slot.End.String(),
		})
	}

	return &AreaSlotsResponse{
		AreaID: areaID,
		Slots:  items,
	}
}
