package get_occupied_slots

import (
	"github.com/m04kA/SLN-BookingService/internal/domain"
	getOccupiedSlots "github.com/m04kA/SLN-BookingService/internal/usecase/get_occupied_slots"
)

// OccupiedSlotsResponse HTTP response model
type OccupiedSlotsResponse struct {
	AreaID   int64    `json:"areaId"`
	Date     string   `json:"date"`     // "2025-06-10"
	Occupied []string `json:"occupied"` // ["09:00-10:00", ...]
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getOccupiedSlots.Response) *OccupiedSlotsResponse {
	return &OccupiedSlotsResponse{
		AreaID:   resp.AreaID,
		Date:     resp.Date.Format(domain.DateFormat),
		Occupied: resp.OccupiedLabels(),
	}
}
