package get_occupied_slots

import (
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
)

// Request модель запроса занятых слотов
type Request struct {
	AreaID int64  // ID зоны обслуживания
	Date   string // Дата в строгом формате "YYYY-MM-DD"
}

// Response модель ответа с занятыми слотами зоны на дату
type Response struct {
	AreaID   int64             // ID зоны обслуживания
	Date     time.Time         // Запрошенная дата
	Occupied []domain.TimeSlot // Занятые слоты в порядке бронирований (по времени начала)
}

// OccupiedLabels возвращает канонические метки занятых слотов
func (r *Response) OccupiedLabels() []string {
	labels := make([]string, len(r.Occupied))
	for i, s := range r.Occupied {
		labels[i] = s.Label()
	}
	return labels
}
