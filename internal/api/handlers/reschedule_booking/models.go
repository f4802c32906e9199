package reschedule_booking

import (
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	rescheduleBooking "github.com/m04kA/SLN-BookingService/internal/usecase/reschedule_booking"
)

// RescheduleBookingRequest HTTP request model
// Дата и слот обязательны, услуга и заметки - опционально
type RescheduleBookingRequest struct {
	Date      string  `json:"date"` // "2025-06-10"
	Slot      string  `json:"slot"` // "09:00-10:00"
	ServiceID *int64  `json:"serviceId,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           int64   `json:"id"`
	ClientID     int64   `json:"clientId"`
	ServiceID    int64   `json:"serviceId"`
	AreaID       int64   `json:"areaId"`
	Date         string  `json:"date"`
	Slot         string  `json:"slot"`
	Status       string  `json:"status"`
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	Notes        *string `json:"notes,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID int64) *rescheduleBooking.Request {
	return &rescheduleBooking.Request{
		BookingID: bookingID,
		Date:      r.Date,
		SlotLabel: r.Slot,
		ServiceID: r.ServiceID,
		Notes:     r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID,
		ClientID:     resp.ClientID,
		ServiceID:    resp.ServiceID,
		AreaID:       resp.AreaID,
		Date:         resp.Date.Format(domain.DateFormat),
		Slot:         resp.SlotLabel,
		Status:       resp.Status,
		ServiceName:  resp.ServiceName,
		ServicePrice: resp.ServicePrice,
		Notes:        resp.Notes,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
