package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SLN-BookingService/internal/api/handlers"
	rescheduleBooking "github.com/m04kA/SLN-BookingService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные запроса"
	msgInvalidDate        = "некорректная дата бронирования, ожидается YYYY-MM-DD не в прошлом"
	msgUnknownSlot        = "указанный слот отсутствует в расписании зоны"
	msgBookingNotFound    = "бронирование не найдено"
	msgBookingCancelled   = "бронирование отменено и не может быть перенесено"
	msgServiceNotFound    = "услуга не найдена"
	msgSlotOccupied       = "выбранный слот уже занят"
	msgDuplicateBooking   = "такое бронирование уже существует"
	msgUnavailable        = "сервис временно недоступен, повторите запрос позже"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID))
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrInvalidDate):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid date: booking_id=%d, date=%s", bookingID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, rescheduleBooking.ErrUnknownSlot):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Unknown slot: booking_id=%d, slot=%s", bookingID, req.Slot)
			handlers.RespondBadRequest(w, msgUnknownSlot)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid input: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, rescheduleBooking.ErrServiceNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Service not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, rescheduleBooking.ErrBookingCancelled):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Booking is cancelled: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgBookingCancelled)

		case errors.Is(err, rescheduleBooking.ErrSlotOccupied):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Slot occupied: booking_id=%d, date=%s, slot=%s",
				bookingID, req.Date, req.Slot)
			handlers.RespondConflict(w, msgSlotOccupied)

		case errors.Is(err, rescheduleBooking.ErrDuplicateBooking):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Duplicate booking: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgDuplicateBooking)

		case errors.Is(err, rescheduleBooking.ErrUnavailable):
			h.logger.Error("PATCH /bookings/{id}/reschedule - Dependency unavailable: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("PATCH /bookings/{id}/reschedule - Failed to reschedule: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/reschedule - Booking rescheduled successfully: booking_id=%d, date=%s, slot=%s",
		result.ID, req.Date, result.SlotLabel)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
