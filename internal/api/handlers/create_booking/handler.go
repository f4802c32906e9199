package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SLN-BookingService/internal/api/handlers"
	createBooking "github.com/m04kA/SLN-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные запроса"
	msgInvalidDate        = "некорректная дата бронирования, ожидается YYYY-MM-DD не в прошлом"
	msgUnknownSlot        = "указанный слот отсутствует в расписании зоны"
	msgAreaNotFound       = "зона обслуживания не найдена"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceNotInArea   = "услуга не относится к выбранной зоне"
	msgSlotOccupied       = "выбранный слот уже занят"
	msgDuplicateBooking   = "такое бронирование уже существует"
	msgUnavailable        = "сервис временно недоступен, повторите запрос позже"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: client_id=%d, date=%s", req.ClientID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrUnknownSlot):
			h.logger.Warn("POST /bookings - Unknown slot: client_id=%d, area_id=%d, slot=%s",
				req.ClientID, req.AreaID, req.Slot)
			handlers.RespondBadRequest(w, msgUnknownSlot)

		case errors.Is(err, createBooking.ErrServiceNotInArea):
			h.logger.Warn("POST /bookings - Service not in area: service_id=%d, area_id=%d",
				req.ServiceID, req.AreaID)
			handlers.RespondBadRequest(w, msgServiceNotInArea)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: client_id=%d", req.ClientID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrAreaNotFound):
			h.logger.Warn("POST /bookings - Area not found: area_id=%d", req.AreaID)
			handlers.RespondNotFound(w, msgAreaNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrSlotOccupied):
			h.logger.Warn("POST /bookings - Slot occupied: area_id=%d, date=%s, slot=%s",
				req.AreaID, req.Date, req.Slot)
			handlers.RespondConflict(w, msgSlotOccupied)

		case errors.Is(err, createBooking.ErrDuplicateBooking):
			h.logger.Warn("POST /bookings - Duplicate booking: client_id=%d, service_id=%d, date=%s, slot=%s",
				req.ClientID, req.ServiceID, req.Date, req.Slot)
			handlers.RespondConflict(w, msgDuplicateBooking)

		case errors.Is(err, createBooking.ErrUnavailable):
			h.logger.Error("POST /bookings - Dependency unavailable: client_id=%d, error=%v", req.ClientID, err)
			handlers.RespondUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: client_id=%d, area_id=%d, error=%v",
				req.ClientID, req.AreaID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, client_id=%d, area_id=%d, slot=%s",
		result.ID, req.ClientID, req.AreaID, result.SlotLabel)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
