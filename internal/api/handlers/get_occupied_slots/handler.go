package get_occupied_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SLN-BookingService/internal/api/handlers"
	getOccupiedSlots "github.com/m04kA/SLN-BookingService/internal/usecase/get_occupied_slots"
)

const (
	msgInvalidAreaID  = "некорректный ID зоны обслуживания"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgAreaNotFound   = "зона обслуживания не найдена"
	msgUnavailable    = "сервис временно недоступен, повторите запрос позже"
	msgMissingDateArg = "не указана дата, ожидается query параметр date=YYYY-MM-DD"
)

type Handler struct {
	useCase GetOccupiedSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetOccupiedSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/areas/{areaId}/occupied-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем areaId из URL
	vars := mux.Vars(r)
	areaIDStr := vars["areaId"]

	areaID, err := strconv.ParseInt(areaIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /areas/{areaId}/occupied-slots - Invalid area ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAreaID)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /areas/{areaId}/occupied-slots - Missing date query param: area_id=%d", areaID)
		handlers.RespondBadRequest(w, msgMissingDateArg)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getOccupiedSlots.Request{
		AreaID: areaID,
		Date:   date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getOccupiedSlots.ErrInvalidDate):
			h.logger.Warn("GET /areas/{areaId}/occupied-slots - Invalid date: area_id=%d, date=%s", areaID, date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getOccupiedSlots.ErrInvalidInput):
			h.logger.Warn("GET /areas/{areaId}/occupied-slots - Invalid input: area_id=%d", areaID)
			handlers.RespondBadRequest(w, msgInvalidAreaID)

		case errors.Is(err, getOccupiedSlots.ErrAreaNotFound):
			h.logger.Warn("GET /areas/{areaId}/occupied-slots - Area not found: area_id=%d", areaID)
			handlers.RespondNotFound(w, msgAreaNotFound)

		case errors.Is(err, getOccupiedSlots.ErrUnavailable):
			h.logger.Error("GET /areas/{areaId}/occupied-slots - Dependency unavailable: area_id=%d, error=%v", areaID, err)
			handlers.RespondUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("GET /areas/{areaId}/occupied-slots - Failed to resolve occupancy: area_id=%d, error=%v", areaID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /areas/{areaId}/occupied-slots - Occupancy resolved: area_id=%d, date=%s, occupied=%d",
		areaID, date, len(result.Occupied))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
