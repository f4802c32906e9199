package get_area_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SLN-BookingService/internal/api/handlers"
	"github.com/m04kA/SLN-BookingService/internal/domain"
	"github.com/m04kA/SLN-BookingService/internal/service/bookings"
	"github.com/m04kA/SLN-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidAreaID = "некорректный ID зоны обслуживания"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter = "некорректные параметры фильтра"
	msgUnavailable   = "сервис временно недоступен, повторите запрос позже"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/areas/{areaId}/bookings?date=YYYY-MM-DD&status=active&includeCancelled=true
// Календарь зоны для администратора
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем areaId из URL
	vars := mux.Vars(r)
	areaIDStr := vars["areaId"]

	areaID, err := strconv.ParseInt(areaIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /areas/{areaId}/bookings - Invalid area ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAreaID)
		return
	}

	query := r.URL.Query()

	// Фильтр по дате (опционально)
	var datePtr *time.Time
	if dateStr := query.Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /areas/{areaId}/bookings - Invalid date: area_id=%d, date=%s", areaID, dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		datePtr = &date
	}

	// Фильтр по статусу (опционально)
	var statusPtr *string
	if status := query.Get("status"); status != "" {
		statusPtr = &status
	}

	includeCancelled := query.Get("includeCancelled") == "true"

	serviceReq := &models.GetAreaBookingsRequest{
		AreaID:           areaID,
		Date:             datePtr,
		Status:           statusPtr,
		IncludeCancelled: includeCancelled,
	}

	result, err := h.service.GetAreaBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /areas/{areaId}/bookings - Invalid filter: area_id=%d", areaID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		case errors.Is(err, bookings.ErrUnavailable):
			h.logger.Error("GET /areas/{areaId}/bookings - Storage unavailable: area_id=%d, error=%v", areaID, err)
			handlers.RespondUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("GET /areas/{areaId}/bookings - Failed to get bookings: area_id=%d, error=%v", areaID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /areas/{areaId}/bookings - Bookings retrieved successfully: area_id=%d, count=%d",
		areaID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
