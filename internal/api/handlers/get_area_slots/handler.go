package get_area_slots

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SLN-BookingService/internal/api/handlers"
)

const (
	msgInvalidAreaID = "некорректный ID зоны обслуживания"
)

type Handler struct {
	catalog SlotCatalog
	logger  Logger
}

func NewHandler(catalog SlotCatalog, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/areas/{areaId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем areaId из URL
	vars := mux.Vars(r)
	areaIDStr := vars["areaId"]

	areaID, err := strconv.ParseInt(areaIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /areas/{areaId}/slots - Invalid area ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAreaID)
		return
	}

	// Каталог статичен: для незнакомой зоны действует сетка по умолчанию
	slots := h.catalog.SlotsForArea(areaID)

	h.logger.Info("GET /areas/{areaId}/slots - Slots retrieved: area_id=%d, count=%d", areaID, len(slots))
	handlers.RespondJSON(w, http.StatusOK, FromCatalogSlots(areaID, slots))
}
