package get_occupied_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SLN-BookingService/internal/infra/storage/booking"
	catalogClient "github.com/m04kA/SLN-BookingService/internal/integrations/catalogservice"
)

// UseCase use case получения занятых слотов зоны на дату
// Занятость - производная величина: множество слотов, на которые существует
// активное бронирование в этой зоне на эту дату. Ничего не пишет, безопасен
// для конкурентных и повторных вызовов.
type UseCase struct {
	bookingRepo   BookingRepository
	catalogClient CatalogServiceClient
	location      *time.Location
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogClient CatalogServiceClient,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		catalogClient: catalogClient,
		location:      location,
		logger:        logger,
	}
}

// Execute выполняет use case получения занятых слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("OccupiedSlots: area=%d, date=%s", req.AreaID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("OccupiedSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Строгий парсинг даты
	date, err := parseDate(req.Date, uc.location)
	if err != nil {
		uc.logger.Warn("OccupiedSlots: date parsing failed: %v", err)
		return nil, err
	}

	// 3. Проверяем существование зоны
	if _, err := uc.catalogClient.GetArea(ctx, req.AreaID); err != nil {
		return nil, uc.mapCatalogError(req.AreaID, err)
	}

	// 4. Получаем активные бронирования зоны на дату
	// Одно консистентное чтение: весь набор приходит одним запросом
	filter := domain.AreaBookingsFilter{
		AreaID:           req.AreaID,
		Date:             &date,
		IncludeCancelled: false,
	}

	bookings, err := uc.bookingRepo.GetByAreaWithFilter(ctx, filter)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStorageUnavailable) {
			uc.logger.Error("OccupiedSlots: storage unavailable: %v", err)
			return nil, fmt.Errorf("%w: storage: %v", ErrUnavailable, err)
		}
		uc.logger.Error("OccupiedSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Собираем занятость (испорченные записи пропускаются с предупреждением)
	occupancy := buildOccupancy(bookings, uc.logger)

	uc.logger.Info("OccupiedSlots: area=%d, date=%s, occupied=%d of %d bookings",
		req.AreaID, req.Date, occupancy.Len(), len(bookings))

	return &Response{
		AreaID:   req.AreaID,
		Date:     date,
		Occupied: occupancy.Slots(),
	}, nil
}

func (uc *UseCase) mapCatalogError(areaID int64, err error) error {
	if errors.Is(err, catalogClient.ErrAreaNotFound) {
		uc.logger.Warn("OccupiedSlots: area id=%d not found", areaID)
		return ErrAreaNotFound
	}
	if errors.Is(err, catalogClient.ErrServiceUnavailable) {
		uc.logger.Error("OccupiedSlots: catalog service unavailable: %v", err)
		return fmt.Errorf("%w: catalog: %v", ErrUnavailable, err)
	}
	uc.logger.Error("OccupiedSlots: failed to get area id=%d: %v", areaID, err)
	return fmt.Errorf("%w: failed to get area: %v", ErrInternal, err)
}
