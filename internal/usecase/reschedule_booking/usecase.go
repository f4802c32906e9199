package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SLN-BookingService/internal/infra/storage/booking"
	catalogClient "github.com/m04kA/SLN-BookingService/internal/integrations/catalogservice"
)

// UseCase use case переноса бронирования
//
// Перенос - это переход active → active: дата, слот и услуга меняются на месте,
// история бронирования сохраняется. Новые значения проходят ту же валидацию,
// что и при создании, но собственный прежний слот бронирования из проверки
// занятости исключается (сравнение по ID бронирования)
type UseCase struct {
	bookingRepo   BookingRepository
	slotCatalog   SlotCatalog
	catalogClient CatalogServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	location      *time.Location
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotCatalog SlotCatalog,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		slotCatalog:   slotCatalog,
		catalogClient: catalogClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		location:      location,
		logger:        logger,
	}
}

// WithTimeProvider подменяет провайдер времени (используется в тестах)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case переноса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, date=%s, slot=%s", req.BookingID, req.Date, req.SlotLabel)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Строгий парсинг даты и проверка, что она не в прошлом
	date, err := parseDate(req.Date, uc.location)
	if err != nil {
		uc.logger.Warn("RescheduleBooking: date parsing failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().In(uc.location)
	if isDateInPast(date, now) {
		uc.logger.Warn("RescheduleBooking: date %s is in the past", req.Date)
		return nil, fmt.Errorf("%w: date is in the past", ErrInvalidDate)
	}

	// 3. Загружаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		return nil, uc.mapRepoError("get booking", err)
	}

	// Отмена терминальна
	if booking.IsCancelled() {
		uc.logger.Warn("RescheduleBooking: booking id=%d is cancelled", req.BookingID)
		return nil, ErrBookingCancelled
	}

	// 4. Целевая услуга (по умолчанию - текущая); зона следует за услугой
	targetServiceID := booking.ServiceID
	if req.ServiceID != nil {
		targetServiceID = *req.ServiceID
	}

	service, err := uc.catalogClient.GetService(ctx, targetServiceID)
	if err != nil {
		return nil, uc.mapServiceError(targetServiceID, err)
	}

	// 5. Новый слот должен входить в каталог целевой зоны
	slot, ok := uc.slotCatalog.Find(service.AreaID, req.SlotLabel)
	if !ok {
		uc.logger.Warn("RescheduleBooking: slot %q is not in catalog of area=%d", req.SlotLabel, service.AreaID)
		return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, req.SlotLabel)
	}

	var result *domain.Booking

	// 6. Проверка занятости и запись - в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Активные бронирования целевой зоны на дату с блокировкой
		filter := domain.AreaBookingsFilter{
			AreaID:           service.AreaID,
			Date:             &date,
			IncludeCancelled: false,
		}

		bookings, err := uc.bookingRepo.GetByAreaWithFilter(txCtx, filter)
		if err != nil {
			return uc.mapRepoError("get bookings", err)
		}

		// 6.2. Слот свободен? Собственное бронирование конфликтом не считается
		if holder := slotHeldByOther(bookings, slot, booking.ID); holder != nil {
			uc.logger.Warn("RescheduleBooking: slot %s already taken by booking id=%d", slot.Label(), holder.ID)
			return ErrSlotOccupied
		}

		// 6.3. Нет ли другого активного бронирования с идентичным кортежем
		dup, err := uc.bookingRepo.FindActiveDuplicate(txCtx, booking.ClientID, targetServiceID, date, slot.Label())
		if err == nil && dup.ID != booking.ID {
			uc.logger.Warn("RescheduleBooking: duplicate booking id=%d for client=%d", dup.ID, booking.ClientID)
			return ErrDuplicateBooking
		}
		if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return uc.mapRepoError("find duplicate", err)
		}

		// 6.4. Обновляем бронирование на месте
		updated := &domain.Booking{
			ID:           booking.ID,
			ClientID:     booking.ClientID,
			ServiceID:    targetServiceID,
			AreaID:       service.AreaID,
			Date:         date,
			SlotLabel:    slot.Label(),
			Status:       booking.Status,
			ServiceName:  service.Title,
			ServicePrice: service.Price,
			Notes:        booking.Notes,
		}
		if req.Notes != nil {
			updated.Notes = req.Notes
		}

		result, err = uc.bookingRepo.UpdateSchedule(txCtx, booking.ID, updated)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("RescheduleBooking: slot %s taken concurrently", slot.Label())
				return ErrSlotOccupied
			}
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return uc.mapRepoError("update booking", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: successfully rescheduled booking id=%d to date=%s, slot=%s",
		result.ID, req.Date, result.SlotLabel)

	return &Response{
		ID:           result.ID,
		ClientID:     result.ClientID,
		ServiceID:    result.ServiceID,
		AreaID:       result.AreaID,
		Date:         result.Date,
		SlotLabel:    result.SlotLabel,
		Status:       string(result.Status),
		ServiceName:  result.ServiceName,
		ServicePrice: result.ServicePrice,
		Notes:        result.Notes,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}

func (uc *UseCase) mapServiceError(serviceID int64, err error) error {
	if errors.Is(err, catalogClient.ErrServiceNotFound) {
		uc.logger.Warn("RescheduleBooking: service id=%d not found", serviceID)
		return ErrServiceNotFound
	}
	if errors.Is(err, catalogClient.ErrServiceUnavailable) {
		uc.logger.Error("RescheduleBooking: catalog service unavailable: %v", err)
		return fmt.Errorf("%w: catalog: %v", ErrUnavailable, err)
	}
	uc.logger.Error("RescheduleBooking: failed to get service id=%d: %v", serviceID, err)
	return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
}

func (uc *UseCase) mapRepoError(op string, err error) error {
	if errors.Is(err, bookingRepo.ErrStorageUnavailable) {
		uc.logger.Error("RescheduleBooking: storage unavailable (%s): %v", op, err)
		return fmt.Errorf("%w: storage: %v", ErrUnavailable, err)
	}
	uc.logger.Error("RescheduleBooking: failed to %s: %v", op, err)
	return fmt.Errorf("%w: failed to %s: %v", ErrInternal, op, err)
}
