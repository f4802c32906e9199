package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SLN-BookingService/internal/infra/storage/booking"
	catalogClient "github.com/m04kA/SLN-BookingService/internal/integrations/catalogservice"
)

// UseCase use case создания бронирования
//
// Проверки идут в фиксированном порядке с остановкой на первой ошибке:
// корректность полей и даты → слот входит в каталог зоны → слот не занят →
// нет активного дубликата (клиент, услуга, дата, слот). Проверка занятости
// выполняется в сериализуемой транзакции с блокировкой строк зоны на дату,
// а частичный уникальный индекс БД страхует от гонки двух одновременных
// создателей: нарушение индекса возвращается как ErrSlotOccupied.
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

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, service=%d, area=%d, date=%s, slot=%s",
		req.ClientID, req.ServiceID, req.AreaID, req.Date, req.SlotLabel)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Строгий парсинг даты и проверка, что она не в прошлом
	date, err := parseDate(req.Date, uc.location)
	if err != nil {
		uc.logger.Warn("CreateBooking: date parsing failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().In(uc.location)
	if isDateInPast(date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date)
		return nil, fmt.Errorf("%w: date is in the past", ErrInvalidDate)
	}

	// 3. Проверяем зону и услугу через сервис каталога
	if _, err := uc.catalogClient.GetArea(ctx, req.AreaID); err != nil {
		return nil, uc.mapAreaError(req.AreaID, err)
	}

	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		return nil, uc.mapServiceError(req.ServiceID, err)
	}

	// Услуга принадлежит ровно одной зоне
	if service.AreaID != req.AreaID {
		uc.logger.Warn("CreateBooking: service id=%d belongs to area=%d, not area=%d",
			req.ServiceID, service.AreaID, req.AreaID)
		return nil, ErrServiceNotInArea
	}

	// 4. Слот должен входить в каталог зоны (сравнение после нормализации)
	slot, ok := uc.slotCatalog.Find(req.AreaID, req.SlotLabel)
	if !ok {
		uc.logger.Warn("CreateBooking: slot %q is not in catalog of area=%d", req.SlotLabel, req.AreaID)
		return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, req.SlotLabel)
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 5. Проверка занятости и запись - в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Активные бронирования зоны на дату с блокировкой (FOR UPDATE)
		filter := domain.AreaBookingsFilter{
			AreaID:           req.AreaID,
			Date:             &date,
			IncludeCancelled: false,
		}

		bookings, err := uc.bookingRepo.GetByAreaWithFilter(txCtx, filter)
		if err != nil {
			return uc.mapRepoError("get bookings", err)
		}

		// 5.2. Слот свободен?
		if holder := slotHeldByOther(bookings, slot, 0); holder != nil {
			uc.logger.Warn("CreateBooking: slot %s already taken by booking id=%d", slot.Label(), holder.ID)
			return ErrSlotOccupied
		}

		// 5.3. Нет ли активного дубликата (клиент, услуга, дата, слот)
		// Отдельная проверка: защищает от повторной отправки формы и от
		// склейки бронирований разных клиентов при путанице с ID
		_, err = uc.bookingRepo.FindActiveDuplicate(txCtx, req.ClientID, req.ServiceID, date, slot.Label())
		if err == nil {
			uc.logger.Warn("CreateBooking: duplicate booking for client=%d, service=%d, date=%s, slot=%s",
				req.ClientID, req.ServiceID, req.Date, slot.Label())
			return ErrDuplicateBooking
		}
		if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return uc.mapRepoError("find duplicate", err)
		}

		// 5.4. Создаем бронирование с канонической меткой слота
		booking := &domain.Booking{
			ClientID:  req.ClientID,
			ServiceID: req.ServiceID,
			AreaID:    req.AreaID,
			Date:      date,
			SlotLabel: slot.Label(),
			Status:    domain.StatusActive,
			// Денормализация данных услуги для истории
			ServiceName:  service.Title,
			ServicePrice: service.Price,
			Notes:        req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Гонка с конкурентным создателем: уникальный индекс сработал
			// после нашей проверки занятости
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %s taken concurrently", slot.Label())
				return ErrSlotOccupied
			}
			return uc.mapRepoError("create booking", err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

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

func (uc *UseCase) mapAreaError(areaID int64, err error) error {
	if errors.Is(err, catalogClient.ErrAreaNotFound) {
		uc.logger.Warn("CreateBooking: area id=%d not found", areaID)
		return ErrAreaNotFound
	}
	if errors.Is(err, catalogClient.ErrServiceUnavailable) {
		uc.logger.Error("CreateBooking: catalog service unavailable: %v", err)
		return fmt.Errorf("%w: catalog: %v", ErrUnavailable, err)
	}
	uc.logger.Error("CreateBooking: failed to get area id=%d: %v", areaID, err)
	return fmt.Errorf("%w: failed to get area: %v", ErrInternal, err)
}

func (uc *UseCase) mapServiceError(serviceID int64, err error) error {
	if errors.Is(err, catalogClient.ErrServiceNotFound) {
		uc.logger.Warn("CreateBooking: service id=%d not found", serviceID)
		return ErrServiceNotFound
	}
	if errors.Is(err, catalogClient.ErrServiceUnavailable) {
		uc.logger.Error("CreateBooking: catalog service unavailable: %v", err)
		return fmt.Errorf("%w: catalog: %v", ErrUnavailable, err)
	}
	uc.logger.Error("CreateBooking: failed to get service id=%d: %v", serviceID, err)
	return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
}

func (uc *UseCase) mapRepoError(op string, err error) error {
	if errors.Is(err, bookingRepo.ErrStorageUnavailable) {
		uc.logger.Error("CreateBooking: storage unavailable (%s): %v", op, err)
		return fmt.Errorf("%w: storage: %v", ErrUnavailable, err)
	}
	uc.logger.Error("CreateBooking: failed to %s: %v", op, err)
	return fmt.Errorf("%w: failed to %s: %v", ErrInternal, op, err)
}
