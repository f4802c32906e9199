package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SLN-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/SLN-BookingService/internal/service/bookings/models"
)

// Service сервис для чтения и отмены бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		return nil, s.mapRepoError("GetByID", err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetClientBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d, status=%v", req.ClientID, req.Status)

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		return nil, s.mapRepoError("GetClientBookings", err)
	}

	s.logger.Info("GetClientBookings: fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// GetAreaBookings получает бронирования зоны обслуживания с фильтрацией
// по дате, статусу и включению отменённых (календарь работника/администратора)
func (s *Service) GetAreaBookings(ctx context.Context, req *models.GetAreaBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetAreaBookings: fetching bookings for area=%d", req.AreaID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetAreaBookings: invalid filter for area=%d: %v", req.AreaID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByAreaWithFilter(ctx, filter)
	if err != nil {
		return nil, s.mapRepoError("GetAreaBookings", err)
	}

	s.logger.Info("GetAreaBookings: fetched %d bookings for area=%d", len(bookings), req.AreaID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование (переход active → cancelled)
//
// Идемпотентна: отмена уже отменённого бронирования - no-op успех, состояние
// не меняется. Слот освобождается и сразу исчезает из занятости зоны
func (s *Service) Cancel(ctx context.Context, bookingID int64) error {
	s.logger.Info("Cancel: cancelling booking id=%d", bookingID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		return s.mapRepoError("Cancel", err)
	}

	// Повторная отмена ничего не меняет
	if booking.IsCancelled() {
		s.logger.Info("Cancel: booking id=%d is already cancelled, no-op", bookingID)
		return nil
	}

	if err := s.bookingRepo.SetCancelled(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		return s.mapRepoError("Cancel", err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

func (s *Service) mapRepoError(op string, err error) error {
	if errors.Is(err, bookingRepo.ErrStorageUnavailable) {
		s.logger.Error("%s: storage unavailable: %v", op, err)
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
