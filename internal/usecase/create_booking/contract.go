package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	"github.com/m04kA/SLN-BookingService/internal/integrations/catalogservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByAreaWithFilter(ctx context.Context, filter domain.AreaBookingsFilter) ([]*domain.Booking, error)
	FindActiveDuplicate(ctx context.Context, clientID, serviceID int64, date time.Time, slotLabel string) (*domain.Booking, error)
}

// SlotCatalog интерфейс каталога временных слотов
type SlotCatalog interface {
	Find(areaID int64, label string) (domain.TimeSlot, bool)
}

// CatalogServiceClient интерфейс клиента сервиса каталога
type CatalogServiceClient interface {
	GetArea(ctx context.Context, areaID int64) (*catalogservice.Area, error)
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
