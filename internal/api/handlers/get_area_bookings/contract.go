package get_area_bookings

import (
	"context"

	"github.com/m04kA/SLN-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetAreaBookings(ctx context.Context, req *models.GetAreaBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
