package get_occupied_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SLN-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/SLN-BookingService/internal/integrations/catalogservice"
)

type mockBookingRepo struct {
	getByAreaFn func(ctx context.Context, filter domain.AreaBookingsFilter) ([]*domain.Booking, error)
}

func (m *mockBookingRepo) GetByAreaWithFilter(ctx context.Context, filter domain.AreaBookingsFilter) ([]*domain.Booking, error) {
	return m.getByAreaFn(ctx, filter)
}

type mockCatalogClient struct {
	getAreaFn func(ctx context.Context, areaID int64) (*catalogservice.Area, error)
}

func (m *mockCatalogClient) GetArea(ctx context.Context, areaID int64) (*catalogservice.Area, error) {
	return m.getAreaFn(ctx, areaID)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func areaExists(ctx context.Context, areaID int64) (*catalogservice.Area, error) {
	return &catalogservice.Area{ID: areaID, Name: "Peluqueria"}, nil
}

func activeBooking(id int64, slotLabel string) *domain.Booking {
	return &domain.Booking{
		ID:        id,
		ClientID:  100 + id,
		ServiceID: 1,
		AreaID:    1,
		SlotLabel: slotLabel,
		Status:    domain.StatusActive,
	}
}

func TestUseCase_Execute(t *testing.T) {
	loc := time.UTC

	t.Run("occupancy is derived from active bookings", func(t *testing.T) {
		repo := &mockBookingRepo{
			getByAreaFn: func(ctx context.Context, filter domain.AreaBookingsFilter) ([]*domain.Booking, error) {
				assert.Equal(t, int64(1), filter.AreaID)
				require.NotNil(t, filter.Date)
				assert.Equal(t, "2025-06-10", filter.Date.Format(domain.DateFormat))
				assert.False(t, filter.IncludeCancelled)

				return []*domain.Booking{
					activeBooking(1, "09:00-10:00"),
					activeBooking(2, "11:00-12:00"),
				}, nil
			},
		}

		uc := NewUseCase(repo, &mockCatalogClient{getAreaFn: areaExists}, loc, nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{AreaID: 1, Date: "2025-06-10"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.AreaID)
		assert.Equal(t, []string{"09:00-10:00", "11:00-12:00"}, resp.OccupiedLabels())
	})

	t.Run("no bookings means empty occupancy", func(t *testing.T) {
		repo := &mockBookingRepo{
			getByAreaFn: func(ctx context.Context, filter domain.AreaBookingsFilter) ([]*domain.Booking, error) {
				return nil, nil
			},
		}

		uc := NewUseCase(repo, &mockCatalogClient{getAreaFn: areaExists}, loc, nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{AreaID: 1, Date: "2025-06-10"})
		require.NoError(t, err)
		assert.Empty(t, resp.Occupied)
	})

	t.Run("legacy labels without leading zeros are normalized", func(t *testing.T) {
		repo := &mockBookingRepo{
			getByAreaFn: func(ctx context.Context, filter domain.AreaBookingsFilter) ([]*domain.Booking, error) {
				return []*domain.Booking{
					activeBooking(1, "9:00-10:00"),
				}, nil
			},
		}

		uc := NewUseCase(repo, &mockCatalogClient{getAreaFn: areaExists}, loc, nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{AreaID: 1, Date: "2025-06-10"})
		require.NoError(t, err)
		assert.Equal(t, []string{"09:00-10:00"}, resp.OccupiedLabels())
	})

	t.Run("malformed stored label is skipped, the rest is returned", func(t *testing.T) {
		repo := &mockBookingRepo{
			getByAreaFn: func(ctx context.Context, filter domain.AreaBookingsFilter) ([]*domain.Booking, error) {
				return []*domain.Booking{
					activeBooking(1, "09:00-10:00"),
					activeBooking(2, "not-a-slot"),
					activeBooking(3, "11:00-12:00"),
				}, nil
			},
		}

		uc := NewUseCase(repo, &mockCatalogClient{getAreaFn: areaExists}, loc, nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{AreaID: 1, Date: "2025-06-10"})
		require.NoError(t, err)
		assert.Equal(t, []string{"09:00-10:00", "11:00-12:00"}, resp.OccupiedLabels())
	})

	t.Run("equivalent labels collapse into one occupied slot", func(t *testing.T) {
		repo := &mockBookingRepo{
			getByAreaFn: func(ctx context.Context, filter domain.AreaBookingsFilter) ([]*domain.Booking, error) {
				return []*domain.Booking{
					activeBooking(1, "9:00-10:00"),
					activeBooking(2, "09:00-10:00"),
				}, nil
			},
		}

		uc := NewUseCase(repo, &mockCatalogClient{getAreaFn: areaExists}, loc, nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{AreaID: 1, Date: "2025-06-10"})
		require.NoError(t, err)
		assert.Equal(t, []string{"09:00-10:00"}, resp.OccupiedLabels())
	})

	t.Run("unreadable date is rejected", func(t *testing.T) {
		uc := NewUseCase(&mockBookingRepo{}, &mockCatalogClient{getAreaFn: areaExists}, loc, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{AreaID: 1, Date: "2025-13-40"})
		assert.ErrorIs(t, err, ErrInvalidDate)

		_, err = uc.Execute(context.Background(), &Request{AreaID: 1, Date: "june 10"})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		uc := NewUseCase(&mockBookingRepo{}, &mockCatalogClient{getAreaFn: areaExists}, loc, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{AreaID: 0, Date: "2025-06-10"})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = uc.Execute(context.Background(), &Request{AreaID: 1, Date: ""})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown area", func(t *testing.T) {
		client := &mockCatalogClient{
			getAreaFn: func(ctx context.Context, areaID int64) (*catalogservice.Area, error) {
				return nil, catalogservice.ErrAreaNotFound
			},
		}

		uc := NewUseCase(&mockBookingRepo{}, client, loc, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{AreaID: 99, Date: "2025-06-10"})
		assert.ErrorIs(t, err, ErrAreaNotFound)
	})

	t.Run("catalog service unavailable", func(t *testing.T) {
		client := &mockCatalogClient{
			getAreaFn: func(ctx context.Context, areaID int64) (*catalogservice.Area, error) {
				return nil, catalogservice.ErrServiceUnavailable
			},
		}

		uc := NewUseCase(&mockBookingRepo{}, client, loc, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{AreaID: 1, Date: "2025-06-10"})
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("storage unavailable", func(t *testing.T) {
		repo := &mockBookingRepo{
			getByAreaFn: func(ctx context.Context, filter domain.AreaBookingsFilter) ([]*domain.Booking, error) {
				return nil, bookingRepo.ErrStorageUnavailable
			},
		}

		uc := NewUseCase(repo, &mockCatalogClient{getAreaFn: areaExists}, loc, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{AreaID: 1, Date: "2025-06-10"})
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}
