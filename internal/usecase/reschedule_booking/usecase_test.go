package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SLN-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/SLN-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/SLN-BookingService/internal/slotcatalog"
	"github.com/m04kA/SLN-BookingService/pkg/ptr"
)

type mockBookingRepo struct {
	getByIDFn        func(ctx context.Context, id int64) (*domain.Booking, error)
	getByAreaFn      func(ctx context.Context, filter domain.AreaBookingsFilter) ([]*domain.Booking, error)
	findDuplicateFn  func(ctx context.Context, clientID, serviceID int64, date time.Time, slotLabel string) (*domain.Booking, error)
	updateScheduleFn func(ctx context.Context, id int64, booking *domain.Booking) (*domain.Booking, error)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockBookingRepo) GetByAreaWithFilter(ctx context.Context, filter domain.AreaBookingsFilter) ([]*domain.Booking, error) {
	return m.getByAreaFn(ctx, filter)
}

func (m *mockBookingRepo) FindActiveDuplicate(ctx context.Context, clientID, serviceID int64, date time.Time, slotLabel string) (*domain.Booking, error) {
	return m.findDuplicateFn(ctx, clientID, serviceID, date, slotLabel)
}

func (m *mockBookingRepo) UpdateSchedule(ctx context.Context, id int64, booking *domain.Booking) (*domain.Booking, error) {
	return m.updateScheduleFn(ctx, id, booking)
}

type mockCatalogClient struct {
	getServiceFn func(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

func (m *mockCatalogClient) GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
	return m.getServiceFn(ctx, serviceID)
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testCatalog(t *testing.T) *slotcatalog.Catalog {
	t.Helper()
	catalog, err := slotcatalog.New([]string{
		"09:00-10:00",
		"10:00-11:00",
		"11:00-12:00",
	}, map[int64][]string{
		2: {"10:00-11:30", "11:30-13:00"},
	})
	require.NoError(t, err)
	return catalog
}

func existingBooking() *domain.Booking {
	return &domain.Booking{
		ID:           10,
		ClientID:     7,
		ServiceID:    3,
		AreaID:       1,
		Date:         time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		SlotLabel:    "09:00-10:00",
		Status:       domain.StatusActive,
		ServiceName:  "Corte de pelo",
		ServicePrice: 25.0,
	}
}

func happyRepo(updated **domain.Booking) *mockBookingRepo {
	return &mockBookingRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return existingBooking(), nil
		},
		getByAreaFn: func(ctx context.Context, filter domain.AreaBookingsFilter) ([]*domain.Booking, error) {
			return []*domain.Booking{existingBooking()}, nil
		},
		findDuplicateFn: func(ctx context.Context, clientID, serviceID int64, date time.Time, slotLabel string) (*domain.Booking, error) {
			return nil, bookingRepo.ErrBookingNotFound
		},
		updateScheduleFn: func(ctx context.Context, id int64, booking *domain.Booking) (*domain.Booking, error) {
			out := *booking
			out.UpdatedAt = time.Now()
			if updated != nil {
				*updated = &out
			}
			return &out, nil
		},
	}
}

func happyClient() *mockCatalogClient {
	return &mockCatalogClient{
		getServiceFn: func(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
			return &catalogservice.Service{ID: serviceID, AreaID: 1, Title: "Corte de pelo", Price: 25.0}, nil
		},
	}
}

func newTestUseCase(repo *mockBookingRepo, client *mockCatalogClient, t *testing.T) *UseCase {
	uc := NewUseCase(repo, testCatalog(t), client, fakeTxManager{}, time.UTC, nopLogger{})
	return uc.WithTimeProvider(fixedTimeProvider{
		now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	})
}

func TestUseCase_Execute_Success(t *testing.T) {
	t.Run("moves booking to a new date and slot", func(t *testing.T) {
		var updated *domain.Booking
		uc := newTestUseCase(happyRepo(&updated), happyClient(), t)

		resp, err := uc.Execute(context.Background(), &Request{
			BookingID: 10,
			Date:      "2025-06-12",
			SlotLabel: "10:00-11:00",
		})
		require.NoError(t, err)

		assert.Equal(t, int64(10), resp.ID)
		assert.Equal(t, "2025-06-12", resp.Date.Format(domain.DateFormat))
		assert.Equal(t, "10:00-11:00", resp.SlotLabel)

		require.NotNil(t, updated)
		assert.Equal(t, int64(7), updated.ClientID)
		assert.Equal(t, domain.StatusActive, updated.Status)
	})

	t.Run("own slot is exempt from the conflict check", func(t *testing.T) {
		// Бронирование сохраняет прежние дату и слот:
		// собственная запись не должна считаться конфликтом
		repo := happyRepo(nil)
		repo.getByAreaFn = func(ctx context.Context, filter domain.AreaBookingsFilter) ([]*domain.Booking, error) {
			return []*domain.Booking{existingBooking()}, nil
		}

		uc := newTestUseCase(repo, happyClient(), t)

		_, err := uc.Execute(context.Background(), &Request{
			BookingID: 10,
			Date:      "2025-06-10",
			SlotLabel: "09:00-10:00",
		})
		require.NoError(t, err)
	})

	t.Run("duplicate check ignores the booking itself", func(t *testing.T) {
		repo := happyRepo(nil)
		repo.findDuplicateFn = func(ctx context.Context, clientID, serviceID int64, date time.Time, slotLabel string) (*domain.Booking, error) {
			return existingBooking(), nil
		}

		uc := newTestUseCase(repo, happyClient(), t)

		_, err := uc.Execute(context.Background(), &Request{
			BookingID: 10,
			Date:      "2025-06-10",
			SlotLabel: "09:00-10:00",
		})
		require.NoError(t, err)
	})

	t.Run("slot label is normalized before lookup", func(t *testing.T) {
		var updated *domain.Booking
		uc := newTestUseCase(happyRepo(&updated), happyClient(), t)

		resp, err := uc.Execute(context.Background(), &Request{
			BookingID: 10,
			Date:      "2025-06-12",
			SlotLabel: "9:00-10:00",
		})
		require.NoError(t, err)
		assert.Equal(t, "09:00-10:00", resp.SlotLabel)
	})

	t.Run("changing service moves the booking to its area", func(t *testing.T) {
		var updated *domain.Booking
		repo := happyRepo(&updated)

		client := &mockCatalogClient{
			getServiceFn: func(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
				return &catalogservice.Service{ID: serviceID, AreaID: 2, Title: "Manicura", Price: 15.0}, nil
			},
		}

		uc := newTestUseCase(repo, client, t)

		resp, err := uc.Execute(context.Background(), &Request{
			BookingID: 10,
			Date:      "2025-06-12",
			SlotLabel: "10:00-11:30",
			ServiceID: ptr.Ptr(int64(9)),
		})
		require.NoError(t, err)

		assert.Equal(t, int64(2), resp.AreaID)
		assert.Equal(t, int64(9), resp.ServiceID)
		assert.Equal(t, "Manicura", resp.ServiceName)
		require.NotNil(t, updated)
		assert.Equal(t, int64(2), updated.AreaID)
	})
}

func TestUseCase_Execute_Conflicts(t *testing.T) {
	t.Run("slot held by another booking", func(t *testing.T) {
		repo := happyRepo(nil)
		repo.getByAreaFn = func(ctx context.Context, filter domain.AreaBookingsFilter) ([]*domain.Booking, error) {
			return []*domain.Booking{
				{ID: 55, ClientID: 99, SlotLabel: "10:00-11:00", Status: domain.StatusActive},
			}, nil
		}

		uc := newTestUseCase(repo, happyClient(), t)

		_, err := uc.Execute(context.Background(), &Request{
			BookingID: 10,
			Date:      "2025-06-12",
			SlotLabel: "10:00-11:00",
		})
		assert.ErrorIs(t, err, ErrSlotOccupied)
	})

	t.Run("duplicate tuple held by another booking", func(t *testing.T) {
		repo := happyRepo(nil)
		repo.findDuplicateFn = func(ctx context.Context, clientID, serviceID int64, date time.Time, slotLabel string) (*domain.Booking, error) {
			return &domain.Booking{ID: 77, ClientID: clientID, ServiceID: serviceID}, nil
		}

		uc := newTestUseCase(repo, happyClient(), t)

		_, err := uc.Execute(context.Background(), &Request{
			BookingID: 10,
			Date:      "2025-06-12",
			SlotLabel: "10:00-11:00",
		})
		assert.ErrorIs(t, err, ErrDuplicateBooking)
	})

	t.Run("cancelled booking cannot be rescheduled", func(t *testing.T) {
		repo := happyRepo(nil)
		repo.getByIDFn = func(ctx context.Context, id int64) (*domain.Booking, error) {
			b := existingBooking()
			b.Status = domain.StatusCancelled
			return b, nil
		}

		uc := newTestUseCase(repo, happyClient(), t)

		_, err := uc.Execute(context.Background(), &Request{
			BookingID: 10,
			Date:      "2025-06-12",
			SlotLabel: "10:00-11:00",
		})
		assert.ErrorIs(t, err, ErrBookingCancelled)
	})

	t.Run("concurrent winner of the unique index", func(t *testing.T) {
		repo := happyRepo(nil)
		repo.updateScheduleFn = func(ctx context.Context, id int64, booking *domain.Booking) (*domain.Booking, error) {
			return nil, bookingRepo.ErrSlotTaken
		}

		uc := newTestUseCase(repo, happyClient(), t)

		_, err := uc.Execute(context.Background(), &Request{
			BookingID: 10,
			Date:      "2025-06-12",
			SlotLabel: "10:00-11:00",
		})
		assert.ErrorIs(t, err, ErrSlotOccupied)
	})
}

func TestUseCase_Execute_Errors(t *testing.T) {
	t.Run("booking not found", func(t *testing.T) {
		repo := happyRepo(nil)
		repo.getByIDFn = func(ctx context.Context, id int64) (*domain.Booking, error) {
			return nil, bookingRepo.ErrBookingNotFound
		}

		uc := newTestUseCase(repo, happyClient(), t)

		_, err := uc.Execute(context.Background(), &Request{
			BookingID: 404,
			Date:      "2025-06-12",
			SlotLabel: "10:00-11:00",
		})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("date in the past", func(t *testing.T) {
		uc := newTestUseCase(happyRepo(nil), happyClient(), t)

		_, err := uc.Execute(context.Background(), &Request{
			BookingID: 10,
			Date:      "2025-05-31",
			SlotLabel: "10:00-11:00",
		})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("unknown slot in target area", func(t *testing.T) {
		uc := newTestUseCase(happyRepo(nil), happyClient(), t)

		_, err := uc.Execute(context.Background(), &Request{
			BookingID: 10,
			Date:      "2025-06-12",
			SlotLabel: "20:00-21:00",
		})
		assert.ErrorIs(t, err, ErrUnknownSlot)
	})

	t.Run("target service not found", func(t *testing.T) {
		client := &mockCatalogClient{
			getServiceFn: func(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
				return nil, catalogservice.ErrServiceNotFound
			},
		}

		uc := newTestUseCase(happyRepo(nil), client, t)

		_, err := uc.Execute(context.Background(), &Request{
			BookingID: 10,
			Date:      "2025-06-12",
			SlotLabel: "10:00-11:00",
			ServiceID: ptr.Ptr(int64(1000)),
		})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("storage unavailable", func(t *testing.T) {
		repo := happyRepo(nil)
		repo.getByAreaFn = func(ctx context.Context, filter domain.AreaBookingsFilter) ([]*domain.Booking, error) {
			return nil, bookingRepo.ErrStorageUnavailable
		}

		uc := newTestUseCase(repo, happyClient(), t)

		_, err := uc.Execute(context.Background(), &Request{
			BookingID: 10,
			Date:      "2025-06-12",
			SlotLabel: "10:00-11:00",
		})
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}
