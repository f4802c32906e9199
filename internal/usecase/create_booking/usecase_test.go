package create_booking

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
	createFn        func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	getByAreaFn     func(ctx context.Context, filter domain.AreaBookingsFilter) ([]*domain.Booking, error)
	findDuplicateFn func(ctx context.Context, clientID, serviceID int64, date time.Time, slotLabel string) (*domain.Booking, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	return m.createFn(ctx, booking)
}

func (m *mockBookingRepo) GetByAreaWithFilter(ctx context.Context, filter domain.AreaBookingsFilter) ([]*domain.Booking, error) {
	return m.getByAreaFn(ctx, filter)
}

func (m *mockBookingRepo) FindActiveDuplicate(ctx context.Context, clientID, serviceID int64, date time.Time, slotLabel string) (*domain.Booking, error) {
	return m.findDuplicateFn(ctx, clientID, serviceID, date, slotLabel)
}

type mockCatalogClient struct {
	getAreaFn    func(ctx context.Context, areaID int64) (*catalogservice.Area, error)
	getServiceFn func(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

func (m *mockCatalogClient) GetArea(ctx context.Context, areaID int64) (*catalogservice.Area, error) {
	return m.getAreaFn(ctx, areaID)
}

func (m *mockCatalogClient) GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
	return m.getServiceFn(ctx, serviceID)
}

// fakeTxManager выполняет функцию без настоящей транзакции
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
	}, nil)
	require.NoError(t, err)
	return catalog
}

func happyClient() *mockCatalogClient {
	return &mockCatalogClient{
		getAreaFn: func(ctx context.Context, areaID int64) (*catalogservice.Area, error) {
			return &catalogservice.Area{ID: areaID, Name: "Peluqueria"}, nil
		},
		getServiceFn: func(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
			return &catalogservice.Service{ID: serviceID, AreaID: 1, Title: "Corte de pelo", Price: 25.0}, nil
		},
	}
}

func emptyAreaRepo(created **domain.Booking) *mockBookingRepo {
	return &mockBookingRepo{
		getByAreaFn: func(ctx context.Context, filter domain.AreaBookingsFilter) ([]*domain.Booking, error) {
			return nil, nil
		},
		findDuplicateFn: func(ctx context.Context, clientID, serviceID int64, date time.Time, slotLabel string) (*domain.Booking, error) {
			return nil, bookingRepo.ErrBookingNotFound
		},
		createFn: func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
			out := *booking
			out.ID = 42
			out.CreatedAt = time.Now()
			out.UpdatedAt = out.CreatedAt
			if created != nil {
				*created = &out
			}
			return &out, nil
		},
	}
}

func newTestUseCase(repo *mockBookingRepo, client *mockCatalogClient, t *testing.T) *UseCase {
	uc := NewUseCase(repo, testCatalog(t), client, fakeTxManager{}, time.UTC, nopLogger{})
	return uc.WithTimeProvider(fixedTimeProvider{
		now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	})
}

func validRequest() *Request {
	return &Request{
		ClientID:  7,
		ServiceID: 3,
		AreaID:    1,
		Date:      "2025-06-10",
		SlotLabel: "09:00-10:00",
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	t.Run("creates booking with denormalized service data", func(t *testing.T) {
		var created *domain.Booking
		uc := newTestUseCase(emptyAreaRepo(&created), happyClient(), t)

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)

		assert.Equal(t, int64(42), resp.ID)
		assert.Equal(t, "active", resp.Status)
		assert.Equal(t, "Corte de pelo", resp.ServiceName)
		assert.Equal(t, 25.0, resp.ServicePrice)

		require.NotNil(t, created)
		assert.Equal(t, domain.StatusActive, created.Status)
		assert.Equal(t, "2025-06-10", created.Date.Format(domain.DateFormat))
	})

	t.Run("slot label is stored in canonical form", func(t *testing.T) {
		var created *domain.Booking
		uc := newTestUseCase(emptyAreaRepo(&created), happyClient(), t)

		req := validRequest()
		req.SlotLabel = "9:00-10:00"

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, "09:00-10:00", resp.SlotLabel)
		require.NotNil(t, created)
		assert.Equal(t, "09:00-10:00", created.SlotLabel)
	})

	t.Run("booking for today is allowed", func(t *testing.T) {
		uc := newTestUseCase(emptyAreaRepo(nil), happyClient(), t)

		req := validRequest()
		req.Date = "2025-06-01"

		_, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
	})
}

func TestUseCase_Execute_SlotConflicts(t *testing.T) {
	t.Run("slot held by another active booking", func(t *testing.T) {
		repo := emptyAreaRepo(nil)
		repo.getByAreaFn = func(ctx context.Context, filter domain.AreaBookingsFilter) ([]*domain.Booking, error) {
			return []*domain.Booking{
				{ID: 5, ClientID: 99, SlotLabel: "09:00-10:00", Status: domain.StatusActive},
			}, nil
		}

		uc := newTestUseCase(repo, happyClient(), t)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotOccupied)
	})

	t.Run("legacy label holds the same slot", func(t *testing.T) {
		repo := emptyAreaRepo(nil)
		repo.getByAreaFn = func(ctx context.Context, filter domain.AreaBookingsFilter) ([]*domain.Booking, error) {
			return []*domain.Booking{
				{ID: 5, ClientID: 99, SlotLabel: "9:00-10:00", Status: domain.StatusActive},
			}, nil
		}

		uc := newTestUseCase(repo, happyClient(), t)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotOccupied)
	})

	t.Run("cancelled booking does not hold the slot", func(t *testing.T) {
		repo := emptyAreaRepo(nil)
		repo.getByAreaFn = func(ctx context.Context, filter domain.AreaBookingsFilter) ([]*domain.Booking, error) {
			return []*domain.Booking{
				{ID: 5, ClientID: 99, SlotLabel: "09:00-10:00", Status: domain.StatusCancelled},
			}, nil
		}

		uc := newTestUseCase(repo, happyClient(), t)

		_, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
	})

	t.Run("duplicate tuple is rejected", func(t *testing.T) {
		repo := emptyAreaRepo(nil)
		repo.findDuplicateFn = func(ctx context.Context, clientID, serviceID int64, date time.Time, slotLabel string) (*domain.Booking, error) {
			return &domain.Booking{ID: 11, ClientID: clientID, ServiceID: serviceID}, nil
		}

		// Слот формально свободен (дубликат в другой зоне индексом не держится),
		// но кортеж клиент/услуга/дата/слот уже существует
		uc := newTestUseCase(repo, happyClient(), t)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrDuplicateBooking)
	})

	t.Run("concurrent creator wins the unique index", func(t *testing.T) {
		repo := emptyAreaRepo(nil)
		repo.createFn = func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
			return nil, bookingRepo.ErrSlotTaken
		}

		uc := newTestUseCase(repo, happyClient(), t)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotOccupied)
	})
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := newTestUseCase(emptyAreaRepo(nil), happyClient(), t)

	t.Run("unreadable date", func(t *testing.T) {
		req := validRequest()
		req.Date = "2025-13-40"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("date in the past", func(t *testing.T) {
		req := validRequest()
		req.Date = "2025-05-31"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("unknown slot label", func(t *testing.T) {
		req := validRequest()
		req.SlotLabel = "13:00-14:00"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrUnknownSlot)
	})

	t.Run("malformed slot label", func(t *testing.T) {
		req := validRequest()
		req.SlotLabel = "morning"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrUnknownSlot)
	})

	t.Run("missing ids", func(t *testing.T) {
		req := validRequest()
		req.ClientID = 0

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("notes too long", func(t *testing.T) {
		long := make([]byte, domain.MaxNotesLength+1)
		for i := range long {
			long[i] = 'a'
		}

		req := validRequest()
		req.Notes = ptr.Ptr(string(long))

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUseCase_Execute_CatalogErrors(t *testing.T) {
	t.Run("area not found", func(t *testing.T) {
		client := happyClient()
		client.getAreaFn = func(ctx context.Context, areaID int64) (*catalogservice.Area, error) {
			return nil, catalogservice.ErrAreaNotFound
		}

		uc := newTestUseCase(emptyAreaRepo(nil), client, t)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrAreaNotFound)
	})

	t.Run("service not found", func(t *testing.T) {
		client := happyClient()
		client.getServiceFn = func(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
			return nil, catalogservice.ErrServiceNotFound
		}

		uc := newTestUseCase(emptyAreaRepo(nil), client, t)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("service belongs to another area", func(t *testing.T) {
		client := happyClient()
		client.getServiceFn = func(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
			return &catalogservice.Service{ID: serviceID, AreaID: 2, Title: "Manicura", Price: 15.0}, nil
		}

		uc := newTestUseCase(emptyAreaRepo(nil), client, t)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrServiceNotInArea)
	})

	t.Run("catalog service unavailable", func(t *testing.T) {
		client := happyClient()
		client.getAreaFn = func(ctx context.Context, areaID int64) (*catalogservice.Area, error) {
			return nil, catalogservice.ErrServiceUnavailable
		}

		uc := newTestUseCase(emptyAreaRepo(nil), client, t)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestUseCase_Execute_StorageErrors(t *testing.T) {
	t.Run("storage unavailable inside transaction", func(t *testing.T) {
		repo := emptyAreaRepo(nil)
		repo.getByAreaFn = func(ctx context.Context, filter domain.AreaBookingsFilter) ([]*domain.Booking, error) {
			return nil, bookingRepo.ErrStorageUnavailable
		}

		uc := newTestUseCase(repo, happyClient(), t)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}
