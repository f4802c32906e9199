package booking

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	"github.com/m04kA/SLN-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SLN-BookingService/pkg/psqlbuilder"
)

const bookingsTable = "bookings"

var bookingColumns = []string{
	"id",
	"client_id",
	"service_id",
	"area_id",
	"booking_date",
	"slot_label",
	"status",
	"service_name",
	"service_price",
	"notes",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование со статусом active
// Если в контексте передана активная транзакция, использует её.
//
// Инвариант "не более одного активного бронирования на (зона, дата, слот)"
// обеспечивается частичным уникальным индексом в БД: нарушение возвращается
// как ErrSlotTaken. Предварительная проверка занятости в usecase - оптимизация
// для отзывчивости, а не гарантия корректности.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(bookingsTable).
		Columns(
			"client_id",
			"service_id",
			"area_id",
			"booking_date",
			"slot_label",
			"status",
			"service_name",
			"service_price",
			"notes",
		).
		Values(
			booking.ClientID,
			booking.ServiceID,
			booking.AreaID,
			booking.Date,
			booking.SlotLabel,
			booking.Status,
			booking.ServiceName,
			booking.ServicePrice,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, r.mapWriteError("Create", err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		if isUnavailable(err) {
			return nil, fmt.Errorf("%w: GetByID: %v", ErrStorageUnavailable, err)
		}
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByClientID получает список бронирований клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByClientID(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("booking_date DESC, slot_label DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if isUnavailable(err) {
			return nil, fmt.Errorf("%w: GetByClientID: %v", ErrStorageUnavailable, err)
		}
		return nil, fmt.Errorf("%w: GetByClientID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByAreaWithFilter получает бронирования зоны обслуживания с фильтрацией
// по дате, статусу и включению отменённых бронирований.
//
// Внутри транзакции при фильтре по конкретной дате добавляет FOR UPDATE:
// строки зоны на дату блокируются на время проверки занятости слота
// (используется usecase'ами создания и переноса бронирования)
func (r *Repository) GetByAreaWithFilter(ctx context.Context, filter domain.AreaBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"area_id": filter.AreaID})

	// Фильтрация по дате (если указана)
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *filter.Date})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.StatusActive})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("slot_label ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, slot_label DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAreaWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if isUnavailable(err) {
			return nil, fmt.Errorf("%w: GetByAreaWithFilter: %v", ErrStorageUnavailable, err)
		}
		return nil, fmt.Errorf("%w: GetByAreaWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// FindActiveDuplicate ищет активное бронирование с идентичным кортежем
// (клиент, услуга, дата, слот) - защита от повторной отправки формы
// Возвращает ErrBookingNotFound, если дубликата нет
func (r *Repository) FindActiveDuplicate(ctx context.Context, clientID, serviceID int64, date time.Time, slotLabel string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{
			"client_id":    clientID,
			"service_id":   serviceID,
			"booking_date": date,
			"slot_label":   slotLabel,
			"status":       domain.StatusActive,
		}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveDuplicate - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		if isUnavailable(err) {
			return nil, fmt.Errorf("%w: FindActiveDuplicate: %v", ErrStorageUnavailable, err)
		}
		return nil, fmt.Errorf("%w: FindActiveDuplicate - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// UpdateSchedule обновляет дату, слот и услугу бронирования (перенос)
// Денормализованные данные услуги перезаписываются вместе с service_id
// Нарушение уникального индекса активных бронирований возвращается как ErrSlotTaken
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(bookingsTable).
		Set("booking_date", booking.Date).
		Set("slot_label", booking.SlotLabel).
		Set("area_id", booking.AreaID).
		Set("service_id", booking.ServiceID).
		Set("service_name", booking.ServiceName).
		Set("service_price", booking.ServicePrice).
		Set("notes", booking.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, r.mapWriteError("UpdateSchedule", err)
	}

	booking.ID = id
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// SetCancelled переводит бронирование в статус cancelled
// Запись не удаляется физически: история нужна для платежей и карточек клиентов
func (r *Repository) SetCancelled(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(bookingsTable).
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetCancelled - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUnavailable(err) {
			return fmt.Errorf("%w: SetCancelled: %v", ErrStorageUnavailable, err)
		}
		return fmt.Errorf("%w: SetCancelled - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetCancelled - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// mapWriteError маппит ошибку записи в сентинел репозитория
func (r *Repository) mapWriteError(op string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s: %v", ErrSlotTaken, op, err)
	}
	if isUnavailable(err) {
		return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
}

// isUniqueViolation проверяет нарушение уникального ограничения PostgreSQL (23505)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// isUnavailable проверяет, что ошибка вызвана недоступностью БД, а не самим запросом
func isUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// Класс 08 - connection exception
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "08"
	}

	return false
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ClientID,
		&booking.ServiceID,
		&booking.AreaID,
		&booking.Date,
		&booking.SlotLabel,
		&booking.Status,
		&booking.ServiceName,
		&booking.ServicePrice,
		&booking.Notes,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
