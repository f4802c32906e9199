package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotTaken возвращается при нарушении уникального индекса активных бронирований
	// (area_id, booking_date, slot_label) - слот уже занят другим активным бронированием
	ErrSlotTaken = errors.New("booking.repository: slot already taken")

	// ErrStorageUnavailable возвращается, когда база данных недоступна или запрос истёк по таймауту
	ErrStorageUnavailable = errors.New("booking.repository: storage unavailable")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
