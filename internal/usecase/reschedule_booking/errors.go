package reschedule_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInvalidDate возвращается при нечитаемой, нереальной или прошедшей дате
	ErrInvalidDate = errors.New("reschedule_booking: invalid booking date")

	// ErrUnknownSlot возвращается, когда метка слота не входит в каталог зоны
	ErrUnknownSlot = errors.New("reschedule_booking: slot is not in the area catalog")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrBookingCancelled возвращается при попытке перенести отменённое бронирование
	// Отмена терминальна, перехода cancelled → active нет
	ErrBookingCancelled = errors.New("reschedule_booking: booking is cancelled")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("reschedule_booking: service not found")

	// ErrSlotOccupied возвращается, когда слот занят другим активным бронированием
	// Собственный слот бронирования конфликтом не считается
	ErrSlotOccupied = errors.New("reschedule_booking: slot already taken")

	// ErrDuplicateBooking возвращается, когда другое активное бронирование
	// с идентичным кортежем (клиент, услуга, дата, слот) уже существует
	ErrDuplicateBooking = errors.New("reschedule_booking: duplicate booking")

	// ErrUnavailable возвращается при недоступности хранилища или сервиса каталога
	ErrUnavailable = errors.New("reschedule_booking: dependency unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
