package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidDate возвращается при нечитаемой, нереальной или прошедшей дате
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrUnknownSlot возвращается, когда метка слота не входит в каталог зоны
	ErrUnknownSlot = errors.New("create_booking: slot is not in the area catalog")

	// ErrAreaNotFound возвращается, когда зона обслуживания не найдена
	ErrAreaNotFound = errors.New("create_booking: area not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceNotInArea возвращается, когда услуга принадлежит другой зоне
	ErrServiceNotInArea = errors.New("create_booking: service does not belong to this area")

	// ErrSlotOccupied возвращается, когда слот уже занят другим активным бронированием
	ErrSlotOccupied = errors.New("create_booking: slot already taken")

	// ErrDuplicateBooking возвращается, когда активное бронирование с идентичным
	// кортежем (клиент, услуга, дата, слот) уже существует - защита от двойной
	// отправки формы
	ErrDuplicateBooking = errors.New("create_booking: duplicate booking")

	// ErrUnavailable возвращается при недоступности хранилища или сервиса каталога
	ErrUnavailable = errors.New("create_booking: dependency unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
