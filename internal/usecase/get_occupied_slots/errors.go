package get_occupied_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_occupied_slots: invalid input data")

	// ErrInvalidDate возвращается, когда дата не в строгом формате YYYY-MM-DD
	// или не является реальной календарной датой
	ErrInvalidDate = errors.New("get_occupied_slots: invalid date")

	// ErrAreaNotFound возвращается, когда зона обслуживания не найдена
	ErrAreaNotFound = errors.New("get_occupied_slots: area not found")

	// ErrUnavailable возвращается при недоступности хранилища или сервиса каталога
	ErrUnavailable = errors.New("get_occupied_slots: dependency unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_occupied_slots: internal error")
)
