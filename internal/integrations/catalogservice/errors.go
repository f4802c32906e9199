package catalogservice

import "errors"

var (
	// ErrAreaNotFound возвращается, когда зона обслуживания не найдена
	ErrAreaNotFound = errors.New("catalogservice client: area not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("catalogservice client: service not found")

	// ErrServiceUnavailable возвращается при недоступности сервиса каталога
	// (сетевые ошибки, таймауты) - вызывающий решает, повторять ли запрос
	ErrServiceUnavailable = errors.New("catalogservice client: service unavailable")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")
)
