package reschedule_booking

import (
	"time"
)

// Request модель запроса на перенос бронирования
// Дата и слот обязательны (даже если не меняются), услуга - опционально
type Request struct {
	BookingID int64   // ID переносимого бронирования
	Date      string  // Новая дата записи в формате "YYYY-MM-DD"
	SlotLabel string  // Новая метка слота
	ServiceID *int64  // Новая услуга (nil - оставить текущую)
	Notes     *string // Новые заметки (nil - оставить текущие)
}

// Response модель ответа с обновлённым бронированием
type Response struct {
	ID        int64     // ID бронирования
	ClientID  int64     // ID клиента
	ServiceID int64     // ID услуги
	AreaID    int64     // ID зоны
	Date      time.Time // Дата записи
	SlotLabel string    // Каноническая метка слота "HH:MM-HH:MM"
	Status    string    // Статус бронирования

	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги
	Notes        *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
