package create_booking

import (
	"time"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID  int64   // ID клиента
	ServiceID int64   // ID услуги (определяет зону)
	AreaID    int64   // ID зоны обслуживания
	Date      string  // Дата записи в формате "YYYY-MM-DD"
	SlotLabel string  // Метка слота (например, "09:00-10:00" или "9:00-10:00")
	Notes     *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64     // ID созданного бронирования
	ClientID  int64     // ID клиента
	ServiceID int64     // ID услуги
	AreaID    int64     // ID зоны
	Date      time.Time // Дата записи
	SlotLabel string    // Каноническая метка слота "HH:MM-HH:MM"
	Status    string    // Статус бронирования

	// Денормализованные данные услуги
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги
	Notes        *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
