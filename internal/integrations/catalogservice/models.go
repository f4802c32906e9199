package catalogservice

// Area зона обслуживания из сервиса каталога
// Группирует услуги и работников с общим календарём записей
type Area struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Service услуга из сервиса каталога
// Услуга принадлежит ровно одной зоне обслуживания
type Service struct {
	ID       int64   `json:"id"`
	AreaID   int64   `json:"area_id"`
	Title    string  `json:"title"`
	Subtitle *string `json:"subtitle,omitempty"`
	Price    float64 `json:"price"`
}

// ErrorResponse модель ошибки от сервиса каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
