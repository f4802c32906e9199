package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxNotesLength = 500
)

// DefaultTimezone часовой пояс бизнеса по умолчанию
// Вся система работает в одном фиксированном гражданском часовом поясе
const DefaultTimezone = "Europe/Madrid"
