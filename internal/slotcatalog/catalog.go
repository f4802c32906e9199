package slotcatalog

import (
	"fmt"

	"github.com/m04kA/SLN-BookingService/internal/domain"
)

// Catalog статический каталог временных слотов
// Хранит упорядоченную последовательность слотов для каждой зоны обслуживания.
// Сейчас все зоны используют общую последовательность по умолчанию, но интерфейс
// принимает areaID, чтобы каталоги на зону вводились без изменения вызывающих.
// Каталог неизменяем после создания, безопасен для конкурентного чтения.
type Catalog struct {
	defaultSlots []domain.TimeSlot
	perArea      map[int64][]domain.TimeSlot
}

// New создает каталог из меток слотов
// defaultLabels обязательны; perAreaLabels переопределяют каталог для отдельных зон
// Все метки нормализуются при загрузке, некорректная метка - ошибка конфигурации
func New(defaultLabels []string, perAreaLabels map[int64][]string) (*Catalog, error) {
	if len(defaultLabels) == 0 {
		return nil, fmt.Errorf("slotcatalog: default slot sequence is empty")
	}

	defaultSlots, err := parseSequence(defaultLabels)
	if err != nil {
		return nil, fmt.Errorf("slotcatalog: default sequence: %w", err)
	}

	perArea := make(map[int64][]domain.TimeSlot, len(perAreaLabels))
	for areaID, labels := range perAreaLabels {
		slots, err := parseSequence(labels)
		if err != nil {
			return nil, fmt.Errorf("slotcatalog: area %d sequence: %w", areaID, err)
		}
		perArea[areaID] = slots
	}

	return &Catalog{
		defaultSlots: defaultSlots,
		perArea:      perArea,
	}, nil
}

func parseSequence(labels []string) ([]domain.TimeSlot, error) {
	slots := make([]domain.TimeSlot, 0, len(labels))
	seen := make(map[domain.TimeSlot]struct{}, len(labels))

	for _, label := range labels {
		slot, err := domain.ParseSlotLabel(label)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[slot]; ok {
			return nil, fmt.Errorf("duplicate slot %q", slot.Label())
		}
		seen[slot] = struct{}{}
		slots = append(slots, slot)
	}

	return slots, nil
}

// SlotsForArea возвращает упорядоченную последовательность слотов зоны
// Возвращается копия: последовательность можно запрашивать любое количество раз
func (c *Catalog) SlotsForArea(areaID int64) []domain.TimeSlot {
	src := c.defaultSlots
	if slots, ok := c.perArea[areaID]; ok {
		src = slots
	}

	out := make([]domain.TimeSlot, len(src))
	copy(out, src)
	return out
}

// Contains возвращает true, если слот входит в каталог зоны
// Сравнение идет по нормализованным началу и концу, а не по строковой метке
func (c *Catalog) Contains(areaID int64, slot domain.TimeSlot) bool {
	_, ok := c.Find(areaID, slot.Label())
	return ok
}

// Find ищет слот каталога по метке (метка нормализуется перед сравнением)
// Возвращает канонический слот каталога и признак наличия
func (c *Catalog) Find(areaID int64, label string) (domain.TimeSlot, bool) {
	wanted, err := domain.ParseSlotLabel(label)
	if err != nil {
		return domain.TimeSlot{}, false
	}

	src := c.defaultSlots
	if slots, ok := c.perArea[areaID]; ok {
		src = slots
	}

	for _, s := range src {
		if s.Equal(wanted) {
			return s, true
		}
	}

	return domain.TimeSlot{}, false
}
