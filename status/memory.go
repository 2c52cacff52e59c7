package status

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iwtcode/zplAdapter/models"
)

// ParseMemory разбирает ответ на ~HM. Первая строка содержит через запятую
// общий объем RAM, максимально доступную и текущую свободную память в килобайтах.
func ParseMemory(raw string) (models.MemoryStatus, error) {
	lines := normalize(raw)
	if len(lines) == 0 {
		return models.MemoryStatus{}, incomplete(raw, "empty reply")
	}

	fields := strings.Split(lines[0], ",")
	if len(fields) < 3 {
		return models.MemoryStatus{}, incomplete(raw, "got %d fields, want 3", len(fields))
	}

	var values [3]uint32
	for i := range values {
		field := strings.TrimSpace(fields[i])
		v, err := strconv.ParseUint(field, 10, 32)
		if err != nil {
			return models.MemoryStatus{}, malformed(raw, "field %d %q is not a number", i+1, field)
		}
		values[i] = uint32(v)
	}

	return models.MemoryStatus{
		TotalRAMKB:         values[0],
		MaxAvailableKB:     values[1],
		CurrentAvailableKB: values[2],
	}, nil
}

// UsagePercent возвращает долю занятой памяти от максимально доступной.
// Если свободной памяти больше максимума, результат 0%.
func UsagePercent(m models.MemoryStatus) (float64, error) {
	if m.MaxAvailableKB == 0 {
		return 0, &ParseError{
			Kind:   ErrZeroCapacity,
			Raw:    fmt.Sprintf("%d,%d,%d", m.TotalRAMKB, m.MaxAvailableKB, m.CurrentAvailableKB),
			Reason: "cannot compute usage",
		}
	}
	if m.CurrentAvailableKB >= m.MaxAvailableKB {
		return 0, nil
	}
	used := float64(m.MaxAvailableKB - m.CurrentAvailableKB)
	return used / float64(m.MaxAvailableKB) * 100, nil
}
