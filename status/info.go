package status

import (
	"strconv"
	"strings"

	"github.com/iwtcode/zplAdapter/models"
)

// Числовые коды оповещений.
var alertCodes = map[string]string{
	"1": "Head Open",
	"2": "Ribbon Out",
	"3": "Media Out",
	"4": "Cutter Fault",
}

// ParseSerialNumber возвращает первую строку в кавычках или первую строку,
// не похожую на XML-тег.
func ParseSerialNumber(raw string) (string, error) {
	for _, line := range normalize(raw) {
		if len(line) >= 2 && strings.HasPrefix(line, `"`) && strings.HasSuffix(line, `"`) {
			return strings.Trim(line, `"`), nil
		}
		if !strings.HasPrefix(line, "<") {
			return line, nil
		}
	}
	return "", incomplete(raw, "no serial number")
}

// ParseHardwareAddress форматирует MAC из 12 hex-цифр как aa:bb:cc:dd:ee:ff.
// Любое другое содержимое возвращается как есть.
func ParseHardwareAddress(raw string) (string, error) {
	for _, line := range normalize(raw) {
		if len(line) == 12 && isHex(line) {
			parts := make([]string, 0, 6)
			for i := 0; i < 12; i += 2 {
				parts = append(parts, line[i:i+2])
			}
			return strings.Join(parts, ":"), nil
		}
		if !strings.HasPrefix(line, "<") {
			return line, nil
		}
	}
	return "", incomplete(raw, "no hardware address")
}

func ParseOdometer(raw string) (models.OdometerInfo, error) {
	lines := normalize(raw)
	if len(lines) < 2 {
		return models.OdometerInfo{}, incomplete(raw, "got %d lines, want 2", len(lines))
	}
	return models.OdometerInfo{TotalPrintLength: lines[0], TotalLabels: lines[1]}, nil
}

func ParsePrintheadLife(raw string) (models.PrintheadInfo, error) {
	lines := normalize(raw)
	if len(lines) < 2 {
		return models.PrintheadInfo{}, incomplete(raw, "got %d lines, want 2", len(lines))
	}
	return models.PrintheadInfo{UsedInches: lines[0], TotalLabels: lines[1]}, nil
}

func ParsePlugAndPlay(raw string) (string, error) {
	lines := normalize(raw)
	if len(lines) == 0 {
		return "", incomplete(raw, "empty reply")
	}
	return strings.Join(lines, "\n"), nil
}

// ParseHostStatus читает режим связи, признаки отсутствия бумаги и паузы,
// длину этикетки и, если есть, число оставшихся этикеток.
func ParseHostStatus(raw string) (models.HostStatus, error) {
	lines := normalize(raw)
	if len(lines) < 4 {
		return models.HostStatus{}, incomplete(raw, "got %d lines, want 4", len(lines))
	}
	hs := models.HostStatus{
		CommunicationMode: lines[0],
		PaperOut:          lines[1] == "1",
		Pause:             lines[2] == "1",
		LabelLength:       lines[3],
		LabelsRemaining:   "0",
	}
	if len(lines) > 4 {
		hs.LabelsRemaining = lines[4]
	}
	return hs, nil
}

func ParseSensorMediaStatus(raw string) (models.SensorMediaStatus, error) {
	lines := normalize(raw)
	if len(lines) == 0 {
		return models.SensorMediaStatus{}, incomplete(raw, "empty reply")
	}
	return models.SensorMediaStatus{
		MediaType:      lineOr(lines, 0, "Unknown"),
		SensorProfile:  lineOr(lines, 1, "Unknown"),
		MediaDetected:  lineOr(lines, 2, "0") == "1",
		RibbonDetected: lineOr(lines, 3, "0") == "1",
	}, nil
}

// ParseAlerts переводит коды оповещений в названия, прочие строки сохраняет
// как есть. Ответ "0" означает отсутствие оповещений и дает ErrIncomplete.
func ParseAlerts(raw string) (models.AlertInfo, error) {
	var alerts []string
	for _, line := range normalize(raw) {
		if line == "0" {
			continue
		}
		if name, ok := alertCodes[line]; ok {
			alerts = append(alerts, name)
		} else {
			alerts = append(alerts, line)
		}
	}
	if len(alerts) == 0 {
		return models.AlertInfo{}, incomplete(raw, "no active alerts")
	}
	return models.AlertInfo{ActiveAlerts: alerts, RawCodes: raw}, nil
}

func ParseSuppliesStatus(raw string) (models.SuppliesStatus, error) {
	lines := normalize(raw)
	if len(lines) == 0 {
		return models.SuppliesStatus{}, incomplete(raw, "empty reply")
	}
	s := models.SuppliesStatus{
		MediaStatus:  lineOr(lines, 0, "Unknown"),
		RibbonStatus: lineOr(lines, 1, "Unknown"),
	}
	if len(lines) > 2 {
		if v, err := strconv.ParseUint(lines[2], 10, 8); err == nil {
			percent := uint8(v)
			s.MediaRemainingPercent = &percent
		}
	}
	return s, nil
}

// ParseBattery читает заряд из первой строки: "N%", если в строке есть цифры,
// иначе строку целиком.
func ParseBattery(raw string) (models.BatteryInfo, error) {
	lines := normalize(raw)
	if len(lines) == 0 {
		return models.BatteryInfo{}, incomplete(raw, "empty reply")
	}
	line := lines[0]

	var digits strings.Builder
	for _, r := range line {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	charge := line
	if digits.Len() > 0 {
		charge = digits.String() + "%"
	}
	return models.BatteryInfo{
		ChargePercent: charge,
		Charging:      strings.Contains(line, "CHARGING") || strings.Contains(line, "CHG"),
	}, nil
}

func ParseLabelDimensions(raw string) (models.LabelDimensions, error) {
	lines := normalize(raw)
	if len(lines) < 2 {
		return models.LabelDimensions{}, incomplete(raw, "got %d lines, want 2", len(lines))
	}
	return models.LabelDimensions{Width: lines[0], Height: lines[1]}, nil
}

func ParseFirmwareVersion(raw string) (string, error) {
	lines := normalize(raw)
	if len(lines) == 0 {
		return "", incomplete(raw, "empty reply")
	}
	return strings.Join(lines, "\n"), nil
}

func lineOr(lines []string, i int, fallback string) string {
	if i < len(lines) {
		return lines[i]
	}
	return fallback
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
