// Package status разбирает диагностические ответы ZPL-принтеров.
//
// Каждый разборщик либо полностью успешен, либо возвращает *ParseError
// с исходным ответом. Пакет не выполняет ввод-вывод и не пишет логи.
package status

import (
	"strconv"
	"strings"
)

const (
	errorsLabel   = "ERRORS:"
	warningsLabel = "WARNINGS:"
)

// PrinterStatus - разобранный ответ на ~HQES.
type PrinterStatus struct {
	Errors    ErrorSet
	Warnings  WarningSet
	RawFields []string
}

// IsOK возвращает true, если нет ни ошибок, ни предупреждений.
func (s *PrinterStatus) IsOK() bool {
	return s.Errors.IsEmpty() && s.Warnings.IsEmpty()
}

func (s *PrinterStatus) HasErrors() bool   { return !s.Errors.IsEmpty() }
func (s *PrinterStatus) HasWarnings() bool { return !s.Warnings.IsEmpty() }

func (s *PrinterStatus) String() string {
	if s.IsOK() {
		return "OK"
	}
	var parts []string
	if s.HasErrors() {
		parts = append(parts, "errors: "+strings.Join(s.Errors.Descriptions(), ", "))
	}
	if s.HasWarnings() {
		parts = append(parts, "warnings: "+strings.Join(s.Warnings.Descriptions(), ", "))
	}
	return strings.Join(parts, "; ")
}

// ParseStatus разбирает ответ на ~HQES. Обязательны строки ERRORS и
// WARNINGS вида
//
//	LABEL: <flag> <group 2 mask> <group 1 mask>
//
// где маски шестнадцатеричные, а состояния передаются в группе 1.
func ParseStatus(raw string) (*PrinterStatus, error) {
	lines := normalize(raw)
	if len(lines) == 0 {
		return nil, incomplete(raw, "empty reply")
	}

	errMask, err := findMask(raw, lines, errorsLabel)
	if err != nil {
		return nil, err
	}
	warnMask, err := findMask(raw, lines, warningsLabel)
	if err != nil {
		return nil, err
	}

	return &PrinterStatus{
		Errors:    ErrorSet(errMask),
		Warnings:  WarningSet(warnMask),
		RawFields: lines,
	}, nil
}

func findMask(raw string, lines []string, label string) (uint32, error) {
	for _, line := range lines {
		if !strings.HasPrefix(strings.ToUpper(line), label) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return 0, incomplete(raw, "%s line has %d fields, want 4", label, len(fields))
		}
		if fields[1] != "0" && fields[1] != "1" {
			return 0, malformed(raw, "%s flag %q is not 0 or 1", label, fields[1])
		}
		if _, err := strconv.ParseUint(fields[2], 16, 32); err != nil {
			return 0, malformed(raw, "%s group 2 %q is not hexadecimal", label, fields[2])
		}
		mask, err := strconv.ParseUint(fields[3], 16, 32)
		if err != nil {
			return 0, malformed(raw, "%s group 1 %q is not hexadecimal", label, fields[3])
		}
		return uint32(mask), nil
	}
	return 0, incomplete(raw, "no %s line", label)
}

// normalize удаляет служебные байты STX, ETX и NUL, разбивает ответ на строки
// и отбрасывает пустые.
func normalize(raw string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case 0x00, 0x02, 0x03:
			return -1
		case '\r':
			return '\n'
		}
		return r
	}, raw)

	var lines []string
	for _, line := range strings.Split(cleaned, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
