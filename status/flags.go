package status

import (
	"fmt"
	"math/bits"
	"strings"
)

// Flag описывает одно состояние из битовой маски ~HQES.
type Flag struct {
	Bit         uint8
	ID          string
	Description string
}

// ErrorSet - набор ошибок, бит N маски группы 1 строки ERRORS.
type ErrorSet uint32

// WarningSet - набор предупреждений, бит N маски группы 1 строки WARNINGS.
type WarningSet uint32

const (
	MediaOut                ErrorSet = 1 << 0
	RibbonOut               ErrorSet = 1 << 1
	HeadOpen                ErrorSet = 1 << 2
	CutterFault             ErrorSet = 1 << 3
	PrintheadOverTemp       ErrorSet = 1 << 4
	MotorOverTemp           ErrorSet = 1 << 5
	BadPrintheadElement     ErrorSet = 1 << 6
	PrintheadDetectionError ErrorSet = 1 << 7
	InvalidFirmwareConfig   ErrorSet = 1 << 8
	PrintheadThermistorOpen ErrorSet = 1 << 9
	Paused                  ErrorSet = 1 << 12
	RetractTimedOut         ErrorSet = 1 << 13
	BlackMarkCalibrateError ErrorSet = 1 << 14
	BlackMarkNotFound       ErrorSet = 1 << 15
	PaperJamDuringRetract   ErrorSet = 1 << 16
	PresenterNotRunning     ErrorSet = 1 << 17
	PaperFeedError          ErrorSet = 1 << 18
	ClearPaperPathFailed    ErrorSet = 1 << 19
)

const (
	NeedToCalibrateMedia   WarningSet = 1 << 0
	CleanPrinthead         WarningSet = 1 << 1
	ReplacePrinthead       WarningSet = 1 << 2
	PaperNearEnd           WarningSet = 1 << 3
	SensorPaperBeforeHead  WarningSet = 1 << 4
	SensorBlackMark        WarningSet = 1 << 5
	SensorPaperAfterHead   WarningSet = 1 << 6
	SensorLoopReady        WarningSet = 1 << 7
	SensorPresenter        WarningSet = 1 << 8
	SensorRetractReady     WarningSet = 1 << 9
	SensorInRetract        WarningSet = 1 << 10
	SensorAtBin            WarningSet = 1 << 11
)

// Порядок в таблице определяет порядок вывода Descriptions.
var errorFlags = []Flag{
	{0, "media_out", "Media out or not loaded"},
	{1, "ribbon_out", "Ribbon out or not loaded"},
	{2, "head_open", "Head open / Cover open"},
	{3, "cutter_fault", "Cutter fault"},
	{4, "printhead_over_temperature", "Printhead over temperature"},
	{5, "motor_over_temperature", "Motor over temperature"},
	{6, "bad_printhead_element", "Bad printhead element"},
	{7, "printhead_detection_error", "Printhead detection error"},
	{8, "invalid_firmware_config", "Invalid firmware configuration"},
	{9, "printhead_thermistor_open", "Printhead thermistor open"},
	{12, "paused", "Printer paused"},
	{13, "retract_timed_out", "Retract function timed out (KR403 only)"},
	{14, "black_mark_calibrate_error", "Black mark calibrate error (KR403 only)"},
	{15, "black_mark_not_found", "Black mark not found (KR403 only)"},
	{16, "paper_jam_during_retract", "Paper jam during retract (KR403 only)"},
	{17, "presenter_not_running", "Presenter not running (KR403 only)"},
	{18, "paper_feed_error", "Paper feed error (KR403 only)"},
	{19, "clear_paper_path_failed", "Clear paper path failed (KR403 only)"},
}

var warningFlags = []Flag{
	{0, "need_to_calibrate_media", "Need to calibrate media"},
	{1, "clean_printhead", "Clean printhead"},
	{2, "replace_printhead", "Replace printhead"},
	{3, "paper_near_end", "Paper near end sensor (KR403 only)"},
	{4, "sensor_paper_before_head", "Sensor 1: Paper before head (KR403 only)"},
	{5, "sensor_black_mark", "Sensor 2: Black mark (KR403 only)"},
	{6, "sensor_paper_after_head", "Sensor 3: Paper after head (KR403 only)"},
	{7, "sensor_loop_ready", "Sensor 4: Loop ready (KR403 only)"},
	{8, "sensor_presenter", "Sensor 5: Presenter (KR403 only)"},
	{9, "sensor_retract_ready", "Sensor 6: Retract ready (KR403 only)"},
	{10, "sensor_in_retract", "Sensor 7: In retract (KR403 only)"},
	{11, "sensor_at_bin", "Sensor 8: At bin (KR403 only)"},
}

// ErrorFlags возвращает известные ошибки в порядке таблицы.
func ErrorFlags() []Flag { return append([]Flag(nil), errorFlags...) }

// WarningFlags возвращает известные предупреждения в порядке таблицы.
func WarningFlags() []Flag { return append([]Flag(nil), warningFlags...) }

func (s ErrorSet) IsEmpty() bool { return s == 0 }

// Has сообщает, установлен ли хотя бы один бит flag.
func (s ErrorSet) Has(flag ErrorSet) bool { return s&flag != 0 }

// Descriptions возвращает описание каждого установленного бита.
func (s ErrorSet) Descriptions() []string { return describe(uint32(s), errorFlags) }

func (s ErrorSet) IDs() []string { return identify(uint32(s), errorFlags) }

func (s ErrorSet) String() string { return strings.Join(s.IDs(), "|") }

func (s WarningSet) IsEmpty() bool { return s == 0 }

func (s WarningSet) Has(flag WarningSet) bool { return s&flag != 0 }

func (s WarningSet) Descriptions() []string { return describe(uint32(s), warningFlags) }

func (s WarningSet) IDs() []string { return identify(uint32(s), warningFlags) }

func (s WarningSet) String() string { return strings.Join(s.IDs(), "|") }

// describe перечисляет описания установленных битов в порядке таблицы,
// затем неизвестные биты по возрастанию.
func describe(set uint32, table []Flag) []string {
	var out []string
	for _, f := range table {
		if set&(1<<f.Bit) != 0 {
			out = append(out, f.Description)
		}
	}
	for _, bit := range unknownBits(set, table) {
		out = append(out, fmt.Sprintf("Unknown condition (bit %d)", bit))
	}
	return out
}

func identify(set uint32, table []Flag) []string {
	var out []string
	for _, f := range table {
		if set&(1<<f.Bit) != 0 {
			out = append(out, f.ID)
		}
	}
	for _, bit := range unknownBits(set, table) {
		out = append(out, fmt.Sprintf("bit_%d", bit))
	}
	return out
}

func unknownBits(set uint32, table []Flag) []int {
	for _, f := range table {
		set &^= 1 << f.Bit
	}
	var out []int
	for set != 0 {
		bit := bits.TrailingZeros32(set)
		out = append(out, bit)
		set &^= 1 << bit
	}
	return out
}
