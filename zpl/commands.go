// Package zpl описывает команды языка ZPL и их текстовое представление.
//
// Команды являются обычными значениями. Сериализация последовательности -
// это конкатенация команд по порядку без разделителей. Грамматика ZPL и
// содержимое полей не проверяются: проверку выполняет сам принтер, а ошибки
// он сообщает через запросы состояния.
package zpl

import (
	"fmt"
	"strconv"
	"strings"
)

// Command - одна директива ZPL.
// Набор команд закрыт, всё остальное передается через Raw.
type Command interface {
	// Name возвращает читаемое имя, например "Field Origin (^FO)".
	Name() string
	wire() string
}

// Serialize возвращает текстовое представление команды. Для nil - пустая строка.
func Serialize(cmd Command) string {
	if cmd == nil {
		return ""
	}
	return cmd.wire()
}

// SerializeSequence собирает команды по порядку в одну строку.
func SerializeSequence(cmds []Command) string {
	var b strings.Builder
	for _, cmd := range cmds {
		b.WriteString(Serialize(cmd))
	}
	return b.String()
}

// StartFormat открывает формат этикетки (^XA).
type StartFormat struct{}

func (StartFormat) Name() string { return "Start Format (^XA)" }
func (StartFormat) wire() string { return "^XA" }

// EndFormat закрывает формат этикетки (^XZ).
type EndFormat struct{}

func (EndFormat) Name() string { return "End Format (^XZ)" }
func (EndFormat) wire() string { return "^XZ" }

// FieldOrigin задает позицию следующего поля в точках.
type FieldOrigin struct {
	X, Y int
}

func (FieldOrigin) Name() string { return "Field Origin (^FO)" }
func (c FieldOrigin) wire() string {
	return fmt.Sprintf("^FO%d,%d", c.X, c.Y)
}

// Font выбирает масштабируемый шрифт 0 для следующего поля.
type Font struct {
	Orientation Orientation
	Height      int
	Width       int
}

func (Font) Name() string { return "Font (^A0)" }
func (c Font) wire() string {
	return fmt.Sprintf("^A0%s,%d,%d", c.Orientation.Code(), c.Height, c.Width)
}

// FieldData - содержимое поля. Экранирование не выполняется,
// поэтому ^ и ~ внутри Data будут восприняты принтером как команды.
type FieldData struct {
	Data string
}

func (FieldData) Name() string   { return "Field Data (^FD)" }
func (c FieldData) wire() string { return "^FD" + c.Data }

type FieldSeparator struct{}

func (FieldSeparator) Name() string { return "Field Separator (^FS)" }
func (FieldSeparator) wire() string { return "^FS" }

// DownloadGraphic сохраняет монохромное изображение в памяти принтера по пути Path,
// например "R:LOGO.GRF".
// Data - hex-строка, полученная из ImageToHex для изображения Width x Height.
type DownloadGraphic struct {
	Path   string
	Width  uint
	Height uint
	Data   string
}

func (DownloadGraphic) Name() string { return "Download Graphic (~DG)" }
func (c DownloadGraphic) wire() string {
	bytesPerRow := BytesPerRow(c.Width)
	return fmt.Sprintf("~DG%s,%d,%d,%s", c.Path, bytesPerRow*c.Height, bytesPerRow, c.Data)
}

// RecallGraphic печатает изображение, сохраненное через DownloadGraphic.
type RecallGraphic struct {
	Path           string
	MagnificationX int
	MagnificationY int
}

func (RecallGraphic) Name() string { return "Recall Graphic (^XG)" }
func (c RecallGraphic) wire() string {
	return fmt.Sprintf("^XG%s,%d,%d", c.Path, c.MagnificationX, c.MagnificationY)
}

// GraphicBox рисует рамку, а при малой высоте - линию.
type GraphicBox struct {
	Width     int
	Height    int
	Thickness int
}

func (GraphicBox) Name() string { return "Graphic Box (^GB)" }
func (c GraphicBox) wire() string {
	return fmt.Sprintf("^GB%d,%d,%d", c.Width, c.Height, c.Thickness)
}

type ChangeFont struct {
	Font string
	Size int
}

func (ChangeFont) Name() string { return "Change Font (^CF)" }
func (c ChangeFont) wire() string {
	return fmt.Sprintf("^CF%s,%d", c.Font, c.Size)
}

// FieldOrientation задает поворот по умолчанию для следующих полей.
type FieldOrientation struct {
	Rotation Orientation
}

func (FieldOrientation) Name() string   { return "Field Orientation (^FW)" }
func (c FieldOrientation) wire() string { return "^FW" + c.Rotation.Code() }

// BarcodeDefaults задает ширину модуля, соотношение и высоту штрихкодов.
type BarcodeDefaults struct {
	ModuleWidth int
	Ratio       float64
	Height      int
}

func (BarcodeDefaults) Name() string { return "Barcode Field Default (^BY)" }
func (c BarcodeDefaults) wire() string {
	return fmt.Sprintf("^BY%d,%s,%d", c.ModuleWidth, strconv.FormatFloat(c.Ratio, 'f', -1, 64), c.Height)
}

// Code128Mode - режим набора символов ^BC.
type Code128Mode string

const (
	Code128ModeNone      Code128Mode = "N"
	Code128ModeUCC       Code128Mode = "U"
	Code128ModeAutomatic Code128Mode = "A"
	Code128ModeUCCEAN    Code128Mode = "D"
)

// Code128 начинает поле штрихкода Code 128.
type Code128 struct {
	Orientation         Orientation
	Height              int
	PrintInterpretation bool
	PrintAbove          bool
	CheckDigit          bool
	Mode                Code128Mode
}

func (Code128) Name() string { return "Code 128 Barcode (^BC)" }
func (c Code128) wire() string {
	return fmt.Sprintf("^BC%s,%d,%s,%s,%s,%s",
		c.Orientation.Code(),
		c.Height,
		yesNo(c.PrintInterpretation),
		yesNo(c.PrintAbove),
		yesNo(c.CheckDigit),
		c.Mode,
	)
}

// GraphicField печатает встроенное изображение в формате ASCII-hex (^GFA).
// Запятые и пробелы в Data удаляются при сериализации.
type GraphicField struct {
	Width  uint
	Height uint
	Data   string
}

func (GraphicField) Name() string { return "Graphic Field (^GFA)" }
func (c GraphicField) wire() string {
	bytesPerRow := BytesPerRow(c.Width)
	total := bytesPerRow * c.Height
	return fmt.Sprintf("^GFA,%d,%d,%d,%s", total, total, bytesPerRow, cleanHex(c.Data))
}

// MediaModeDelayed включает режим отложенной отрезки (^MMD).
type MediaModeDelayed struct{}

func (MediaModeDelayed) Name() string { return "Media Mode Delayed (^MMD)" }
func (MediaModeDelayed) wire() string { return "^MMD" }

// CutNow запускает отрезку (~JK).
type CutNow struct{}

func (CutNow) Name() string { return "Cut Now (~JK)" }
func (CutNow) wire() string { return "~JK" }

// Raw передает Text без изменений, для директив без отдельной модели.
type Raw struct {
	Text string
}

func (Raw) Name() string   { return "Raw ZPL" }
func (c Raw) wire() string { return c.Text }

func yesNo(v bool) string {
	if v {
		return "Y"
	}
	return "N"
}

var hexCleaner = strings.NewReplacer(",", "", " ", "", "\n", "", "\r", "")

func cleanHex(data string) string {
	return strings.ToUpper(hexCleaner.Replace(data))
}
