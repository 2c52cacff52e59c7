package zpl

import (
	"image"
	"image/color"
	"strconv"
	"strings"
)

const bitsPerByte = 8

// Bitmap - сетка пикселей в оттенках серого: 0 - черный, 255 - белый.
type Bitmap interface {
	Width() int
	Height() int
	Gray(x, y int) uint8
}

// BytesPerRow возвращает число байт в строке из width пикселей
// при упаковке один бит на пиксель.
func BytesPerRow(width uint) uint {
	return (width + bitsPerByte - 1) / bitsPerByte
}

type imageBitmap struct {
	img    image.Image
	bounds image.Rectangle
}

// FromImage превращает изображение в Bitmap. Яркость считается
// с весами 299/587/114, альфа-канал игнорируется.
func FromImage(img image.Image) Bitmap {
	return &imageBitmap{img: img, bounds: img.Bounds()}
}

func (b *imageBitmap) Width() int  { return b.bounds.Dx() }
func (b *imageBitmap) Height() int { return b.bounds.Dy() }

func (b *imageBitmap) Gray(x, y int) uint8 {
	c := color.NRGBAModel.Convert(b.img.At(b.bounds.Min.X+x, b.bounds.Min.Y+y)).(color.NRGBA)
	return uint8((uint32(c.R)*299 + uint32(c.G)*587 + uint32(c.B)*114) / 1000)
}

const hexDigits = "0123456789ABCDEF"

// ImageToHex упаковывает изображение в hex-формат ZPL для ~DG и ^GF.
// Пиксель темнее threshold дает установленный бит. Каждая строка занимает
// BytesPerRow(width) байт, по 8 пикселей на байт, старший бит первый;
// неиспользуемые младшие биты последнего байта строки остаются нулевыми.
// Строки склеиваются в одну hex-строку в верхнем регистре.
func ImageToHex(b Bitmap, threshold uint8) string {
	width, height := b.Width(), b.Height()
	bytesPerRow := int(BytesPerRow(uint(width)))

	var out strings.Builder
	out.Grow(bytesPerRow * height * 2)

	row := make([]byte, bytesPerRow)
	for y := 0; y < height; y++ {
		clear(row)
		for x := 0; x < width; x++ {
			if b.Gray(x, y) < threshold {
				row[x/bitsPerByte] |= 1 << (bitsPerByte - 1 - x%bitsPerByte)
			}
		}
		for _, v := range row {
			out.WriteByte(hexDigits[v>>4])
			out.WriteByte(hexDigits[v&0x0F])
		}
	}

	return out.String()
}

// NewGraphicField кодирует b как встроенное изображение ^GFA.
func NewGraphicField(b Bitmap, threshold uint8) GraphicField {
	return GraphicField{
		Width:  uint(b.Width()),
		Height: uint(b.Height()),
		Data:   ImageToHex(b, threshold),
	}
}

// NewDownloadGraphic кодирует b как изображение ~DG с путем path.
func NewDownloadGraphic(path string, b Bitmap, threshold uint8) DownloadGraphic {
	return DownloadGraphic{
		Path:   path,
		Width:  uint(b.Width()),
		Height: uint(b.Height()),
		Data:   ImageToHex(b, threshold),
	}
}

// ParseGraphicField извлекает первое изображение ^GFA из ZPL-документа,
// например из ответа сервиса конвертации. Ширина кратна 8, так как
// ^GFA не хранит ширину в пикселях.
func ParseGraphicField(doc string) (width, height uint, data string, ok bool) {
	start := strings.Index(strings.ToUpper(doc), "^GFA,")
	if start < 0 {
		return 0, 0, "", false
	}

	section := doc[start+len("^GFA,"):]
	if end := strings.IndexByte(section, '^'); end >= 0 {
		section = section[:end]
	}

	parts := strings.Split(section, ",")
	if len(parts) < 4 {
		return 0, 0, "", false
	}

	total, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 32)
	if err != nil {
		return 0, 0, "", false
	}
	bytesPerRow, err := strconv.ParseUint(strings.TrimSpace(parts[2]), 10, 32)
	if err != nil {
		return 0, 0, "", false
	}

	data = strings.ToUpper(strings.Join(strings.Fields(strings.Join(parts[3:], "")), ""))

	if bytesPerRow > 0 {
		height = uint(total / bytesPerRow)
	}
	width = uint(bytesPerRow) * bitsPerByte

	return width, height, data, true
}
