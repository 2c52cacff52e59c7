package zpl

import "fmt"

// Orientation - поворот шрифта или поля.
type Orientation int

const (
	Normal Orientation = iota
	Rotated90
	Inverted
	Rotated270
)

var orientationCodes = [...]string{
	Normal:     "N",
	Rotated90:  "R",
	Inverted:   "I",
	Rotated270: "B",
}

// Code возвращает однобуквенный код ZPL.
// Значения вне перечисления дают "N".
func (o Orientation) Code() string {
	if o < Normal || o > Rotated270 {
		return orientationCodes[Normal]
	}
	return orientationCodes[o]
}

func (o Orientation) String() string {
	switch o {
	case Normal:
		return "Normal"
	case Rotated90:
		return "Rotated90"
	case Inverted:
		return "Inverted"
	case Rotated270:
		return "Rotated270"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// ParseOrientation выполняет обратное преобразование буквы в Orientation.
func ParseOrientation(code string) (Orientation, error) {
	for o, c := range orientationCodes {
		if c == code {
			return Orientation(o), nil
		}
	}
	return Normal, fmt.Errorf("zpl: unknown orientation code %q", code)
}
