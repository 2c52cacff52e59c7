package zpl

// Label собирает формат одной этикетки. Он начинается с ^XA,
// а Commands и String закрывают его командой ^XZ.
type Label struct {
	commands []Command
}

func NewLabel() *Label {
	return &Label{commands: []Command{StartFormat{}}}
}

func (l *Label) Add(cmds ...Command) *Label {
	l.commands = append(l.commands, cmds...)
	return l
}

func (l *Label) FieldOrigin(x, y int) *Label {
	return l.Add(FieldOrigin{X: x, Y: y})
}

func (l *Label) Font(o Orientation, height, width int) *Label {
	return l.Add(Font{Orientation: o, Height: height, Width: width})
}

func (l *Label) FieldData(data string) *Label {
	return l.Add(FieldData{Data: data})
}

func (l *Label) FieldSeparator() *Label {
	return l.Add(FieldSeparator{})
}

func (l *Label) GraphicBox(width, height, thickness int) *Label {
	return l.Add(GraphicBox{Width: width, Height: height, Thickness: thickness})
}

func (l *Label) GraphicField(width, height uint, data string) *Label {
	return l.Add(GraphicField{Width: width, Height: height, Data: data})
}

// Text добавляет текстовое поле целиком: позицию, шрифт, данные и ^FS.
func (l *Label) Text(x, y int, o Orientation, height, width int, data string) *Label {
	return l.FieldOrigin(x, y).Font(o, height, width).FieldData(data).FieldSeparator()
}

// Commands возвращает копию команд этикетки, завершенную ^XZ.
func (l *Label) Commands() []Command {
	out := make([]Command, 0, len(l.commands)+1)
	out = append(out, l.commands...)
	return append(out, EndFormat{})
}

func (l *Label) String() string {
	return SerializeSequence(l.Commands())
}

// WithCutting возвращает копию cmds, настроенную для отрезчика. Если enabled,
// ^MMD вставляется сразу после первого ^XA, а ~JK перед первым ^XZ, если их
// еще нет. Иначе обе команды удаляются.
func WithCutting(cmds []Command, enabled bool) []Command {
	if !enabled {
		out := make([]Command, 0, len(cmds))
		for _, cmd := range cmds {
			switch cmd.(type) {
			case MediaModeDelayed, CutNow:
				continue
			}
			out = append(out, cmd)
		}
		return out
	}

	hasMediaMode := contains[MediaModeDelayed](cmds)
	hasCutNow := contains[CutNow](cmds)

	out := make([]Command, 0, len(cmds)+2)
	startSeen, endSeen := false, false
	for _, cmd := range cmds {
		if _, ok := cmd.(EndFormat); ok && !endSeen {
			endSeen = true
			if !hasCutNow {
				out = append(out, CutNow{})
			}
		}
		out = append(out, cmd)
		if _, ok := cmd.(StartFormat); ok && !startSeen {
			startSeen = true
			if !hasMediaMode {
				out = append(out, MediaModeDelayed{})
			}
		}
	}
	return out
}

func contains[T Command](cmds []Command) bool {
	for _, cmd := range cmds {
		if _, ok := cmd.(T); ok {
			return true
		}
	}
	return false
}
