package zpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{name: "start format", cmd: StartFormat{}, want: "^XA"},
		{name: "end format", cmd: EndFormat{}, want: "^XZ"},
		{name: "field origin", cmd: FieldOrigin{X: 50, Y: 150}, want: "^FO50,150"},
		{name: "font", cmd: Font{Orientation: Rotated90, Height: 30, Width: 20}, want: "^A0R,30,20"},
		{name: "field data", cmd: FieldData{Data: "Hello World!"}, want: "^FDHello World!"},
		{name: "field separator", cmd: FieldSeparator{}, want: "^FS"},
		{
			name: "download graphic",
			cmd:  DownloadGraphic{Path: "R:LOGO.GRF", Width: 9, Height: 3, Data: "FF80FF80FF80"},
			want: "~DGR:LOGO.GRF,6,2,FF80FF80FF80",
		},
		{name: "recall graphic", cmd: RecallGraphic{Path: "R:LOGO.GRF", MagnificationX: 2, MagnificationY: 3}, want: "^XGR:LOGO.GRF,2,3"},
		{name: "graphic box", cmd: GraphicBox{Width: 300, Height: 2, Thickness: 2}, want: "^GB300,2,2"},
		{name: "change font", cmd: ChangeFont{Font: "0", Size: 30}, want: "^CF0,30"},
		{name: "field orientation", cmd: FieldOrientation{Rotation: Inverted}, want: "^FWI"},
		{name: "barcode defaults", cmd: BarcodeDefaults{ModuleWidth: 2, Ratio: 2.5, Height: 60}, want: "^BY2,2.5,60"},
		{name: "barcode defaults whole ratio", cmd: BarcodeDefaults{ModuleWidth: 2, Ratio: 3, Height: 60}, want: "^BY2,3,60"},
		{
			name: "code 128",
			cmd: Code128{
				Orientation:         Normal,
				Height:              60,
				PrintInterpretation: true,
				Mode:                Code128ModeNone,
			},
			want: "^BCN,60,Y,N,N,N",
		},
		{
			name: "graphic field strips separators",
			cmd:  GraphicField{Width: 16, Height: 2, Data: "ff 00,\r\nAB cd"},
			want: "^GFA,4,4,2,FF00ABCD",
		},
		{name: "media mode delayed", cmd: MediaModeDelayed{}, want: "^MMD"},
		{name: "cut now", cmd: CutNow{}, want: "~JK"},
		{name: "raw", cmd: Raw{Text: "^PW812"}, want: "^PW812"},
		{name: "nil command", cmd: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Serialize(tt.cmd))
		})
	}
}

func TestSerializeSequence(t *testing.T) {
	got := SerializeSequence([]Command{StartFormat{}, FieldOrigin{X: 50, Y: 50}, EndFormat{}})
	assert.Equal(t, "^XA^FO50,50^XZ", got)

	assert.Equal(t, "", SerializeSequence(nil))

	// Порядок сохраняется, грамматика не проверяется.
	got = SerializeSequence([]Command{EndFormat{}, FieldSeparator{}, StartFormat{}})
	assert.Equal(t, "^XZ^FS^XA", got)
}

func TestSerializeKeepsInvalidContent(t *testing.T) {
	assert.Equal(t, "^FO-5,-10", Serialize(FieldOrigin{X: -5, Y: -10}))
	assert.Equal(t, "^FDa^b~c", Serialize(FieldData{Data: "a^b~c"}))
}

func TestOrientationCodes(t *testing.T) {
	codes := map[Orientation]string{
		Normal:     "N",
		Rotated90:  "R",
		Inverted:   "I",
		Rotated270: "B",
	}

	for o, code := range codes {
		assert.Equal(t, code, o.Code())

		parsed, err := ParseOrientation(code)
		require.NoError(t, err)
		assert.Equal(t, o, parsed)
	}

	_, err := ParseOrientation("X")
	assert.Error(t, err)
	assert.Equal(t, "N", Orientation(42).Code())
}

func TestCommandNames(t *testing.T) {
	assert.Equal(t, "Field Origin (^FO)", FieldOrigin{}.Name())
	assert.Equal(t, "Cut Now (~JK)", CutNow{}.Name())
	assert.Equal(t, "Graphic Field (^GFA)", GraphicField{}.Name())
	assert.Equal(t, "Download Graphic (~DG)", DownloadGraphic{Path: "R:LOGO.GRF"}.Name())
	assert.Equal(t, "Recall Graphic (^XG)", RecallGraphic{Path: "R:LOGO.GRF"}.Name())
}
