package zebra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/iwtcode/zplAdapter/printer"
	"github.com/iwtcode/zplAdapter/render"
	"github.com/iwtcode/zplAdapter/status"
	"github.com/iwtcode/zplAdapter/zpl"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport отвечает на запросы заранее заданными строками.
type fakeTransport struct {
	mu        sync.Mutex
	responses map[string]string
	failures  map[string]error
	sent      []string
	queried   []string
}

func (f *fakeTransport) Send(p printer.Printer, payload string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, payload)
	return f.failures[payload]
}

func (f *fakeTransport) Query(p printer.Printer, command string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queried = append(f.queried, command)
	if err, ok := f.failures[command]; ok {
		return "", err
	}
	resp, ok := f.responses[command]
	if !ok {
		return "", printer.NewTransportError(printer.ErrTimeout, "query", p.Address(), nil)
	}
	return resp, nil
}

func testConfig() *Config {
	return &Config{
		Host:              "127.0.0.1",
		Port:              9100,
		ConnectTimeoutMs:  1000,
		ResponseTimeoutMs: 300,
		IdleTimeoutMs:     100,
		LogLevel:          "off",
		RenderBaseURL:     render.DefaultBaseURL,
		RenderDpmm:        render.DefaultDpmm,
		LabelWidthIn:      4,
		LabelHeightIn:     6,
	}
}

func setupTest(t *testing.T, tr printer.Transport) (*Client, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	c, err := New(testConfig(), WithTransport(tr), WithLogger(logger))
	require.NoError(t, err, "Не удалось создать клиента")
	require.NotNil(t, c, "Клиент не должен быть nil")
	return c, hook
}

func logAsJSON(t *testing.T, name string, data interface{}) {
	t.Helper()
	jsonData, err := json.MarshalIndent(data, "", "  ")
	require.NoError(t, err, "Ошибка маршалинга JSON для %s", name)
	log.Printf("--- %s ---\n%s", name, string(jsonData))
}

func encodeTestPNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)

	cfg := testConfig()
	cfg.Host = ""
	_, err = New(cfg)
	require.Error(t, err)
}

func TestNewLoggerLevels(t *testing.T) {
	assert.Equal(t, io.Discard, newLogger("off").Out)
	assert.Equal(t, io.Discard, newLogger("none").Out)
	assert.Equal(t, logrus.DebugLevel, newLogger("debug").GetLevel())
	assert.Equal(t, logrus.InfoLevel, newLogger("loud").GetLevel())
}

func TestPrintLabel(t *testing.T) {
	tr := &fakeTransport{}
	c, _ := setupTest(t, tr)

	label := zpl.NewLabel().Text(50, 50, zpl.Normal, 50, 50, "Hello World!")
	require.NoError(t, c.PrintLabel(label, false))
	require.NoError(t, c.PrintLabel(label, true))
	require.NoError(t, c.Print(zpl.StartFormat{}, zpl.FieldOrigin{X: 1, Y: 2}, zpl.EndFormat{}))

	assert.Equal(t, []string{
		"^XA^FO50,50^A0N,50,50^FDHello World!^FS^XZ",
		"^XA^MMD^FO50,50^A0N,50,50^FDHello World!^FS~JK^XZ",
		"^XA^FO1,2^XZ",
	}, tr.sent)
}

func TestSendLogsJobID(t *testing.T) {
	tr := &fakeTransport{}
	c, hook := setupTest(t, tr)
	c.GetLogger().SetLevel(logrus.DebugLevel)

	require.NoError(t, c.Send("^XA^XZ"))
	require.NoError(t, c.Send("^XA^XZ"))

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	first, ok := entries[0].Data["job"].(string)
	require.True(t, ok)
	_, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.NotEqual(t, first, entries[1].Data["job"], "каждая отправка получает свой идентификатор")
	assert.Equal(t, 6, entries[0].Data["bytes"])
}

func TestSendWrapsTransportError(t *testing.T) {
	tr := &fakeTransport{failures: map[string]error{
		"^XA^XZ": printer.NewTransportError(printer.ErrWrite, "send", "127.0.0.1:9100", io.ErrShortWrite),
	}}
	c, _ := setupTest(t, tr)

	err := c.Send("^XA^XZ")
	require.Error(t, err)
	assert.ErrorIs(t, err, printer.ErrWrite)

	var terr *printer.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "send", terr.Op)
}

func TestGetStatus(t *testing.T) {
	tr := &fakeTransport{responses: map[string]string{
		printer.QueryStatus: "\x02\r\n PRINTER STATUS\r\n ERRORS: 1 00000000 00000002\r\n WARNINGS: 0 00000000 00000000\r\n\x03",
	}}
	c, hook := setupTest(t, tr)

	st, err := c.GetStatus()
	require.NoError(t, err)

	assert.Equal(t, status.RibbonOut, st.Errors)
	assert.True(t, st.Warnings.IsEmpty())
	assert.False(t, st.IsOK())
	assert.Equal(t, []string{printer.QueryStatus}, tr.queried)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "ribbon_out", hook.LastEntry().Data["errors"])
}

func TestGetStatusParseError(t *testing.T) {
	tr := &fakeTransport{responses: map[string]string{
		printer.QueryStatus: "ERRORS: 0 00000000 00000000\r\n",
	}}
	c, _ := setupTest(t, tr)

	st, err := c.GetStatus()
	require.Error(t, err)
	assert.Nil(t, st)
	assert.ErrorIs(t, err, status.ErrIncomplete)
}

func TestGetMemoryStatus(t *testing.T) {
	tr := &fakeTransport{responses: map[string]string{printer.QueryMemory: "1024,800,600\r\n"}}
	c, _ := setupTest(t, tr)

	m, err := c.GetMemoryStatus()
	require.NoError(t, err)
	assert.Equal(t, uint32(600), m.CurrentAvailableKB)

	p, err := status.UsagePercent(*m)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, p, 1e-9)
}

func TestGetPrinterInfo(t *testing.T) {
	tr := &fakeTransport{responses: map[string]string{
		printer.QuerySerialNumber:    "\"XXRBJ123456\"\r\n",
		printer.QueryHardwareAddress: "00074D2A1B3C\r\n",
		printer.QueryOdometer:        "1234 IN\r\n5678\r\n",
		printer.QueryPlugAndPlay:     "MFG:Zebra;\r\nCMD:ZPL;\r\n",
		printer.QueryFirmware:        "V60.19.15Z\r\n",
		printer.QueryMemory:          "1024,bad,600\r\n",
	}}
	c, hook := setupTest(t, tr)

	info, err := c.GetPrinterInfo()
	require.NoError(t, err)
	logAsJSON(t, "PrinterInfo", info)

	require.NotNil(t, info.SerialNumber)
	assert.Equal(t, "XXRBJ123456", *info.SerialNumber)
	require.NotNil(t, info.HardwareAddress)
	assert.Equal(t, "00:07:4D:2A:1B:3C", *info.HardwareAddress)
	require.NotNil(t, info.Odometer)
	assert.Equal(t, "5678", info.Odometer.TotalLabels)
	require.NotNil(t, info.FirmwareVersion)
	assert.Equal(t, "V60.19.15Z", *info.FirmwareVersion)

	// Нет ответа на ~HQPH и неразборчивый ответ на ~HM.
	assert.Nil(t, info.PrintheadLife)
	assert.Nil(t, info.MemoryStatus)
	assert.Len(t, hook.AllEntries(), 2)
	assert.Len(t, tr.queried, 7)
}

func TestGetPrinterInfoStopsOnConnectionError(t *testing.T) {
	tr := &fakeTransport{failures: map[string]error{
		printer.QuerySerialNumber: printer.NewTransportError(printer.ErrConnection, "query", "127.0.0.1:9100", errors.New("refused")),
	}}
	c, _ := setupTest(t, tr)

	info, err := c.GetPrinterInfo()
	require.Error(t, err)
	assert.Nil(t, info)
	assert.ErrorIs(t, err, printer.ErrConnection)
	assert.Len(t, tr.queried, 1)
}

func TestRenderAndConvert(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/printers/8dpmm/labels/4x6/0/":
			body, _ := io.ReadAll(r.Body)
			assert.Equal(t, "^XA^FDx^FS^XZ", string(body))
			_, _ = w.Write([]byte("png"))
		case "/graphics":
			_, _ = w.Write([]byte("^XA^FO0,0^GFA,4,4,1,80,40,20,10^FS^XZ"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	logger, _ := test.NewNullLogger()
	c, err := New(testConfig(),
		WithTransport(&fakeTransport{}),
		WithLogger(logger),
		WithRenderer(render.New(render.WithBaseURL(server.URL))),
	)
	require.NoError(t, err)

	png, err := c.Render(context.Background(), zpl.StartFormat{}, zpl.FieldData{Data: "x"}, zpl.FieldSeparator{}, zpl.EndFormat{})
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), png)

	img := image.NewGray(image.Rect(0, 0, 2, 2))
	gf, err := c.ConvertImage(context.Background(), encodeTestPNG(t, img))
	require.NoError(t, err)
	assert.Equal(t, zpl.GraphicField{Width: 8, Height: 4, Data: "80402010"}, gf)
}

func TestGraphicFromImage(t *testing.T) {
	c, _ := setupTest(t, &fakeTransport{})

	img := image.NewGray(image.Rect(0, 0, 16, 2))
	for x := range 16 {
		for y := range 2 {
			if x < 8 {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	gf := c.GraphicFromImage(img, 0)
	assert.Equal(t, uint(16), gf.Width)
	assert.Equal(t, uint(2), gf.Height)
	assert.Equal(t, "FF00FF00", gf.Data)
}

// TestEndToEndWithFakePrinter прогоняет запрос статуса через настоящий TCP.
func TestEndToEndWithFakePrinter(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, len(printer.QueryStatus))
		if _, err := io.ReadFull(conn, buf); err != nil {
			return
		}
		_, _ = conn.Write([]byte("\x02\r\n PRINTER STATUS\r\n ERRORS: 1 00000000 00000002\r\n WARNINGS: 0 00000000 00000000\r\n\x03"))
	}()

	_, portStr, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	port, err := strconv.ParseUint(portStr, 10, 16)
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Port = uint16(port)
	c, err := New(cfg)
	require.NoError(t, err)

	st, err := c.GetStatus()
	require.NoError(t, err)
	assert.True(t, st.Errors.Has(status.RibbonOut))
	assert.False(t, st.IsOK())
}
