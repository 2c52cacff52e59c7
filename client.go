package zebra

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/iwtcode/zplAdapter/models"
	"github.com/iwtcode/zplAdapter/printer"
	"github.com/iwtcode/zplAdapter/render"
	"github.com/iwtcode/zplAdapter/status"
	"github.com/iwtcode/zplAdapter/zpl"
	"github.com/sirupsen/logrus"
)

// Client является основной точкой входа для взаимодействия с библиотекой.
type Client struct {
	printer   printer.Printer
	transport printer.Transport
	renderer  *render.Client
	config    *Config
	logger    *logrus.Logger
}

// Option настраивает клиента.
type Option func(*Client)

// WithTransport подменяет транспорт (например, на фейковый в тестах).
func WithTransport(t printer.Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithRenderer подменяет клиент сервиса рендеринга.
func WithRenderer(r *render.Client) Option {
	return func(c *Client) {
		c.renderer = r
	}
}

// WithLogger задает готовый логгер вместо создаваемого по конфигурации.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New создает и возвращает новый экземпляр клиента.
// Соединение с принтером не устанавливается: каждый запрос открывает свое.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c := &Client{
		printer: printer.New(cfg.Host, cfg.Port),
		config:  cfg,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = newLogger(cfg.LogLevel)
	}
	if c.transport == nil {
		if !printer.Available {
			c.logger.Warn("Raw sockets are not available, printer calls will fail")
		}
		c.transport = printer.NewTCPTransport(
			printer.WithConnectTimeout(time.Duration(cfg.ConnectTimeoutMs)*time.Millisecond),
			printer.WithResponseTimeout(time.Duration(cfg.ResponseTimeoutMs)*time.Millisecond),
			printer.WithIdleTimeout(time.Duration(cfg.IdleTimeoutMs)*time.Millisecond),
		)
	}
	if c.renderer == nil {
		c.renderer = render.New(
			render.WithBaseURL(cfg.RenderBaseURL),
			render.WithDpmm(cfg.RenderDpmm),
			render.WithLabelSize(cfg.LabelWidthIn, cfg.LabelHeightIn),
		)
	}

	return c, nil
}

func newLogger(levelName string) *logrus.Logger {
	logger := logrus.New()

	if levelName == "off" || levelName == "none" {
		logger.SetOutput(io.Discard)
	} else {
		level, err := logrus.ParseLevel(levelName)
		if err != nil {
			level = logrus.InfoLevel
		}
		logger.SetLevel(level)
		logger.SetOutput(os.Stdout)
	}

	// Настраиваем форматтер с понятным форматом времени
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		ForceColors:     true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return logger
}

// GetLogger возвращает используемый логгер.
func (c *Client) GetLogger() *logrus.Logger {
	return c.logger
}

// Printer возвращает адрес принтера, с которым работает клиент.
func (c *Client) Printer() printer.Printer {
	return c.printer
}

// Send отправляет готовую ZPL-строку без ожидания ответа.
// Каждой отправке присваивается идентификатор задания для логов.
func (c *Client) Send(payload string) error {
	entry := c.logger.WithFields(logrus.Fields{
		"printer": c.printer.Address(),
		"job":     uuid.NewString(),
		"bytes":   len(payload),
	})
	entry.Debug("Sending payload")

	if err := c.transport.Send(c.printer, payload); err != nil {
		entry.WithError(err).Debug("Send failed")
		return fmt.Errorf("failed to send payload: %w", err)
	}
	return nil
}

// Print сериализует команды и отправляет их на принтер.
func (c *Client) Print(cmds ...zpl.Command) error {
	return c.Send(zpl.SerializeSequence(cmds))
}

// PrintLabel отправляет этикетку, при необходимости добавляя команды отрезки.
func (c *Client) PrintLabel(label *zpl.Label, cut bool) error {
	return c.Print(zpl.WithCutting(label.Commands(), cut)...)
}

// Query отправляет команду-запрос и возвращает сырой ответ принтера.
func (c *Client) Query(command string) (string, error) {
	c.logger.WithField("printer", c.printer.Address()).Debugf("Querying %q", command)

	resp, err := c.transport.Query(c.printer, command)
	if err != nil {
		return "", fmt.Errorf("failed to query printer: %w", err)
	}
	return resp, nil
}

// QueryHost выполняет запрос ~HQ с указанным кодом (ES, SN, HA, OD, PH, PP ...).
func (c *Client) QueryHost(code string) (string, error) {
	return c.Query(printer.HostQuery(code))
}

// GetStatus возвращает разобранное состояние принтера (~HQES).
func (c *Client) GetStatus() (*status.PrinterStatus, error) {
	resp, err := c.Query(printer.QueryStatus)
	if err != nil {
		return nil, err
	}

	st, err := status.ParseStatus(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse status: %w", err)
	}

	if !st.IsOK() {
		c.logger.WithFields(logrus.Fields{
			"errors":   st.Errors.String(),
			"warnings": st.Warnings.String(),
		}).Warn("Printer reports problems")
	}
	return st, nil
}

// GetMemoryStatus возвращает состояние памяти принтера (~HM).
func (c *Client) GetMemoryStatus() (*models.MemoryStatus, error) {
	resp, err := c.Query(printer.QueryMemory)
	if err != nil {
		return nil, err
	}

	m, err := status.ParseMemory(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse memory status: %w", err)
	}
	return &m, nil
}

// GetPrinterInfo собирает диагностическую сводку, опрашивая принтер по очереди.
// Ошибка соединения прерывает сбор, остальные сбои только логируются,
// а соответствующее поле остается пустым.
func (c *Client) GetPrinterInfo() (*models.PrinterInfo, error) {
	info := &models.PrinterInfo{}

	steps := []struct {
		name    string
		command string
		apply   func(resp string) error
	}{
		{"serial number", printer.QuerySerialNumber, func(resp string) error {
			v, err := status.ParseSerialNumber(resp)
			info.SerialNumber = optional(v, err)
			return err
		}},
		{"hardware address", printer.QueryHardwareAddress, func(resp string) error {
			v, err := status.ParseHardwareAddress(resp)
			info.HardwareAddress = optional(v, err)
			return err
		}},
		{"odometer", printer.QueryOdometer, func(resp string) error {
			v, err := status.ParseOdometer(resp)
			info.Odometer = optional(v, err)
			return err
		}},
		{"printhead life", printer.QueryPrintheadLife, func(resp string) error {
			v, err := status.ParsePrintheadLife(resp)
			info.PrintheadLife = optional(v, err)
			return err
		}},
		{"plug and play", printer.QueryPlugAndPlay, func(resp string) error {
			v, err := status.ParsePlugAndPlay(resp)
			info.PlugAndPlay = optional(v, err)
			return err
		}},
		{"firmware version", printer.QueryFirmware, func(resp string) error {
			v, err := status.ParseFirmwareVersion(resp)
			info.FirmwareVersion = optional(v, err)
			return err
		}},
		{"memory status", printer.QueryMemory, func(resp string) error {
			v, err := status.ParseMemory(resp)
			info.MemoryStatus = optional(v, err)
			return err
		}},
	}

	for _, step := range steps {
		resp, err := c.Query(step.command)
		if err != nil {
			if errors.Is(err, printer.ErrConnection) || errors.Is(err, printer.ErrUnsupported) {
				return nil, fmt.Errorf("failed to read %s: %w", step.name, err)
			}
			c.logger.Warnf("Warning: failed to read %s: %v", step.name, err)
			continue
		}
		if err := step.apply(resp); err != nil {
			c.logger.Warnf("Warning: failed to parse %s: %v", step.name, err)
		}
	}

	return info, nil
}

// Render отрисовывает команды через сервис Labelary и возвращает PNG.
func (c *Client) Render(ctx context.Context, cmds ...zpl.Command) ([]byte, error) {
	png, err := c.renderer.Render(ctx, zpl.SerializeSequence(cmds))
	if err != nil {
		return nil, err
	}
	c.logger.WithField("bytes", len(png)).Debug("Label rendered")
	return png, nil
}

// ConvertImage преобразует изображение в команду ^GFA через сервис Labelary.
func (c *Client) ConvertImage(ctx context.Context, data []byte) (zpl.GraphicField, error) {
	doc, err := c.renderer.ConvertImage(ctx, data)
	if err != nil {
		return zpl.GraphicField{}, err
	}

	width, height, hex, ok := zpl.ParseGraphicField(doc)
	if !ok {
		return zpl.GraphicField{}, fmt.Errorf("no graphic field in converted image: %q", truncate(doc, 64))
	}
	return zpl.GraphicField{Width: width, Height: height, Data: hex}, nil
}

// GraphicFromImage локально переводит изображение в монохромную команду ^GFA
// шириной не более maxWidth точек.
func (c *Client) GraphicFromImage(img image.Image, maxWidth int) zpl.GraphicField {
	return zpl.NewGraphicField(zpl.FromImage(zpl.Monochrome(img, maxWidth)), 128)
}

func optional[T any](v T, err error) *T {
	if err != nil {
		return nil
	}
	return &v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
