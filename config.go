package zebra

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/iwtcode/zplAdapter/printer"
	"github.com/iwtcode/zplAdapter/render"
	"gopkg.in/yaml.v3"
)

// Config хранит модель конфигурации приложения
type Config struct {
	Host              string  `yaml:"host"`
	Port              uint16  `yaml:"port"`
	ConnectTimeoutMs  int32   `yaml:"connect_timeout_ms"`
	ResponseTimeoutMs int32   `yaml:"response_timeout_ms"`
	IdleTimeoutMs     int32   `yaml:"idle_timeout_ms"`
	LogLevel          string  `yaml:"log_level"`
	RenderBaseURL     string  `yaml:"render_base_url"`
	RenderDpmm        int     `yaml:"render_dpmm"`
	LabelWidthIn      float64 `yaml:"label_width_in"`
	LabelHeightIn     float64 `yaml:"label_height_in"`
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	host := os.Getenv("ZPL_PRINTER_HOST")
	if host == "" {
		host = "192.168.1.100"
	}

	portStr := os.Getenv("ZPL_PRINTER_PORT")
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil || port == 0 {
		port = uint64(printer.DefaultPort)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	baseURL := os.Getenv("LABELARY_URL")
	if baseURL == "" {
		baseURL = render.DefaultBaseURL
	}

	dpmm, err := strconv.Atoi(os.Getenv("LABELARY_DPMM"))
	if err != nil || dpmm <= 0 {
		dpmm = render.DefaultDpmm
	}

	return &Config{
		Host:              host,
		Port:              uint16(port),
		ConnectTimeoutMs:  envMillis("ZPL_CONNECT_TIMEOUT_MS", 5000),
		ResponseTimeoutMs: envMillis("ZPL_RESPONSE_TIMEOUT_MS", 5000),
		IdleTimeoutMs:     envMillis("ZPL_IDLE_TIMEOUT_MS", 500),
		LogLevel:          logLevel,
		RenderBaseURL:     baseURL,
		RenderDpmm:        dpmm,
		LabelWidthIn:      envInches("LABEL_WIDTH_IN", render.DefaultWidth),
		LabelHeightIn:     envInches("LABEL_HEIGHT_IN", render.DefaultHeight),
	}
}

// LoadFile загружает конфигурацию из YAML-файла. Значения, не указанные
// в файле, берутся из Load.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Load()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет, что конфигурация пригодна для работы.
func (c *Config) Validate() error {
	if c.Host == "" {
		return errors.New("printer host is required")
	}
	if c.Port == 0 {
		return errors.New("printer port is required")
	}
	if c.ConnectTimeoutMs < 0 || c.ResponseTimeoutMs < 0 || c.IdleTimeoutMs < 0 {
		return errors.New("timeouts must not be negative")
	}
	if c.LabelWidthIn < 0 || c.LabelHeightIn < 0 {
		return errors.New("label size must not be negative")
	}
	return nil
}

func envMillis(key string, fallback int32) int32 {
	v, err := strconv.ParseInt(os.Getenv(key), 10, 32)
	if err != nil || v <= 0 {
		return fallback
	}
	return int32(v)
}

func envInches(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
