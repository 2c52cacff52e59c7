// Package render - клиент сервиса рендеринга Labelary. Он превращает
// ZPL-документы в PNG, а изображения в поля ^GFA.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"
)

const (
	DefaultBaseURL = "http://api.labelary.com/v1"
	DefaultDpmm    = 8
	DefaultWidth   = 4.0
	DefaultHeight  = 6.0

	labelsEndpoint   = "/printers/%ddpmm/labels/%sx%s/0/"
	graphicsEndpoint = "/graphics"
)

var (
	ErrEmptyImage        = errors.New("image data is empty")
	ErrUnsupportedFormat = errors.New("unsupported image format, use PNG, JPG, GIF or BMP")
	ErrEmptyResponse     = errors.New("service returned an empty response")
)

// Client отрисовывает этикетки через HTTP API Labelary.
type Client struct {
	httpClient *http.Client
	baseURL    string
	dpmm       int
	width      float64
	height     float64
}

// Option настраивает клиента.
type Option func(*Client)

// WithHTTPClient задает свой HTTP-клиент.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL задает базовый URL API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithDpmm задает плотность печати в точках на миллиметр.
func WithDpmm(dpmm int) Option {
	return func(c *Client) {
		c.dpmm = dpmm
	}
}

// WithLabelSize задает размер этикетки в дюймах.
func WithLabelSize(width, height float64) Option {
	return func(c *Client) {
		c.width = width
		c.height = height
	}
}

// New создает клиента для этикетки 4x6 дюйма при 8 dpmm.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    DefaultBaseURL,
		dpmm:       DefaultDpmm,
		width:      DefaultWidth,
		height:     DefaultHeight,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) LabelURL() string {
	return c.baseURL + fmt.Sprintf(labelsEndpoint, c.dpmm, formatInches(c.width), formatInches(c.height))
}

// Render отправляет ZPL-документ и возвращает PNG первой этикетки.
func (c *Client) Render(ctx context.Context, zpl string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.LabelURL(), strings.NewReader(zpl))
	if err != nil {
		return nil, fmt.Errorf("creating render request: %w", err)
	}
	req.Header.Set("Accept", "image/png")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("rendering label: %w", err)
	}
	return body, nil
}

// ConvertImage загружает изображение PNG, JPG, GIF или BMP и возвращает
// сгенерированный сервисом ZPL.
func (c *Client) ConvertImage(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyImage
	}

	ext, err := imageExtension(data)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "image."+ext)
	if err != nil {
		return "", fmt.Errorf("creating form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("writing form file: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("closing multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+graphicsEndpoint, &buf)
	if err != nil {
		return "", fmt.Errorf("creating convert request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	body, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("converting image: %w", err)
	}
	if len(body) == 0 {
		return "", ErrEmptyResponse
	}
	return string(body), nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// APIError возвращается, если сервис ответил статусом, отличным от 200.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API error (%d)", e.StatusCode)
	}
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Body)
}

func imageExtension(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	switch format {
	case "png", "gif", "bmp":
		return format, nil
	case "jpeg":
		return "jpg", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

func formatInches(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
