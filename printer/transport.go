package printer

import (
	"net"
	"time"
)

const (
	DefaultConnectTimeout  = 5 * time.Second
	DefaultWriteTimeout    = 5 * time.Second
	DefaultResponseTimeout = 5 * time.Second
	DefaultIdleTimeout     = 500 * time.Millisecond
	DefaultMaxResponse     = 64 << 10

	readBufferSize = 4096
)

// Transport доставляет ZPL на принтер и читает его ответы.
type Transport interface {
	// Send отправляет payload и закрывает соединение, не читая ответ.
	Send(p Printer, payload string) error
	// Query отправляет command и возвращает всё, что прислал принтер.
	Query(p Printer, command string) (string, error)
}

// DialFunc открывает соединение, ей соответствует net.DialTimeout.
type DialFunc func(network, address string, timeout time.Duration) (net.Conn, error)

type Option func(*TCPTransport)

// WithConnectTimeout ограничивает время установки соединения.
func WithConnectTimeout(d time.Duration) Option {
	return func(t *TCPTransport) { t.connectTimeout = d }
}

// WithWriteTimeout ограничивает время записи.
func WithWriteTimeout(d time.Duration) Option {
	return func(t *TCPTransport) { t.writeTimeout = d }
}

// WithResponseTimeout ограничивает ожидание первого байта ответа.
func WithResponseTimeout(d time.Duration) Option {
	return func(t *TCPTransport) { t.responseTimeout = d }
}

// WithIdleTimeout задает паузу после последнего байта, по истечении которой
// ответ считается полным. Медленным принтерам может понадобиться больше.
func WithIdleTimeout(d time.Duration) Option {
	return func(t *TCPTransport) { t.idleTimeout = d }
}

// WithMaxResponse ограничивает размер сохраняемого ответа.
func WithMaxResponse(n int) Option {
	return func(t *TCPTransport) { t.maxResponse = n }
}

func WithDialer(dial DialFunc) Option {
	return func(t *TCPTransport) { t.dial = dial }
}

// TCPTransport - Transport поверх сырого TCP. Состояния соединения не хранит,
// безопасен для конкурентного использования.
type TCPTransport struct {
	connectTimeout  time.Duration
	writeTimeout    time.Duration
	responseTimeout time.Duration
	idleTimeout     time.Duration
	maxResponse     int
	dial            DialFunc
}

// NewTCPTransport создает TCPTransport с таймаутами по умолчанию,
// переопределенными opts. Неположительные значения заменяются умолчаниями.
func NewTCPTransport(opts ...Option) *TCPTransport {
	t := &TCPTransport{}
	for _, opt := range opts {
		opt(t)
	}
	if t.connectTimeout <= 0 {
		t.connectTimeout = DefaultConnectTimeout
	}
	if t.writeTimeout <= 0 {
		t.writeTimeout = DefaultWriteTimeout
	}
	if t.responseTimeout <= 0 {
		t.responseTimeout = DefaultResponseTimeout
	}
	if t.idleTimeout <= 0 {
		t.idleTimeout = DefaultIdleTimeout
	}
	if t.maxResponse <= 0 {
		t.maxResponse = DefaultMaxResponse
	}
	if t.dial == nil {
		t.dial = net.DialTimeout
	}
	return t
}

// DefaultTransport возвращает TCPTransport с настройками по умолчанию.
// В ограниченных окружениях сначала проверьте Available.
func DefaultTransport() Transport {
	return NewTCPTransport()
}
