//go:build !js

package printer

import (
	"errors"
	"io"
	"net"
	"os"
	"time"
)

// Available сообщает, доступны ли в этой сборке сырые сокеты.
const Available = true

// Send отправляет payload на принтер и закрывает соединение.
func (t *TCPTransport) Send(p Printer, payload string) error {
	addr := p.Address()
	conn, err := t.connect("send", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	return t.write(conn, "send", addr, payload)
}

// Query отправляет command и читает ответ, пока принтер не закроет соединение
// или не замолчит на время idle-таймаута.
func (t *TCPTransport) Query(p Printer, command string) (string, error) {
	addr := p.Address()
	conn, err := t.connect("query", addr)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if err := t.write(conn, "query", addr, command); err != nil {
		return "", err
	}
	return t.read(conn, addr)
}

func (t *TCPTransport) connect(op, addr string) (net.Conn, error) {
	conn, err := t.dial("tcp", addr, t.connectTimeout)
	if err != nil {
		return nil, NewTransportError(ErrConnection, op, addr, err)
	}
	return conn, nil
}

func (t *TCPTransport) write(conn net.Conn, op, addr, payload string) error {
	if err := conn.SetWriteDeadline(time.Now().Add(t.writeTimeout)); err != nil {
		return NewTransportError(ErrWrite, op, addr, err)
	}
	n, err := io.WriteString(conn, payload)
	if err != nil {
		return NewTransportError(ErrWrite, op, addr, err)
	}
	if n < len(payload) {
		return NewTransportError(ErrWrite, op, addr, io.ErrShortWrite)
	}
	return nil
}

func (t *TCPTransport) read(conn net.Conn, addr string) (string, error) {
	buf := make([]byte, readBufferSize)
	var resp []byte

	deadline := time.Now().Add(t.responseTimeout)
	for len(resp) < t.maxResponse {
		if err := conn.SetReadDeadline(deadline); err != nil {
			return "", NewTransportError(ErrRead, "query", addr, err)
		}

		n, err := conn.Read(buf)
		if n > 0 {
			resp = append(resp, buf[:n]...)
			deadline = time.Now().Add(t.idleTimeout)
		}
		if err == nil {
			continue
		}

		// Ответ завершают только закрытие соединения и idle-таймаут после первых байт.
		received := len(resp) > 0
		switch {
		case received && (isTimeout(err) || errors.Is(err, io.EOF)):
			return finish(resp, t.maxResponse), nil
		case isTimeout(err):
			return "", NewTransportError(ErrTimeout, "query", addr, err)
		case errors.Is(err, io.EOF):
			return "", NewTransportError(ErrRead, "query", addr, io.ErrUnexpectedEOF)
		default:
			return "", NewTransportError(ErrRead, "query", addr, err)
		}
	}

	return finish(resp, t.maxResponse), nil
}

func finish(resp []byte, limit int) string {
	if len(resp) > limit {
		resp = resp[:limit]
	}
	return string(resp)
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
