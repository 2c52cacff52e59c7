package printer

import (
	"errors"
	"fmt"
)

var (
	ErrConnection  = errors.New("connection failed")
	ErrWrite       = errors.New("write failed")
	ErrRead        = errors.New("read failed")
	ErrTimeout     = errors.New("timed out waiting for response")
	ErrUnsupported = errors.New("raw sockets are not available on this platform")
)

// TransportError возвращается всеми операциями Transport. Kind - одна из
// ошибок выше, Err - исходная причина, если она есть.
type TransportError struct {
	Kind error
	Op   string
	Addr string
	Err  error
}

func (e *TransportError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("printer %s %s: %v: %v", e.Op, e.Addr, e.Kind, e.Err)
	}
	return fmt.Sprintf("printer %s %s: %v", e.Op, e.Addr, e.Kind)
}

func (e *TransportError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewTransportError создает новый экземпляр TransportError.
func NewTransportError(kind error, op, addr string, err error) *TransportError {
	return &TransportError{
		Kind: kind,
		Op:   op,
		Addr: addr,
		Err:  err,
	}
}
