//go:build js

package printer

// Available сообщает, доступны ли в этой сборке сырые сокеты.
const Available = false

func (t *TCPTransport) Send(p Printer, payload string) error {
	return NewTransportError(ErrUnsupported, "send", p.Address(), nil)
}

func (t *TCPTransport) Query(p Printer, command string) (string, error) {
	return "", NewTransportError(ErrUnsupported, "query", p.Address(), nil)
}
