// Package printer обменивается данными с ZPL-принтерами по сырому TCP.
//
// Каждый вызов открывает свое соединение и закрывает его перед возвратом:
// принтер обслуживает одну сессию за раз.
package printer

import (
	"net"
	"strconv"
)

// DefaultPort - порт RAW-печати принтеров Zebra.
const DefaultPort uint16 = 9100

// Printer - адрес принтера.
type Printer struct {
	Host string `json:"host" yaml:"host"`
	Port uint16 `json:"port" yaml:"port"`
}

// New возвращает Printer для host, при port == 0 используется DefaultPort.
func New(host string, port uint16) Printer {
	if port == 0 {
		port = DefaultPort
	}
	return Printer{Host: host, Port: port}
}

func (p Printer) Address() string {
	return net.JoinHostPort(p.Host, strconv.Itoa(int(p.Port)))
}

func (p Printer) String() string {
	return p.Address()
}
