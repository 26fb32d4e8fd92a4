package spi

import (
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	pspi "periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// Port is a Driver backed by a periph.io SPI port in mode 0 (clock idle
// low, sample on the leading edge).
type Port struct {
	name  string
	port  pspi.PortCloser
	conn  pspi.Conn
	freq  physic.Frequency
	maxTx int
}

// Open initializes the host drivers and opens the port picked by sel.
func Open(sel Selector, opts ...Option) (*Port, error) {
	o := buildOptions(opts)
	name := sel.String()
	if _, err := host.Init(); err != nil {
		return nil, &InitError{Port: name, Err: err}
	}
	p, err := spireg.Open(name)
	if err != nil {
		return nil, &InitError{Port: name, Err: err}
	}
	port, err := connect(p, name, o)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	return port, nil
}

// NewPort connects an already opened periph port. It owns p afterwards.
func NewPort(p pspi.PortCloser, opts ...Option) (*Port, error) {
	return connect(p, p.String(), buildOptions(opts))
}

func connect(p pspi.PortCloser, name string, o options) (*Port, error) {
	c, err := p.Connect(o.freq, pspi.Mode0, BitsPerWord)
	if err != nil {
		return nil, &InitError{Port: name, Err: err}
	}
	v := &Port{
		name: name,
		port: p,
		conn: c,
		freq: o.freq,
	}
	if l, ok := c.(conn.Limits); ok {
		v.maxTx = l.MaxTxSize()
	}
	o.log.Info().
		Str("port", name).
		Stringer("freq", o.freq).
		Int("max_tx", v.maxTx).
		Msg("spi port connected")
	return v, nil
}

// Write sends frame as a single half-duplex transfer.
func (p *Port) Write(frame []byte) error {
	if err := p.conn.Tx(frame, nil); err != nil {
		return &WriteError{Len: len(frame), Err: err}
	}
	return nil
}

// MaxTxSize is the largest single transfer the port accepts, 0 if unknown.
func (p *Port) MaxTxSize() int {
	return p.maxTx
}

func (p *Port) Frequency() physic.Frequency {
	return p.freq
}

func (p *Port) String() string {
	return p.name
}

func (p *Port) Close() error {
	return p.port.Close()
}
