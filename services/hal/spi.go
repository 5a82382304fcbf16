package hal

import (
	"mlxio-go/types"

	"tinygo.org/x/drivers"
)

// SPIDevice frames transfers on a shared bus with a chip select from the
// pin table. The select is asserted at the opposite of its boot level, so a
// line declared idle-high is active low and vice versa.
//
// Tx is one complete transaction: it asserts, transfers and releases.
// Transfer moves a single byte and leaves the select alone, so a
// transaction built from several bytes is bracketed by Select and Release:
//
//	dev.Select()
//	dev.Transfer(cmd)
//	v, _ := dev.Transfer(0)
//	dev.Release()
type SPIDevice struct {
	bus drivers.SPI
	cs  *Line
}

var _ drivers.SPI = (*SPIDevice)(nil)

func NewSPIDevice(bus drivers.SPI, cs *Line) *SPIDevice {
	return &SPIDevice{bus: bus, cs: cs}
}

// SPIDevice looks up csName, requiring it to be an output, and binds it to bus.
func (p *Pins) SPIDevice(bus drivers.SPI, csName string) (*SPIDevice, error) {
	cs, err := p.Output(csName)
	if err != nil {
		return nil, err
	}
	return NewSPIDevice(bus, cs), nil
}

// Select asserts the chip select.
func (d *SPIDevice) Select() error { return d.cs.Set(!d.cs.Idle()) }

// Release returns the chip select to its idle level.
func (d *SPIDevice) Release() error { return d.cs.Set(d.cs.Idle()) }

func (d *SPIDevice) Tx(w, r []byte) error {
	if err := d.Select(); err != nil {
		return err
	}
	err := d.bus.Tx(w, r)
	if rerr := d.Release(); err == nil {
		err = rerr
	}
	return err
}

// Transfer moves one byte without touching the chip select.
func (d *SPIDevice) Transfer(b byte) (byte, error) {
	return d.bus.Transfer(b)
}

// ChipSelect returns the descriptor of the select line.
func (d *SPIDevice) ChipSelect() types.PinDesc { return d.cs.desc }
