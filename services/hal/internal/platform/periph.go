package platform

import (
	"sync"

	"mlxio-go/services/hal/internal/halerr"
	"mlxio-go/types"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

// Resolver maps a bank pin to a periph.io pin.
type Resolver func(p types.Port, n uint8) (gpio.PinIO, bool)

// ByLabel resolves pins through the periph.io registry by package label
// ("PA4"), as registered by a host driver or a bench harness.
func ByLabel(p types.Port, n uint8) (gpio.PinIO, bool) {
	pin := gpioreg.ByName(types.PinLabel(p, n))
	return pin, pin != nil
}

// RegisterDryRun registers a gpiotest pin under the label of every bonded
// pin that has no registered pin yet, so a table can be applied through
// ByLabel without hardware. Pins a bench driver already registered are left
// alone. The returned map holds the fakes that were added, by label.
func RegisterDryRun(bonded [types.NumPorts]types.Mask) (map[string]*gpiotest.Pin, error) {
	out := map[string]*gpiotest.Pin{}
	for p := 0; p < types.NumPorts; p++ {
		port := types.Port(p)
		for _, n := range bonded[p].Pins() {
			label := types.PinLabel(port, n)
			if gpioreg.ByName(label) != nil {
				continue
			}
			pin := &gpiotest.Pin{N: label, Num: p*16 + int(n)}
			if err := gpioreg.Register(pin); err != nil {
				return out, err
			}
			out[label] = pin
		}
	}
	return out, nil
}

// Periph applies a pin table onto periph.io pins, e.g. a bench fixture that
// mirrors the board through an I/O expander. There is no clock tree, so
// EnableClock only gates access the same way the hardware would. Analog has
// no periph equivalent and maps to a floating input: on real pins this is a
// floating digital input, not the analog safe state.
type Periph struct {
	mu      sync.Mutex
	resolve Resolver
	clocks  uint32
	latch   [types.NumPorts]types.Mask // pending output levels
	outputs [types.NumPorts]types.Mask
}

func NewPeriph(r Resolver) *Periph {
	if r == nil {
		r = ByLabel
	}
	return &Periph{resolve: r}
}

func (b *Periph) check(p types.Port) error {
	if int(p) >= types.NumPorts {
		return halerr.ErrUnknownPort
	}
	if b.clocks&(1<<p) == 0 {
		return halerr.ErrClockDisabled
	}
	return nil
}

func (b *Periph) EnableClock(p types.Port) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if int(p) >= types.NumPorts {
		return halerr.ErrUnknownPort
	}
	b.clocks |= 1 << p
	return nil
}

func (b *Periph) WriteLevel(p types.Port, m types.Mask, l gpio.Level) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.check(p); err != nil {
		return err
	}
	if l {
		b.latch[p] |= m
	} else {
		b.latch[p] &^= m
	}
	// Pins already driving follow the latch immediately.
	for _, n := range (m & b.outputs[p]).Pins() {
		pin, ok := b.resolve(p, n)
		if !ok {
			return halerr.ErrUnknownPin
		}
		if err := pin.Out(l); err != nil {
			return err
		}
	}
	return nil
}

func (b *Periph) Configure(p types.Port, m types.Mask, c types.PinConfig) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.check(p); err != nil {
		return err
	}
	if c.Mode == types.ModePeripheral {
		return halerr.ErrUnsupported
	}
	for _, n := range m.Pins() {
		pin, ok := b.resolve(p, n)
		if !ok {
			return halerr.ErrUnknownPin
		}
		var err error
		switch c.Mode {
		case types.ModeOutput:
			err = pin.Out(gpio.Level(b.latch[p].Has(n)))
		case types.ModeInput:
			err = pin.In(c.Pull, gpio.NoEdge)
		case types.ModeAnalog:
			err = pin.In(gpio.Float, gpio.NoEdge)
		default:
			err = halerr.ErrInvalidMode
		}
		if err != nil {
			return err
		}
	}
	if c.Mode == types.ModeOutput {
		b.outputs[p] |= m
	} else {
		b.outputs[p] &^= m
	}
	return nil
}
