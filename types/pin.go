package types

import (
	"mlxio-go/x/strconvx"

	"periph.io/x/conn/v3/gpio"
)

// ---- Ports ----

// Port identifies one GPIO bank (16 pins, one clock gate, one register block).
type Port uint8

const (
	PortA Port = iota
	PortB
	PortC
	PortD
	PortE
	PortF
	PortG
	PortH
	PortI
	PortJ
	PortK

	NumPorts = int(PortK) + 1
)

func (p Port) String() string {
	if int(p) >= NumPorts {
		return "?"
	}
	return string(rune('A' + p))
}

// ParsePort accepts "A", "GPIOA" or "PA" style names.
func ParsePort(s string) (Port, bool) {
	switch {
	case len(s) == 5 && s[:4] == "GPIO":
		s = s[4:]
	case len(s) == 2 && s[0] == 'P':
		s = s[1:]
	}
	if len(s) != 1 || s[0] < 'A' || int(s[0]-'A') >= NumPorts {
		return 0, false
	}
	return Port(s[0] - 'A'), true
}

// Mask selects pins within one port, bit n = pin n.
type Mask uint16

func Bit(n uint8) Mask { return Mask(1) << (n & 15) }

func (m Mask) Has(n uint8) bool { return m&Bit(n) != 0 }

// Pins lists the set bits in ascending order.
func (m Mask) Pins() []uint8 {
	var out []uint8
	for n := uint8(0); n < 16; n++ {
		if m.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

// ---- Pin configuration ----

type Mode uint8

const (
	ModeUnset Mode = iota
	ModeAnalog
	ModeInput
	ModeOutput     // push-pull
	ModePeripheral // alternate function, owned by a peripheral driver
)

func (m Mode) String() string {
	switch m {
	case ModeAnalog:
		return "analog"
	case ModeInput:
		return "input"
	case ModeOutput:
		return "output_pp"
	case ModePeripheral:
		return "peripheral"
	default:
		return "unset"
	}
}

type Speed uint8

const (
	SpeedLow Speed = iota
	SpeedMedium
	SpeedHigh
	SpeedVeryHigh
)

func (s Speed) String() string {
	switch s {
	case SpeedLow:
		return "low"
	case SpeedMedium:
		return "medium"
	case SpeedHigh:
		return "high"
	case SpeedVeryHigh:
		return "very_high"
	default:
		return "speed(" + strconvx.Itoa(int(s)) + ")"
	}
}

// PinConfig is what one Configure call applies to every pin in a mask.
type PinConfig struct {
	Mode  Mode
	Pull  gpio.Pull
	Speed Speed // outputs only
}

// Key normalises fields that the mode ignores so equal configs group together.
func (c PinConfig) Key() PinConfig {
	if c.Mode != ModeOutput {
		c.Speed = SpeedLow
	}
	return c
}

// ---- Descriptor ----

// PinDesc binds a symbolic name to one physical pin and its boot state.
type PinDesc struct {
	Name  string
	Port  Port
	Num   uint8
	Mode  Mode
	Pull  gpio.Pull
	Speed Speed

	// Initial is driven before the pin becomes an output.
	Initial gpio.Level

	// Owner names the peripheral that claims a ModePeripheral pin (e.g. "spi1").
	Owner string
}

func (d PinDesc) Config() PinConfig {
	return PinConfig{Mode: d.Mode, Pull: d.Pull, Speed: d.Speed}
}

// ID matches TinyGo machine.Pin numbering on STM32 (PA0 = 0, PB0 = 16, ...).
func (d PinDesc) ID() int { return int(d.Port)*16 + int(d.Num) }

// Label renders the package pin name, e.g. "PA4".
func (d PinDesc) Label() string { return PinLabel(d.Port, d.Num) }

func PinLabel(p Port, n uint8) string {
	return "P" + p.String() + strconvx.Itoa(int(n))
}

// PullString renders a pull setting the way tables and tools print it.
func PullString(p gpio.Pull) string {
	switch p {
	case gpio.Float:
		return "none"
	case gpio.PullUp:
		return "up"
	case gpio.PullDown:
		return "down"
	default:
		return "no_change"
	}
}

func LevelString(l gpio.Level) string {
	if l {
		return "high"
	}
	return "low"
}
