package platform

import (
	"mlxio-go/services/hal/internal/halerr"
	"mlxio-go/types"

	"periph.io/x/conn/v3/gpio"
)

// STM32F4 GPIO register field encodings (RM0090 §8.4). Shared by the
// hardware backend and the simulator so both program identical values.

const (
	moderInput  = 0b00
	moderOutput = 0b01
	moderAF     = 0b10
	moderAnalog = 0b11

	pupdNone = 0b00
	pupdUp   = 0b01
	pupdDown = 0b10
)

func moderBits(m types.Mode) (uint32, error) {
	switch m {
	case types.ModeInput:
		return moderInput, nil
	case types.ModeOutput:
		return moderOutput, nil
	case types.ModeAnalog:
		return moderAnalog, nil
	case types.ModePeripheral:
		// Alternate function selection belongs to the owning driver.
		return 0, halerr.ErrUnsupported
	default:
		return 0, halerr.ErrInvalidMode
	}
}

func modeFromBits(v uint32) types.Mode {
	switch v & 0b11 {
	case moderInput:
		return types.ModeInput
	case moderOutput:
		return types.ModeOutput
	case moderAF:
		return types.ModePeripheral
	default:
		return types.ModeAnalog
	}
}

func pupdBits(p gpio.Pull) (uint32, error) {
	switch p {
	case gpio.Float:
		return pupdNone, nil
	case gpio.PullUp:
		return pupdUp, nil
	case gpio.PullDown:
		return pupdDown, nil
	default:
		return 0, halerr.ErrInvalidPull
	}
}

func pullFromBits(v uint32) gpio.Pull {
	switch v & 0b11 {
	case pupdUp:
		return gpio.PullUp
	case pupdDown:
		return gpio.PullDown
	default:
		return gpio.Float
	}
}

// field2 returns the 2-bit field mask covering every pin in m.
func field2(m types.Mask) uint32 {
	var out uint32
	for n := uint(0); n < 16; n++ {
		if m&(1<<n) != 0 {
			out |= 0b11 << (2 * n)
		}
	}
	return out
}

// replicate2 writes v into the 2-bit field of every pin in m.
func replicate2(m types.Mask, v uint32) uint32 {
	var out uint32
	for n := uint(0); n < 16; n++ {
		if m&(1<<n) != 0 {
			out |= (v & 0b11) << (2 * n)
		}
	}
	return out
}

func put2(cur uint32, m types.Mask, v uint32) uint32 {
	return cur&^field2(m) | replicate2(m, v)
}

// bankWrite is the ordered list of register updates for one Configure call,
// computed before touching hardware so an invalid config writes nothing.
type bankWrite struct {
	output bool
	speed  uint32
	pupd   uint32
	moder  uint32
}

func encode(c types.PinConfig) (bankWrite, error) {
	mb, err := moderBits(c.Mode)
	if err != nil {
		return bankWrite{}, err
	}
	pb, err := pupdBits(c.Pull)
	if err != nil {
		return bankWrite{}, err
	}
	return bankWrite{
		output: c.Mode == types.ModeOutput,
		speed:  uint32(c.Speed) & 0b11,
		pupd:   pb,
		moder:  mb,
	}, nil
}
