package pinmux

import (
	"errors"

	"mlxio-go/errcode"
	"mlxio-go/services/hal/internal/halerr"
	"mlxio-go/services/hal/internal/platform/boards"
	"mlxio-go/types"

	"periph.io/x/conn/v3/gpio"
)

// Validate checks the board table against the package and against itself.
// All problems are reported together; errors.Is works on each of them.
func Validate(b *boards.Board) error {
	var errs []error
	fail := func(d types.PinDesc, cause error) {
		errs = append(errs, errcode.Wrap("validate", d.Name+" ("+d.Label()+")", cause))
	}

	names := make(map[string]bool, len(b.Pins))
	claimed := make(map[int]string, len(b.Pins))

	for _, d := range b.Pins {
		switch {
		case d.Name == "":
			fail(d, halerr.ErrInvalidParams)
			continue
		case names[d.Name]:
			fail(d, halerr.ErrDuplicateName)
		}
		names[d.Name] = true

		if !b.HasPort(d.Port) {
			fail(d, halerr.ErrUnknownPort)
			continue
		}
		if !b.IsBonded(d.Port, d.Num) {
			fail(d, halerr.ErrUnknownPin)
			continue
		}
		if other, ok := claimed[d.ID()]; ok {
			errs = append(errs, errcode.Wrap("validate", d.Name+" and "+other+" both claim "+d.Label(), halerr.ErrPinConflict))
			continue
		}
		claimed[d.ID()] = d.Name

		if err := checkConfig(d); err != nil {
			fail(d, err)
		}
	}
	return errors.Join(errs...)
}

func checkConfig(d types.PinDesc) error {
	switch d.Mode {
	case types.ModePeripheral:
		if d.Owner == "" {
			return halerr.ErrMissingOwner
		}
		return nil
	case types.ModeAnalog:
		if d.Pull != gpio.Float {
			return halerr.ErrInvalidPull
		}
	case types.ModeInput, types.ModeOutput:
		switch d.Pull {
		case gpio.Float, gpio.PullUp, gpio.PullDown:
		default:
			return halerr.ErrInvalidPull
		}
	default:
		return halerr.ErrInvalidMode
	}
	if d.Speed > types.SpeedVeryHigh {
		return halerr.ErrInvalidMode
	}
	return nil
}
