package pinmux

import (
	"errors"

	"mlxio-go/errcode"
	"mlxio-go/services/hal/internal/halerr"
	"mlxio-go/services/hal/internal/platform"
	"mlxio-go/types"
)

// Verify checks a simulator after Apply against the plan:
//   - every non-peripheral pin has its declared mode and pull, outputs also
//     their speed and latched level;
//   - no bank was touched before its clock was enabled;
//   - every output first drove its declared initial level.
func Verify(s *platform.Sim, p Plan) error {
	var errs []error
	bad := func(d types.PinDesc, what string, cause error) {
		errs = append(errs, errcode.Wrap("verify", d.Name+" ("+d.Label()+"): "+what, cause))
	}

	for _, d := range p.Pins {
		if d.Mode == types.ModePeripheral {
			continue
		}
		if got := s.Mode(d.Port, d.Num); got != d.Mode {
			bad(d, "mode "+got.String(), halerr.ErrInvalidMode)
		}
		if got := s.Pull(d.Port, d.Num); got != d.Pull {
			bad(d, "pull "+types.PullString(got), halerr.ErrInvalidPull)
		}
		if d.Mode != types.ModeOutput {
			continue
		}
		if got := s.Speed(d.Port, d.Num); got != d.Speed {
			bad(d, "speed "+got.String(), halerr.ErrInvalidMode)
		}
		if got := s.Level(d.Port, d.Num); got != d.Initial {
			bad(d, "level "+types.LevelString(got), halerr.ErrInvalidParams)
		}
		drv, ok := s.FirstDrive(d.Port, d.Num)
		switch {
		case !ok:
			bad(d, "never driven", halerr.ErrInvalidMode)
		case drv.Level != d.Initial:
			bad(d, "first drove "+types.LevelString(drv.Level), halerr.ErrInvalidParams)
		}
	}

	var clocked uint32
	for _, op := range s.Ops() {
		if op.Kind == platform.OpClock {
			clocked |= 1 << op.Port
			continue
		}
		if clocked&(1<<op.Port) == 0 {
			errs = append(errs, errcode.Wrap("verify", op.Kind.String()+" on GPIO"+op.Port.String()+" before clock", halerr.ErrClockDisabled))
		}
	}
	return errors.Join(errs...)
}
