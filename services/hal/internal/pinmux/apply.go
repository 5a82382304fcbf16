package pinmux

import (
	"mlxio-go/errcode"
	"mlxio-go/services/hal/internal/platform"
)

// Apply runs the plan against a backend in the only safe order: every bank
// clock first, then output latches, then mode changes. The first backend
// fault aborts; nothing is rolled back.
func Apply(be platform.Backend, p Plan) error {
	for _, port := range p.Clocks {
		if err := be.EnableClock(port); err != nil {
			return errcode.Wrap("enable_clock", "GPIO"+port.String(), err)
		}
	}
	for _, ps := range p.Presets {
		if err := be.WriteLevel(ps.Port, ps.Mask, ps.Level); err != nil {
			return errcode.Wrap("write_level", "GPIO"+ps.Port.String()+" "+hex16(ps.Mask), err)
		}
	}
	for _, g := range p.Groups {
		if err := be.Configure(g.Port, g.Mask, g.Config); err != nil {
			return errcode.Wrap("configure", "GPIO"+g.Port.String()+" "+hex16(g.Mask), err)
		}
	}
	return nil
}
