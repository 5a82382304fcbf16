// services/hal/hal.go
package hal

import (
	"mlxio-go/errcode"
	"mlxio-go/services/hal/internal/halerr"
	"mlxio-go/services/hal/internal/pinmux"
	"mlxio-go/services/hal/internal/platform"
	"mlxio-go/services/hal/internal/platform/boards"
)

// -----------------------------------------------------------------------------
// Entry point
// -----------------------------------------------------------------------------

// InitializePins applies the compiled-in board table. Call it once from the
// startup sequence, after the clock tree is up and before any driver that
// uses these pins. A backend fault leaves pins in an unknown electrical
// state, so it halts startup.
func InitializePins() {
	b := platform.SelectedBoard()
	pins, err := Init(platform.DefaultBackend(), b)
	if err != nil {
		println("hal: pin init failed:", err.Error())
		panic(err)
	}
	setBoot(pins)
	println("hal: pins ready board=", b.Name, "pins=", len(pins.byName))
}

// Init validates and applies a board table on the given backend and returns
// the named pins for driver handoff. Calling it again re-applies the same
// configuration and leaves the final pin state unchanged.
func Init(be platform.Backend, b *boards.Board) (*Pins, error) {
	plan, err := pinmux.BuildPlan(b)
	if err != nil {
		return nil, err
	}
	if err := pinmux.Apply(be, plan); err != nil {
		return nil, err
	}
	return newPins(be, plan), nil
}

// -----------------------------------------------------------------------------
// Boot pins
// -----------------------------------------------------------------------------

var boot *Pins

func setBoot(p *Pins) { boot = p }

// BootPins returns the pins applied by InitializePins, if it has run.
func BootPins() (*Pins, bool) { return boot, boot != nil }

// MustPins returns the boot pins or panics if InitializePins has not run.
func MustPins() *Pins {
	if boot == nil {
		panic(errcode.Wrap("pins", "InitializePins has not run", halerr.ErrNotReady))
	}
	return boot
}
