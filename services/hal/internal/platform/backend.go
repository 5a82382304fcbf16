package platform

import (
	"mlxio-go/types"

	"periph.io/x/conn/v3/gpio"
)

// Backend is the register-access layer the pin applier drives. Each call
// maps onto one vendor primitive: gate a bank clock, latch an output level,
// or program mode/pull/speed for every pin in a mask.
//
// Implementations report a fault (unknown port, unclocked bank) as an error;
// callers treat any error as fatal.
type Backend interface {
	EnableClock(p types.Port) error
	WriteLevel(p types.Port, m types.Mask, l gpio.Level) error
	Configure(p types.Port, m types.Mask, c types.PinConfig) error
}
