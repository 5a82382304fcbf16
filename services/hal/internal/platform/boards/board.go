package boards

import (
	"fmt"
	"sort"
	"sync"

	"mlxio-go/types"

	"periph.io/x/conn/v3/gpio"
)

// Board describes what the PCB/SoC exposes (bonded pins per bank) and the
// boot-time pin table derived from its schematic. A Board is immutable once
// registered; the applier reads it exactly once.
type Board struct {
	Name string
	MCU  string

	// Bonded holds, per port, the pins present on the package.
	Bonded [types.NumPorts]types.Mask

	// Pins lists every claimed pin. Bonded pins left out are filled as
	// analog/no-pull by the planner.
	Pins []types.PinDesc
}

func (b *Board) HasPort(p types.Port) bool {
	return int(p) < types.NumPorts && b.Bonded[p] != 0
}

func (b *Board) IsBonded(p types.Port, n uint8) bool {
	return b.HasPort(p) && n < 16 && b.Bonded[p].Has(n)
}

// ---- Registry ----

var (
	mu       sync.RWMutex
	registry = map[string]*Board{}
)

// Register makes a board selectable by name. Boards register from init.
func Register(b *Board) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[b.Name]; exists {
		panic(fmt.Sprintf("board already registered: %q", b.Name))
	}
	registry[b.Name] = b
}

func ByName(name string) (*Board, bool) {
	mu.RLock()
	defer mu.RUnlock()
	b, ok := registry[name]
	return b, ok
}

// Names returns registered board names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// ---- Table helpers ----

func pins(ns ...uint8) types.Mask {
	var m types.Mask
	for _, n := range ns {
		m |= types.Bit(n)
	}
	return m
}

const allPins types.Mask = 0xFFFF

func analog(name string, p types.Port, n uint8) types.PinDesc {
	return types.PinDesc{Name: name, Port: p, Num: n, Mode: types.ModeAnalog, Pull: gpio.Float}
}

func input(name string, p types.Port, n uint8, pull gpio.Pull) types.PinDesc {
	return types.PinDesc{Name: name, Port: p, Num: n, Mode: types.ModeInput, Pull: pull}
}

// output is a low-speed push-pull output without pull resistor.
func output(name string, p types.Port, n uint8, initial gpio.Level) types.PinDesc {
	return types.PinDesc{
		Name: name, Port: p, Num: n,
		Mode: types.ModeOutput, Pull: gpio.Float, Speed: types.SpeedLow,
		Initial: initial,
	}
}

func periph(name string, p types.Port, n uint8, owner string) types.PinDesc {
	return types.PinDesc{Name: name, Port: p, Num: n, Mode: types.ModePeripheral, Pull: gpio.PullNoChange, Owner: owner}
}
