package pinmux

import (
	"testing"

	"mlxio-go/services/hal/internal/platform/boards"
	"mlxio-go/types"

	"periph.io/x/conn/v3/gpio"
)

func TestDiff_SameBoard(t *testing.T) {
	ms, err := Diff(boards.MelexisIO, boards.MelexisIO)
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 0 {
		t.Fatalf("unexpected mismatches %+v", ms)
	}
}

func TestDiff_Fields(t *testing.T) {
	base := func() *boards.Board {
		return &boards.Board{
			Name:   "a",
			Bonded: [types.NumPorts]types.Mask{types.PortA: 0x00FF},
			Pins: []types.PinDesc{
				{Name: "CS", Port: types.PortA, Num: 0, Mode: types.ModeOutput, Pull: gpio.Float, Initial: gpio.High},
				{Name: "BTN", Port: types.PortA, Num: 1, Mode: types.ModeInput, Pull: gpio.PullUp},
				{Name: "MOSI", Port: types.PortA, Num: 7, Mode: types.ModePeripheral, Owner: "spi1"},
			},
		}
	}
	want := base()
	got := base()
	got.Pins = []types.PinDesc{
		{Name: "CS", Port: types.PortA, Num: 0, Mode: types.ModeOutput, Pull: gpio.Float, Initial: gpio.Low},
		{Name: "BUTTON", Port: types.PortA, Num: 1, Mode: types.ModeInput, Pull: gpio.PullDown},
	}
	ms, err := Diff(want, got)
	if err != nil {
		t.Fatal(err)
	}
	// PA7 goes missing on the got side but it is a peripheral pin: the
	// filled analog entry is a mode mismatch, not a silent skip.
	wantFields := map[string]string{
		"PA0/initial": "high>low",
		"PA1/name":    "BTN>BUTTON",
		"PA1/pull":    "up>down",
		"PA7/name":    "MOSI>PA7",
		"PA7/mode":    "peripheral>analog",
	}
	if len(ms) != len(wantFields) {
		t.Fatalf("got %+v", ms)
	}
	for _, m := range ms {
		k := m.Label + "/" + m.Field
		if wantFields[k] != m.Want+">"+m.Got {
			t.Fatalf("%s: %s>%s", k, m.Want, m.Got)
		}
	}
}

func TestDiff_PeripheralOutsideOtherBondedSet(t *testing.T) {
	want := &boards.Board{
		Name:   "a",
		Bonded: [types.NumPorts]types.Mask{types.PortA: 0x0001, types.PortH: 0x0003},
		Pins: []types.PinDesc{
			{Name: "OSC_IN", Port: types.PortH, Num: 0, Mode: types.ModePeripheral, Owner: "rcc"},
			{Name: "OSC_OUT", Port: types.PortH, Num: 1, Mode: types.ModePeripheral, Owner: "rcc"},
		},
	}
	got := &boards.Board{Name: "b", Bonded: [types.NumPorts]types.Mask{types.PortA: 0x0001}}
	ms, err := Diff(want, got)
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 0 {
		t.Fatalf("got %+v", ms)
	}
}

func TestDiff_RejectsInvalidBoard(t *testing.T) {
	bad := &boards.Board{Name: "bad", Pins: []types.PinDesc{{Name: "X"}}}
	if _, err := Diff(boards.MelexisIO, bad); err == nil {
		t.Fatal("Diff accepted an invalid board")
	}
}
