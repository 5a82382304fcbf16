package types

import (
	"testing"

	"periph.io/x/conn/v3/gpio"
)

func TestParsePort(t *testing.T) {
	cases := map[string]Port{"A": PortA, "GPIOE": PortE, "PH": PortH, "K": PortK}
	for in, want := range cases {
		got, ok := ParsePort(in)
		if !ok || got != want {
			t.Fatalf("ParsePort(%q)=%v,%v want %v", in, got, ok, want)
		}
	}
	for _, bad := range []string{"", "L", "GPIO", "GPIOZ", "a", "PA0"} {
		if _, ok := ParsePort(bad); ok {
			t.Fatalf("ParsePort(%q) accepted", bad)
		}
	}
}

func TestMaskPins(t *testing.T) {
	m := Bit(0) | Bit(7) | Bit(15)
	got := m.Pins()
	if len(got) != 3 || got[0] != 0 || got[1] != 7 || got[2] != 15 {
		t.Fatalf("Pins()=%v", got)
	}
	if !m.Has(7) || m.Has(8) {
		t.Fatal("Has mismatch")
	}
}

func TestPinConfigKey_IgnoresSpeedOffOutputs(t *testing.T) {
	a := PinConfig{Mode: ModeAnalog, Pull: gpio.Float, Speed: SpeedHigh}
	b := PinConfig{Mode: ModeAnalog, Pull: gpio.Float}
	if a.Key() != b.Key() {
		t.Fatal("analog configs with different speeds should share a key")
	}
	o1 := PinConfig{Mode: ModeOutput, Pull: gpio.Float, Speed: SpeedHigh}
	o2 := PinConfig{Mode: ModeOutput, Pull: gpio.Float}
	if o1.Key() == o2.Key() {
		t.Fatal("output speed must stay part of the key")
	}
}

func TestDescLabelAndID(t *testing.T) {
	d := PinDesc{Name: "CS0", Port: PortA, Num: 4}
	if d.Label() != "PA4" || d.ID() != 4 {
		t.Fatalf("label=%s id=%d", d.Label(), d.ID())
	}
	d = PinDesc{Name: "PS_EN", Port: PortE, Num: 4}
	if d.Label() != "PE4" || d.ID() != 68 {
		t.Fatalf("label=%s id=%d", d.Label(), d.ID())
	}
}

func TestStrings(t *testing.T) {
	if ModeOutput.String() != "output_pp" || ModeUnset.String() != "unset" {
		t.Fatal("Mode.String mapping incorrect")
	}
	if PullString(gpio.Float) != "none" || PullString(gpio.PullNoChange) != "no_change" {
		t.Fatal("PullString mapping incorrect")
	}
	if LevelString(gpio.High) != "high" || SpeedVeryHigh.String() != "very_high" {
		t.Fatal("level/speed strings incorrect")
	}
}
