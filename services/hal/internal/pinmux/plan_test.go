package pinmux

import (
	"strings"
	"testing"

	"mlxio-go/services/hal/internal/platform/boards"
	"mlxio-go/types"

	"periph.io/x/conn/v3/gpio"
)

func TestBuildPlan_MelexisIO_Clocks(t *testing.T) {
	p, err := BuildPlan(boards.MelexisIO)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	want := []types.Port{types.PortC, types.PortD, types.PortB, types.PortE, types.PortA, types.PortH}
	if len(p.Clocks) != len(want) {
		t.Fatalf("clocks=%v want %v", p.Clocks, want)
	}
	for i := range want {
		if p.Clocks[i] != want[i] {
			t.Fatalf("clocks=%v want %v", p.Clocks, want)
		}
	}
}

func TestBuildPlan_MelexisIO_Presets(t *testing.T) {
	p, err := BuildPlan(boards.MelexisIO)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	want := []Preset{
		{Port: types.PortE, Mask: 0x0090, Level: gpio.Low},
		{Port: types.PortB, Mask: 0x0003, Level: gpio.High},
		{Port: types.PortE, Mask: 0x0700, Level: gpio.High},
		{Port: types.PortA, Mask: 0x0010, Level: gpio.High},
		{Port: types.PortB, Mask: 0x4000, Level: gpio.Low},
	}
	if len(p.Presets) != len(want) {
		t.Fatalf("got %d presets, want %d: %+v", len(p.Presets), len(want), p.Presets)
	}
	for i, w := range want {
		g := p.Presets[i]
		if g.Port != w.Port || g.Mask != w.Mask || g.Level != w.Level {
			t.Fatalf("preset %d = GPIO%s %#04x %v, want GPIO%s %#04x %v",
				i, g.Port, g.Mask, g.Level, w.Port, w.Mask, w.Level)
		}
	}
	if strings.Join(p.Presets[0].Names, ",") != "PS_EN,PS_SEL" {
		t.Fatalf("preset names %v", p.Presets[0].Names)
	}
}

func TestBuildPlan_MelexisIO_Groups(t *testing.T) {
	p, err := BuildPlan(boards.MelexisIO)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	type g struct {
		port types.Port
		mask types.Mask
		mode types.Mode
	}
	want := []g{
		{types.PortD, 0x38D7, types.ModeAnalog},
		{types.PortE, 0x0790, types.ModeOutput},
		{types.PortC, 0x2000, types.ModeInput},
		{types.PortB, 0x4003, types.ModeOutput},
		{types.PortA, 0x0010, types.ModeOutput},
		{types.PortA, 0x8580, types.ModeAnalog},
		{types.PortB, 0xB3D4, types.ModeAnalog},
		{types.PortC, 0xC311, types.ModeAnalog},
		{types.PortE, 0x000C, types.ModeAnalog},
	}
	if len(p.Groups) != len(want) {
		t.Fatalf("got %d groups, want %d", len(p.Groups), len(want))
	}
	for i, w := range want {
		got := p.Groups[i]
		if got.Port != w.port || got.Mask != w.mask || got.Config.Mode != w.mode {
			t.Fatalf("group %d = GPIO%s %#04x %s, want GPIO%s %#04x %s",
				i, got.Port, got.Mask, got.Config.Mode, w.port, w.mask, w.mode)
		}
		if got.Config.Pull != gpio.Float {
			t.Fatalf("group %d pull %v", i, got.Config.Pull)
		}
	}
}

func TestBuildPlan_SkipsPeripheralPins(t *testing.T) {
	p, err := BuildPlan(boards.MelexisIO)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	for _, g := range p.Groups {
		for _, n := range g.Names {
			if n == "SPI_MOSI" || n == "SYS_SWDIO" || n == "RCC_OSC_IN" {
				t.Fatalf("peripheral pin %s configured by group GPIO%s", n, g.Port)
			}
		}
	}
}

func TestBuildPlan_OutputSpeedSplitsGroups(t *testing.T) {
	b := &boards.Board{
		Name:   "speed",
		Bonded: [types.NumPorts]types.Mask{types.PortA: 0x000F},
		Pins: []types.PinDesc{
			{Name: "SLOW", Port: types.PortA, Num: 0, Mode: types.ModeOutput, Pull: gpio.Float},
			{Name: "FAST", Port: types.PortA, Num: 1, Mode: types.ModeOutput, Pull: gpio.Float, Speed: types.SpeedVeryHigh},
			{Name: "IN_A", Port: types.PortA, Num: 2, Mode: types.ModeInput, Pull: gpio.PullUp, Speed: types.SpeedHigh},
			{Name: "IN_B", Port: types.PortA, Num: 3, Mode: types.ModeInput, Pull: gpio.PullUp},
		},
	}
	p, err := BuildPlan(b)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if len(p.Groups) != 3 {
		t.Fatalf("groups=%+v", p.Groups)
	}
	if p.Groups[2].Mask != 0x000C {
		t.Fatalf("inputs with different speeds should share a group, got %#04x", p.Groups[2].Mask)
	}
	// Both outputs share port and level, so one preset covers them.
	if len(p.Presets) != 1 || p.Presets[0].Mask != 0x0003 {
		t.Fatalf("presets=%+v", p.Presets)
	}
}

func TestFillUnclaimed_DoesNotMutateBoard(t *testing.T) {
	before := len(boards.MelexisIO.Pins)
	all := FillUnclaimed(boards.MelexisIO)
	if len(boards.MelexisIO.Pins) != before {
		t.Fatal("board table was modified")
	}
	// 36 claimed + 4 (A) + 9 (B) + 6 (C) + 4 (D) + 2 (E)
	if len(all) != before+25 {
		t.Fatalf("filled table has %d pins, want %d", len(all), before+25)
	}
	seen := map[string]bool{}
	for _, d := range all[before:] {
		if d.Mode != types.ModeAnalog || d.Pull != gpio.Float {
			t.Fatalf("%s filled as %s/%s", d.Name, d.Mode, types.PullString(d.Pull))
		}
		if d.Name != d.Label() {
			t.Fatalf("filled pin named %q, want %q", d.Name, d.Label())
		}
		seen[d.Name] = true
	}
	for _, n := range []string{"PA15", "PB2", "PC14", "PD7", "PE3"} {
		if !seen[n] {
			t.Fatalf("%s not filled", n)
		}
	}
	if seen["PB11"] || seen["PE0"] {
		t.Fatal("filled a pin the package does not bond")
	}
}

func TestSteps(t *testing.T) {
	p, err := BuildPlan(boards.MelexisIO)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	steps := p.Steps()
	if len(steps) != 6+5+9 {
		t.Fatalf("got %d steps", len(steps))
	}
	if steps[0] != "clock  GPIOC" {
		t.Fatalf("first step %q", steps[0])
	}
	if steps[6] != "level  GPIOE 0x0090 low  PS_EN PS_SEL" {
		t.Fatalf("first preset %q", steps[6])
	}
	if !strings.HasPrefix(steps[12], "config GPIOE 0x0790 output_pp pull=none speed=low  PS_EN") {
		t.Fatalf("output group %q", steps[12])
	}
}
