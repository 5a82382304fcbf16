package pinmux

import (
	"strings"

	"mlxio-go/services/hal/internal/platform/boards"
	"mlxio-go/types"
	"mlxio-go/x/conv"

	"periph.io/x/conn/v3/gpio"
)

// Preset latches one output level on several pins of a port before any of
// them is switched to output.
type Preset struct {
	Port  types.Port
	Mask  types.Mask
	Level gpio.Level
	Names []string
}

// Group configures pins that share port, mode, pull and speed in one call.
type Group struct {
	Port   types.Port
	Mask   types.Mask
	Config types.PinConfig
	Names  []string
}

// Plan is the ordered work for one board: clocks, then presets, then groups.
// Within each stage entries follow first appearance in the table.
type Plan struct {
	Board   string
	Pins    []types.PinDesc // validated table, unclaimed pins filled
	Clocks  []types.Port
	Presets []Preset
	Groups  []Group
}

// BuildPlan validates the board and derives its application plan.
func BuildPlan(b *boards.Board) (Plan, error) {
	if err := Validate(b); err != nil {
		return Plan{}, err
	}
	pins := FillUnclaimed(b)
	p := Plan{Board: b.Name, Pins: pins}

	var clocked uint32
	for _, d := range pins {
		if clocked&(1<<d.Port) == 0 {
			clocked |= 1 << d.Port
			p.Clocks = append(p.Clocks, d.Port)
		}
	}

	type presetKey struct {
		port  types.Port
		level gpio.Level
	}
	presetAt := map[presetKey]int{}
	for _, d := range pins {
		if d.Mode != types.ModeOutput {
			continue
		}
		k := presetKey{d.Port, d.Initial}
		i, ok := presetAt[k]
		if !ok {
			i = len(p.Presets)
			presetAt[k] = i
			p.Presets = append(p.Presets, Preset{Port: d.Port, Level: d.Initial})
		}
		p.Presets[i].Mask |= types.Bit(d.Num)
		p.Presets[i].Names = append(p.Presets[i].Names, d.Name)
	}

	type groupKey struct {
		port types.Port
		cfg  types.PinConfig
	}
	groupAt := map[groupKey]int{}
	for _, d := range pins {
		if d.Mode == types.ModePeripheral {
			continue
		}
		cfg := d.Config().Key()
		k := groupKey{d.Port, cfg}
		i, ok := groupAt[k]
		if !ok {
			i = len(p.Groups)
			groupAt[k] = i
			p.Groups = append(p.Groups, Group{Port: d.Port, Config: cfg})
		}
		p.Groups[i].Mask |= types.Bit(d.Num)
		p.Groups[i].Names = append(p.Groups[i].Names, d.Name)
	}
	return p, nil
}

// Steps renders the plan as one line per backend call.
func (p Plan) Steps() []string {
	out := make([]string, 0, len(p.Clocks)+len(p.Presets)+len(p.Groups))
	for _, port := range p.Clocks {
		out = append(out, "clock  GPIO"+port.String())
	}
	for _, ps := range p.Presets {
		out = append(out, "level  GPIO"+ps.Port.String()+" "+hex16(ps.Mask)+" "+
			types.LevelString(ps.Level)+"  "+strings.Join(ps.Names, " "))
	}
	for _, g := range p.Groups {
		line := "config GPIO" + g.Port.String() + " " + hex16(g.Mask) + " " +
			g.Config.Mode.String() + " pull=" + types.PullString(g.Config.Pull)
		if g.Config.Mode == types.ModeOutput {
			line += " speed=" + g.Config.Speed.String()
		}
		out = append(out, line+"  "+strings.Join(g.Names, " "))
	}
	return out
}

func hex16(m types.Mask) string {
	var buf [4]byte
	return "0x" + string(conv.U16Hex(buf[:], uint16(m)))
}
