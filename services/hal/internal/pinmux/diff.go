package pinmux

import (
	"sort"

	"mlxio-go/services/hal/internal/platform/boards"
	"mlxio-go/types"
)

// Mismatch is one pin whose boot state differs between two tables.
type Mismatch struct {
	Label string // package pin, e.g. "PB14"
	Field string // name, present, mode, pull, speed, initial
	Want  string
	Got   string
}

// Diff compares the effective boot state of two boards, unclaimed pins
// filled. Peripheral pins are compared by presence and mode only, and a
// peripheral pin missing on the other side counts as equal: neither table
// configures it.
func Diff(want, got *boards.Board) ([]Mismatch, error) {
	if err := Validate(want); err != nil {
		return nil, err
	}
	if err := Validate(got); err != nil {
		return nil, err
	}
	w := index(FillUnclaimed(want))
	g := index(FillUnclaimed(got))

	ids := make([]int, 0, len(w)+len(g))
	for id := range w {
		ids = append(ids, id)
	}
	for id := range g {
		if _, ok := w[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	var out []Mismatch
	for _, id := range ids {
		a, aok := w[id]
		b, bok := g[id]
		if !aok || !bok {
			d, have := a, "want"
			if !aok {
				d, have = b, "got"
			}
			if d.Mode == types.ModePeripheral {
				continue
			}
			m := Mismatch{Label: d.Label(), Field: "present"}
			if have == "want" {
				m.Want = d.Name
			} else {
				m.Got = d.Name
			}
			out = append(out, m)
			continue
		}
		out = append(out, compare(a, b)...)
	}
	return out, nil
}

func index(pins []types.PinDesc) map[int]types.PinDesc {
	m := make(map[int]types.PinDesc, len(pins))
	for _, d := range pins {
		m[d.ID()] = d
	}
	return m
}

func compare(a, b types.PinDesc) []Mismatch {
	var out []Mismatch
	add := func(field, want, got string) {
		if want != got {
			out = append(out, Mismatch{Label: a.Label(), Field: field, Want: want, Got: got})
		}
	}
	add("name", a.Name, b.Name)
	add("mode", a.Mode.String(), b.Mode.String())
	if a.Mode != b.Mode || a.Mode == types.ModePeripheral {
		return out
	}
	add("pull", types.PullString(a.Pull), types.PullString(b.Pull))
	if a.Mode == types.ModeOutput {
		add("speed", a.Speed.String(), b.Speed.String())
		add("initial", types.LevelString(a.Initial), types.LevelString(b.Initial))
	}
	return out
}
