package pinmux

import (
	"mlxio-go/services/hal/internal/platform/boards"
	"mlxio-go/types"

	"periph.io/x/conn/v3/gpio"
)

// FillUnclaimed returns the board table followed by an analog, no-pull
// descriptor for every bonded pin nobody claims. Analog disconnects the
// digital stage, so unused pins neither leak nor pick up noise. The board
// itself is not modified.
func FillUnclaimed(b *boards.Board) []types.PinDesc {
	var used [types.NumPorts]types.Mask
	for _, d := range b.Pins {
		if int(d.Port) < types.NumPorts {
			used[d.Port] |= types.Bit(d.Num)
		}
	}
	out := append([]types.PinDesc(nil), b.Pins...)
	for p := 0; p < types.NumPorts; p++ {
		free := b.Bonded[p] &^ used[p]
		for _, n := range free.Pins() {
			port := types.Port(p)
			out = append(out, types.PinDesc{
				Name: types.PinLabel(port, n),
				Port: port,
				Num:  n,
				Mode: types.ModeAnalog,
				Pull: gpio.Float,
			})
		}
	}
	return out
}
