package cubemx

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"mlxio-go/errcode"
	"mlxio-go/services/hal/internal/halerr"
	"mlxio-go/services/hal/internal/platform/boards"
	"mlxio-go/types"
	"mlxio-go/x/strconvx"

	"periph.io/x/conn/v3/gpio"
)

// Result is a board table recovered from generated code.
type Result struct {
	Board *boards.Board

	// Clocks lists ports in __HAL_RCC_GPIOx_CLK_ENABLE order.
	Clocks []types.Port
}

var defineRe = regexp.MustCompile(`^#[ \t]*define[ \t]+(\w+)[ \t]*(.*)$`)

// Import builds a board from a CubeMX main.h (pin/port macros) and gpio.c
// (MX_GPIO_Init). Pins configured in gpio.c become analog/input/output
// descriptors named after their header macro when one exists. Pins that are
// only named in the header are configured by peripheral MSP code and become
// ModePeripheral, owned by the lower-cased name prefix ("SPI2_MISO" -> "spi2").
// The bonded set is every pin either file mentions.
func Import(name string, header, source io.Reader) (*Result, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	hf, err := p.Parse("main.h", header)
	if err != nil {
		return nil, errcode.Wrap("import", err.Error(), halerr.ErrParse)
	}
	sf, err := p.Parse("gpio.c", source)
	if err != nil {
		return nil, errcode.Wrap("import", err.Error(), halerr.ErrParse)
	}
	im := newImporter(name)
	im.defines(hf)
	im.defines(sf)
	if err := im.source(sf); err != nil {
		return nil, err
	}
	im.headerOnly()
	return &Result{Board: im.board, Clocks: im.clocks}, nil
}

type initStruct struct {
	pins  types.Mask
	mode  string
	pull  string
	speed string
}

type importer struct {
	board   *boards.Board
	clocks  []types.Port
	macros  map[string]string
	order   []string // macro names in definition order
	levels  [types.NumPorts]types.Mask
	claimed map[int]bool
	structs map[string]*initStruct
}

func newImporter(name string) *importer {
	return &importer{
		board:   &boards.Board{Name: name},
		macros:  map[string]string{},
		claimed: map[int]bool{},
		structs: map[string]*initStruct{},
	}
}

func (im *importer) defines(f *File) {
	for _, it := range f.Items {
		if it.Define == nil {
			continue
		}
		m := defineRe.FindStringSubmatch(strings.TrimSpace(*it.Define))
		if m == nil {
			continue
		}
		val := m[2]
		if i := strings.Index(val, "/*"); i >= 0 {
			val = val[:i]
		}
		if i := strings.Index(val, "//"); i >= 0 {
			val = val[:i]
		}
		if _, seen := im.macros[m[1]]; !seen {
			im.order = append(im.order, m[1])
		}
		im.macros[m[1]] = strings.TrimSpace(val)
	}
}

// resolve follows macro aliases to a terminal identifier.
func (im *importer) resolve(id string) string {
	for i := 0; i < 8; i++ {
		v, ok := im.macros[id]
		if !ok || v == "" {
			return id
		}
		id = v
	}
	return id
}

func (im *importer) port(id string) (types.Port, error) {
	p, ok := types.ParsePort(im.resolve(id))
	if !ok {
		return 0, errcode.Wrap("import", "port "+id, halerr.ErrUnknownPort)
	}
	return p, nil
}

func (im *importer) pin(id string) (uint8, error) {
	v := im.resolve(id)
	if n, ok := strings.CutPrefix(v, "GPIO_PIN_"); ok {
		if k, err := strconvx.Atoi(n); err == nil && k >= 0 && k < 16 {
			return uint8(k), nil
		}
	}
	return 0, errcode.Wrap("import", "pin "+id, halerr.ErrUnknownPin)
}

func (im *importer) mask(ids []string) (types.Mask, error) {
	var m types.Mask
	for _, id := range ids {
		n, err := im.pin(id)
		if err != nil {
			return 0, err
		}
		m |= types.Bit(n)
	}
	return m, nil
}

func (im *importer) source(f *File) error {
	for _, it := range f.Items {
		var err error
		switch {
		case it.Clock != nil:
			err = im.clock(*it.Clock)
		case it.Write != nil:
			err = im.write(it.Write)
		case it.Assign != nil:
			err = im.assign(it.Assign)
		case it.Init != nil:
			err = im.init(it.Init)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (im *importer) clock(tok string) error {
	s := strings.TrimPrefix(tok, "__HAL_RCC_")
	s = strings.TrimSuffix(s, "_CLK_ENABLE")
	p, err := im.port(s)
	if err != nil {
		return err
	}
	im.clocks = append(im.clocks, p)
	return nil
}

func (im *importer) write(w *Write) error {
	p, err := im.port(w.Port)
	if err != nil {
		return err
	}
	m, err := im.mask(w.Pins)
	if err != nil {
		return err
	}
	switch im.resolve(w.State) {
	case "GPIO_PIN_SET":
		im.levels[p] |= m
	case "GPIO_PIN_RESET":
		im.levels[p] &^= m
	default:
		return errcode.Wrap("import", "pin state "+w.State, halerr.ErrInvalidParams)
	}
	return nil
}

func (im *importer) assign(a *Assign) error {
	s := im.structs[a.Struct]
	if s == nil {
		s = &initStruct{}
		im.structs[a.Struct] = s
	}
	switch a.Field {
	case "Pin":
		m, err := im.mask(a.Values)
		if err != nil {
			return err
		}
		s.pins = m
	case "Mode":
		s.mode = im.resolve(a.Values[0])
	case "Pull":
		s.pull = im.resolve(a.Values[0])
	case "Speed":
		s.speed = im.resolve(a.Values[0])
	}
	return nil
}

var (
	modes = map[string]types.Mode{
		"GPIO_MODE_ANALOG":    types.ModeAnalog,
		"GPIO_MODE_INPUT":     types.ModeInput,
		"GPIO_MODE_OUTPUT_PP": types.ModeOutput,
	}
	pulls = map[string]gpio.Pull{
		"GPIO_NOPULL":   gpio.Float,
		"GPIO_PULLUP":   gpio.PullUp,
		"GPIO_PULLDOWN": gpio.PullDown,
	}
	speeds = map[string]types.Speed{
		"":                          types.SpeedLow,
		"GPIO_SPEED_FREQ_LOW":       types.SpeedLow,
		"GPIO_SPEED_FREQ_MEDIUM":    types.SpeedMedium,
		"GPIO_SPEED_FREQ_HIGH":      types.SpeedHigh,
		"GPIO_SPEED_FREQ_VERY_HIGH": types.SpeedVeryHigh,
	}
)

func (im *importer) init(c *InitCall) error {
	p, err := im.port(c.Port)
	if err != nil {
		return err
	}
	s := im.structs[c.Struct]
	if s == nil {
		return errcode.Wrap("import", "HAL_GPIO_Init with unset "+c.Struct, halerr.ErrInvalidParams)
	}
	mode, ok := modes[s.mode]
	if !ok {
		return errcode.Wrap("import", "mode "+s.mode, halerr.ErrUnsupported)
	}
	pull, ok := pulls[s.pull]
	if !ok {
		return errcode.Wrap("import", "pull "+s.pull, halerr.ErrInvalidPull)
	}
	speed, ok := speeds[s.speed]
	if !ok {
		return errcode.Wrap("import", "speed "+s.speed, halerr.ErrInvalidParams)
	}

	for _, n := range s.pins.Pins() {
		d := types.PinDesc{
			Name: im.nameOf(p, n),
			Port: p,
			Num:  n,
			Mode: mode,
			Pull: pull,
		}
		if mode == types.ModeOutput {
			d.Speed = speed
			d.Initial = gpio.Level(im.levels[p].Has(n))
		}
		if im.claimed[d.ID()] {
			return errcode.Wrap("import", d.Label()+" configured twice", halerr.ErrPinConflict)
		}
		im.claimed[d.ID()] = true
		im.bond(p, n)
		im.board.Pins = append(im.board.Pins, d)
	}
	return nil
}

func (im *importer) bond(p types.Port, n uint8) {
	im.board.Bonded[p] |= types.Bit(n)
}

// nameOf finds the header macro pair X_Pin / X_GPIO_Port for a pin.
func (im *importer) nameOf(p types.Port, n uint8) string {
	for _, name := range im.order {
		base, ok := strings.CutSuffix(name, "_Pin")
		if !ok {
			continue
		}
		port, ok := im.macros[base+"_GPIO_Port"]
		if !ok {
			continue
		}
		pp, ok := types.ParsePort(im.resolve(port))
		if !ok || pp != p {
			continue
		}
		if k, err := im.pin(name); err == nil && k == n {
			return base
		}
	}
	return types.PinLabel(p, n)
}

// headerOnly adds named pins that gpio.c never configures.
func (im *importer) headerOnly() {
	for _, name := range im.order {
		base, ok := strings.CutSuffix(name, "_Pin")
		if !ok {
			continue
		}
		portID, ok := im.macros[base+"_GPIO_Port"]
		if !ok {
			continue
		}
		p, err := im.port(portID)
		if err != nil {
			continue
		}
		n, err := im.pin(name)
		if err != nil {
			continue
		}
		d := types.PinDesc{
			Name:  base,
			Port:  p,
			Num:   n,
			Mode:  types.ModePeripheral,
			Pull:  gpio.PullNoChange,
			Owner: ownerOf(base),
		}
		if im.claimed[d.ID()] {
			continue
		}
		im.claimed[d.ID()] = true
		im.bond(p, n)
		im.board.Pins = append(im.board.Pins, d)
	}
}

func ownerOf(name string) string {
	if i := strings.IndexByte(name, '_'); i > 0 {
		name = name[:i]
	}
	return strings.ToLower(name)
}

// GoTable renders descriptors as boards package table entries.
func GoTable(pins []types.PinDesc) string {
	var b strings.Builder
	for _, d := range pins {
		port := "types.Port" + d.Port.String()
		switch d.Mode {
		case types.ModeAnalog:
			fmt.Fprintf(&b, "\tanalog(%q, %s, %d),\n", d.Name, port, d.Num)
		case types.ModeInput:
			fmt.Fprintf(&b, "\tinput(%q, %s, %d, %s),\n", d.Name, port, d.Num, pullExpr(d.Pull))
		case types.ModeOutput:
			lvl := "gpio.Low"
			if d.Initial {
				lvl = "gpio.High"
			}
			// The output helper is low speed without pull; anything else
			// needs the full descriptor.
			if d.Pull != gpio.Float || d.Speed != types.SpeedLow {
				fmt.Fprintf(&b, "\ttypes.PinDesc{Name: %q, Port: %s, Num: %d, Mode: types.ModeOutput, Pull: %s, Speed: %s, Initial: %s},\n",
					d.Name, port, d.Num, pullExpr(d.Pull), speedExpr(d.Speed), lvl)
				continue
			}
			fmt.Fprintf(&b, "\toutput(%q, %s, %d, %s),\n", d.Name, port, d.Num, lvl)
		case types.ModePeripheral:
			fmt.Fprintf(&b, "\tperiph(%q, %s, %d, %q),\n", d.Name, port, d.Num, d.Owner)
		}
	}
	return b.String()
}

func pullExpr(p gpio.Pull) string {
	switch p {
	case gpio.PullUp:
		return "gpio.PullUp"
	case gpio.PullDown:
		return "gpio.PullDown"
	default:
		return "gpio.Float"
	}
}

func speedExpr(s types.Speed) string {
	switch s {
	case types.SpeedMedium:
		return "types.SpeedMedium"
	case types.SpeedHigh:
		return "types.SpeedHigh"
	case types.SpeedVeryHigh:
		return "types.SpeedVeryHigh"
	default:
		return "types.SpeedLow"
	}
}
