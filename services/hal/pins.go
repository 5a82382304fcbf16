package hal

import (
	"sync"

	"mlxio-go/errcode"
	"mlxio-go/services/hal/internal/halerr"
	"mlxio-go/services/hal/internal/pinmux"
	"mlxio-go/services/hal/internal/platform"
	"mlxio-go/types"

	"periph.io/x/conn/v3/gpio"
)

// Pins indexes an applied table by symbolic name. Drivers take their pins
// from here instead of re-deriving port and bit.
type Pins struct {
	be     platform.Backend
	board  string
	byName map[string]types.PinDesc

	mu    sync.Mutex
	lines map[string]*Line // one handle per output, shared by every caller
}

func newPins(be platform.Backend, plan pinmux.Plan) *Pins {
	p := &Pins{
		be:     be,
		board:  plan.Board,
		byName: make(map[string]types.PinDesc, len(plan.Pins)),
		lines:  map[string]*Line{},
	}
	for _, d := range plan.Pins {
		p.byName[d.Name] = d
	}
	return p
}

func (p *Pins) Board() string { return p.board }

func (p *Pins) Lookup(name string) (types.PinDesc, bool) {
	d, ok := p.byName[name]
	return d, ok
}

// Require returns the named descriptor if it was configured in mode m.
// A driver calls this for every pin it is about to use.
func (p *Pins) Require(name string, m types.Mode) (types.PinDesc, error) {
	d, ok := p.byName[name]
	if !ok {
		return types.PinDesc{}, errcode.Wrap("require", name, halerr.ErrUnknownPin)
	}
	if d.Mode != m {
		return d, errcode.Wrap("require", name+": want "+m.String()+", have "+d.Mode.String(), halerr.ErrInvalidMode)
	}
	return d, nil
}

// Output returns the handle on a push-pull output from the table. Every
// call for the same name returns the same *Line.
func (p *Pins) Output(name string) (*Line, error) {
	d, err := p.Require(name, types.ModeOutput)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.lines[name]
	if !ok {
		l = &Line{be: p.be, desc: d, level: d.Initial}
		p.lines[name] = l
	}
	return l, nil
}

// Line drives one output pin through the backend that configured it.
type Line struct {
	mu    sync.Mutex
	be    platform.Backend
	desc  types.PinDesc
	level gpio.Level
}

func (l *Line) Name() string { return l.desc.Name }

// Idle is the boot level from the table, e.g. high for a deasserted
// active-low chip select.
func (l *Line) Idle() gpio.Level { return l.desc.Initial }

func (l *Line) Set(v gpio.Level) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.be.WriteLevel(l.desc.Port, types.Bit(l.desc.Num), v); err != nil {
		return errcode.Wrap("set", l.desc.Name, err)
	}
	l.level = v
	return nil
}

func (l *Line) High() error { return l.Set(gpio.High) }
func (l *Line) Low() error  { return l.Set(gpio.Low) }

// Level returns the last level written.
func (l *Line) Level() gpio.Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}
