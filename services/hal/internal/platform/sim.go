package platform

import (
	"sync"

	"mlxio-go/services/hal/internal/halerr"
	"mlxio-go/types"

	"periph.io/x/conn/v3/gpio"
)

// ---- Simulated GPIO banks (host) ----

// Bank mirrors the configuration registers of one STM32F4 GPIO port.
type Bank struct {
	MODER   uint32
	OTYPER  uint32
	OSPEEDR uint32
	PUPDR   uint32
	ODR     uint32
}

// Reset values from RM0090: PA13..PA15 and PB3/PB4 come up in debug
// alternate function with their pulls.
func resetBank(p types.Port) Bank {
	switch p {
	case types.PortA:
		return Bank{MODER: 0xA800_0000, OSPEEDR: 0x0C00_0000, PUPDR: 0x6400_0000}
	case types.PortB:
		return Bank{MODER: 0x0000_0280, OSPEEDR: 0x0000_00C0, PUPDR: 0x0000_0100}
	default:
		return Bank{}
	}
}

type OpKind uint8

const (
	OpClock OpKind = iota
	OpLevel
	OpConfigure
)

func (k OpKind) String() string {
	switch k {
	case OpClock:
		return "clock"
	case OpLevel:
		return "level"
	default:
		return "config"
	}
}

// Op is one accepted backend call, in call order.
type Op struct {
	Seq    int
	Kind   OpKind
	Port   types.Port
	Mask   types.Mask
	Level  gpio.Level
	Config types.PinConfig
}

// Drive records the level a pin drove at the instant it became an output.
type Drive struct {
	Seq   int
	Level gpio.Level
}

// Sim is a register-level Backend for host tests and tools. Touching a bank
// whose clock is gated off is reported as halerr.ErrClockDisabled, which
// makes the undefined hardware case observable.
type Sim struct {
	mu     sync.Mutex
	clocks uint32
	banks  [types.NumPorts]Bank
	ops    []Op
	drives map[int][]Drive // pin id -> transitions into output mode
}

func NewSim() *Sim {
	s := &Sim{}
	s.reset()
	return s
}

// Reset returns every bank to its power-on state and clears the trace.
func (s *Sim) Reset() {
	s.mu.Lock()
	s.reset()
	s.mu.Unlock()
}

func (s *Sim) reset() {
	s.clocks = 0
	for p := range s.banks {
		s.banks[p] = resetBank(types.Port(p))
	}
	s.ops = nil
	s.drives = make(map[int][]Drive)
}

func (s *Sim) check(p types.Port) error {
	if int(p) >= types.NumPorts {
		return halerr.ErrUnknownPort
	}
	if s.clocks&(1<<p) == 0 {
		return halerr.ErrClockDisabled
	}
	return nil
}

func (s *Sim) record(op Op) {
	op.Seq = len(s.ops)
	s.ops = append(s.ops, op)
}

func (s *Sim) EnableClock(p types.Port) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if int(p) >= types.NumPorts {
		return halerr.ErrUnknownPort
	}
	s.clocks |= 1 << p
	s.record(Op{Kind: OpClock, Port: p})
	return nil
}

func (s *Sim) WriteLevel(p types.Port, m types.Mask, l gpio.Level) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(p); err != nil {
		return err
	}
	b := &s.banks[p]
	if l {
		b.ODR |= uint32(m)
	} else {
		b.ODR &^= uint32(m)
	}
	s.record(Op{Kind: OpLevel, Port: p, Mask: m, Level: l})
	return nil
}

func (s *Sim) Configure(p types.Port, m types.Mask, c types.PinConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(p); err != nil {
		return err
	}
	w, err := encode(c)
	if err != nil {
		return err
	}
	b := &s.banks[p]
	prev := b.MODER
	if w.output {
		b.OSPEEDR = put2(b.OSPEEDR, m, w.speed)
		b.OTYPER &^= uint32(m)
	}
	b.PUPDR = put2(b.PUPDR, m, w.pupd)
	b.MODER = put2(b.MODER, m, w.moder)
	s.record(Op{Kind: OpConfigure, Port: p, Mask: m, Config: c})

	if w.output {
		seq := len(s.ops) - 1
		for _, n := range m.Pins() {
			if modeFromBits(prev>>(2*n)) == types.ModeOutput {
				continue
			}
			id := int(p)*16 + int(n)
			s.drives[id] = append(s.drives[id], Drive{Seq: seq, Level: b.ODR&(1<<n) != 0})
		}
	}
	return nil
}

// ---- Inspection ----

func (s *Sim) ClockEnabled(p types.Port) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int(p) < types.NumPorts && s.clocks&(1<<p) != 0
}

// Bank returns a copy of the port's registers; ports past the last bank
// read as zero.
func (s *Sim) Bank(p types.Port) Bank {
	if int(p) >= types.NumPorts {
		return Bank{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.banks[p]
}

// Banks copies every bank; equal snapshots mean identical pin state.
func (s *Sim) Banks() [types.NumPorts]Bank {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.banks
}

func (s *Sim) Mode(p types.Port, n uint8) types.Mode {
	b := s.Bank(p)
	return modeFromBits(b.MODER >> (2 * n))
}

func (s *Sim) Pull(p types.Port, n uint8) gpio.Pull {
	b := s.Bank(p)
	return pullFromBits(b.PUPDR >> (2 * n))
}

func (s *Sim) Speed(p types.Port, n uint8) types.Speed {
	b := s.Bank(p)
	return types.Speed((b.OSPEEDR >> (2 * n)) & 0b11)
}

// Level returns the output data latch for the pin.
func (s *Sim) Level(p types.Port, n uint8) gpio.Level {
	b := s.Bank(p)
	return b.ODR&(1<<n) != 0
}

// Ops returns a copy of the call trace.
func (s *Sim) Ops() []Op {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Op(nil), s.ops...)
}

// FirstDrive reports the level driven when the pin first became an output.
func (s *Sim) FirstDrive(p types.Port, n uint8) (Drive, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.drives[int(p)*16+int(n)]
	if len(d) == 0 {
		return Drive{}, false
	}
	return d[0], true
}
