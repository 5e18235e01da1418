package stm32f4rcc

import "clocktree-go/clock"

// Write is one store recorded by the simulator.
type Write struct {
	Reg   Reg
	Value uint32
}

// Sim is a register-level model of the clock controller for host runs and
// tests. Ready flags and SWS are read-only; they follow their controls
// after Latency reads of the register that holds them.
type Sim struct {
	regs [NumRegs]uint32

	// Latency is the number of CR or CFGR reads a status bit lags its
	// control. Zero makes it follow on the next read.
	Latency int

	// DeadHSE keeps HSERDY low. DeadPLL keeps PLLRDY low.
	DeadHSE, DeadPLL bool

	// HoldActive ignores clears of HSEON and PLLON while that oscillator
	// drives SYSCLK, directly or through the PLL, as RM0090 specifies.
	// Off, a second pass from a PLL clock succeeds without first moving
	// SYSCLK to HSI, which real parts do not allow.
	HoldActive bool

	// Writes records every store in order.
	Writes []Write

	lag int
}

var _ WordIO = (*Sim)(nil)

// NewSim returns a simulator in the power-on reset state.
func NewSim() *Sim {
	return &Sim{regs: resetValue}
}

// read-only status bits per register
var statusMask = [NumRegs]uint32{
	RegCR:   fields[clock.FieldHSIRDY].mask() | fields[clock.FieldHSERDY].mask() | fields[clock.FieldPLLRDY].mask(),
	RegCFGR: fields[clock.FieldSWS].mask(),
}

func (s *Sim) Load(r Reg) uint32 {
	if statusMask[r] != 0 {
		if s.lag > 0 {
			s.lag--
		} else {
			s.settle()
		}
	}
	return s.regs[r]
}

func (s *Sim) Store(r Reg, v uint32) {
	s.Writes = append(s.Writes, Write{r, v})
	if r == RegCR && s.HoldActive {
		v |= s.held()
	}
	ro := statusMask[r]
	s.regs[r] = (v &^ ro) | (s.regs[r] & ro)
	if ro != 0 {
		s.lag = s.Latency
	}
}

// held returns the CR enable bits hardware keeps set for the running SYSCLK.
func (s *Sim) held() uint32 {
	var m uint32
	switch clock.ClockSource(s.Field(clock.FieldSWS)) {
	case clock.SourceHSE:
		m = fields[clock.FieldHSEON].mask()
	case clock.SourcePLL:
		m = fields[clock.FieldPLLON].mask()
		if s.Field(clock.FieldPLLSRC) == 1 {
			m |= fields[clock.FieldHSEON].mask()
		}
	}
	return m
}

// Field returns the current value of f without advancing the model.
func (s *Sim) Field(f clock.Field) uint32 {
	l := fields[f]
	return (s.regs[l.reg] & l.mask()) >> l.pos
}

// Reg returns the raw value of r without advancing the model.
func (s *Sim) Reg(r Reg) uint32 { return s.regs[r] }

// Set forces a field, status bits included. Used to seed a state left by a
// bootloader.
func (s *Sim) Set(f clock.Field, v uint32) {
	l := fields[f]
	s.regs[l.reg] = modifyField(s.regs[l.reg], l, v)
}

func (s *Sim) settle() {
	hsi := s.Field(clock.FieldHSION)
	s.Set(clock.FieldHSIRDY, hsi)

	hse := s.Field(clock.FieldHSEON)
	if s.DeadHSE {
		hse = 0
	}
	s.Set(clock.FieldHSERDY, hse)

	// The PLL locks only on a running input.
	in := s.Field(clock.FieldHSIRDY)
	if s.Field(clock.FieldPLLSRC) == 1 {
		in = s.Field(clock.FieldHSERDY)
	}
	pll := s.Field(clock.FieldPLLON) & in
	if s.DeadPLL {
		pll = 0
	}
	s.Set(clock.FieldPLLRDY, pll)

	// The switch completes only onto a ready source.
	sw := s.Field(clock.FieldSW)
	var ready uint32
	switch clock.ClockSource(sw) {
	case clock.SourceHSI:
		ready = s.Field(clock.FieldHSIRDY)
	case clock.SourceHSE:
		ready = s.Field(clock.FieldHSERDY)
	case clock.SourcePLL:
		ready = s.Field(clock.FieldPLLRDY)
	}
	if ready == 1 {
		s.Set(clock.FieldSWS, sw)
	}
}

// WritesTo returns the recorded stores to r.
func (s *Sim) WritesTo(r Reg) []uint32 {
	var out []uint32
	for _, w := range s.Writes {
		if w.Reg == r {
			out = append(out, w.Value)
		}
	}
	return out
}
