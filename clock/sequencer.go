package clock

import (
	"clocktree-go/errcode"
	"clocktree-go/x/conv"
)

// Step identifies one stage of a configuration pass, in programming order.
type Step uint8

const (
	StepPrecheck Step = iota + 1
	StepPowerEnable
	StepVoltageScale
	StepOscillators
	StepPLLDisable
	StepPLLConfigure
	StepFlashRaise
	StepBusMinimum
	StepAHB
	StepSwitch
	StepBusTarget
	StepFlashLower
	StepTimerAndTick
	StepPeripheralEnable
	StepDone
)

var stepNames = [...]string{
	StepPrecheck:         "precheck",
	StepPowerEnable:      "power-enable",
	StepVoltageScale:     "voltage-scale",
	StepOscillators:      "oscillators",
	StepPLLDisable:       "pll-disable",
	StepPLLConfigure:     "pll-configure",
	StepFlashRaise:       "flash-raise",
	StepBusMinimum:       "bus-minimum",
	StepAHB:              "ahb",
	StepSwitch:           "switch",
	StepBusTarget:        "bus-target",
	StepFlashLower:       "flash-lower",
	StepTimerAndTick:     "timer-and-tick",
	StepPeripheralEnable: "peripheral-enable",
	StepDone:             "done",
}

func (s Step) String() string {
	if s == 0 || int(s) >= len(stepNames) {
		return "?"
	}
	return stepNames[s]
}

// DefaultPollLimit bounds every ready-flag wait.
const DefaultPollLimit = 0x10000

// Sequencer programs a clock tree through Regs. It holds no state between
// passes and is not safe for concurrent use.
type Sequencer struct {
	Regs Registers
	Chip Chip

	// PollLimit is the number of reads before a ready flag is declared
	// stuck. Zero selects DefaultPollLimit.
	PollLimit uint32

	// Trace, if set, is called as each step begins.
	Trace func(Step)
}

// New returns a Sequencer for chip over regs.
func New(regs Registers, chip Chip) *Sequencer {
	return &Sequencer{Regs: regs, Chip: chip}
}

// Configure validates cfg and, only if it is legal, programs the clock tree.
// A validation error leaves every register untouched. A ready-flag timeout
// leaves the hardware partially programmed; there is no rollback.
func (q *Sequencer) Configure(cfg Config) (Speeds, error) {
	r := q.Regs
	lim := q.Chip.Limits

	q.step(StepPrecheck)
	s, err := Plan(cfg, q.Chip)
	if err != nil {
		return Speeds{}, err
	}
	latency := FlashLatency(s.HCLK, lim)

	// PWR must be clocked before VOS can be written.
	q.step(StepPowerEnable)
	r.Update(FieldValue{FieldPWREN, 1})

	q.step(StepVoltageScale)
	r.Update(FieldValue{FieldVOS, VoltageScale(s.HCLK, lim)})

	q.step(StepOscillators)
	if err := q.oscillators(&cfg); err != nil {
		return Speeds{}, err
	}

	// PLLCFGR is only writable while the PLL is stopped.
	q.step(StepPLLDisable)
	r.Update(FieldValue{FieldPLLON, 0})
	if err := q.wait(FieldPLLRDY, 0, errcode.PLLNotStopped); err != nil {
		return Speeds{}, err
	}

	q.step(StepPLLConfigure)
	if cfg.PLLSource.Enabled() {
		r.Update(
			FieldValue{FieldPLLSRC, cfg.PLLSource.Bits()},
			FieldValue{FieldPLLM, uint32(cfg.PLLM)},
			FieldValue{FieldPLLN, uint32(cfg.PLLN)},
			FieldValue{FieldPLLP, cfg.PLLP.Bits()},
			FieldValue{FieldPLLQ, uint32(cfg.PLLQ)},
		)
		r.Update(FieldValue{FieldPLLON, 1})
		if err := q.wait(FieldPLLRDY, 1, errcode.PLLNotReady); err != nil {
			return Speeds{}, err
		}
	}

	// Wait states go up before the clock does...
	q.step(StepFlashRaise)
	if r.Get(FieldLatency) < latency {
		r.Update(FieldValue{FieldLatency, latency})
	}

	// ...and the APB buses sit at their slowest while SYSCLK moves.
	q.step(StepBusMinimum)
	r.Update(
		FieldValue{FieldPPRE1, APBDiv16.Bits()},
		FieldValue{FieldPPRE2, APBDiv16.Bits()},
	)

	q.step(StepAHB)
	r.Update(FieldValue{FieldHPRE, cfg.AHB.Bits()})

	q.step(StepSwitch)
	r.Update(FieldValue{FieldSW, cfg.SysSource.Bits()})
	if err := q.wait(FieldSWS, cfg.SysSource.Bits(), errcode.ClockSwitchTimeout); err != nil {
		return Speeds{}, err
	}

	q.step(StepBusTarget)
	r.Update(
		FieldValue{FieldPPRE1, cfg.APB1.Bits()},
		FieldValue{FieldPPRE2, cfg.APB2.Bits()},
	)

	// Wait states only come down once the new clock is running.
	q.step(StepFlashLower)
	if r.Get(FieldLatency) > latency {
		r.Update(FieldValue{FieldLatency, latency})
	}

	q.step(StepTimerAndTick)
	r.Update(FieldValue{FieldTIMPRE, b2u(cfg.TimPre)})
	r.Update(FieldValue{FieldCLKSOURCE, cfg.SysTick.Bits()})

	q.step(StepPeripheralEnable)
	ApplyEnables(r, cfg.Enables)

	q.step(StepDone)
	return s, nil
}

// oscillators starts (or stops) HSE and starts HSI as cfg requires. HSE is
// used in bypass mode: the board feeds a buffered clock, not a crystal. HSI
// is never stopped here.
func (q *Sequencer) oscillators(cfg *Config) error {
	r := q.Regs
	if cfg.usesHSE() {
		r.Update(FieldValue{FieldHSEBYP, 1}, FieldValue{FieldHSEON, 1})
		if err := q.wait(FieldHSERDY, 1, errcode.OscNotReady); err != nil {
			return err
		}
	} else {
		r.Update(FieldValue{FieldHSEON, 0})
		if err := q.wait(FieldHSERDY, 0, errcode.OscNotReady); err != nil {
			return err
		}
	}
	if cfg.usesHSI() {
		r.Update(FieldValue{FieldHSION, 1})
		if err := q.wait(FieldHSIRDY, 1, errcode.OscNotReady); err != nil {
			return err
		}
	}
	return nil
}

// wait polls f until it reads want, at most PollLimit times.
func (q *Sequencer) wait(f Field, want uint32, code errcode.Code) error {
	limit := q.PollLimit
	if limit == 0 {
		limit = DefaultPollLimit
	}
	for i := uint32(0); i < limit; i++ {
		if q.Regs.Get(f) == want {
			return nil
		}
	}
	var buf [10]byte
	return errcode.Wrap(code, "clock.wait", f.String()+" != "+string(conv.Utoa(buf[:], uint64(want))))
}

func (q *Sequencer) step(s Step) {
	if q.Trace != nil {
		q.Trace(s)
	}
}

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
