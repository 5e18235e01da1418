package clock

import (
	"errors"
	"testing"

	"clocktree-go/errcode"
)

// fakeRegs is a field-level register file whose ready flags follow their
// enables immediately and whose SWS follows SW.
type fakeRegs struct {
	f       [NumFields]uint32
	en      [NumEnableRegs]uint32
	updates int
	stuck   [NumFields]bool // ready/status field never follows

	// Snapshot taken when SW is written.
	atSwitch struct {
		latency, ppre1, ppre2 uint32
		seen                  bool
	}
	log []FieldValue
}

var _ Registers = (*fakeRegs)(nil)

func (r *fakeRegs) Get(f Field) uint32 { return r.f[f] }

func (r *fakeRegs) Update(vals ...FieldValue) {
	r.updates++
	for _, v := range vals {
		r.f[v.F] = v.V
		r.log = append(r.log, v)
		if v.F == FieldSW {
			r.atSwitch.latency = r.f[FieldLatency]
			r.atSwitch.ppre1 = r.f[FieldPPRE1]
			r.atSwitch.ppre2 = r.f[FieldPPRE2]
			r.atSwitch.seen = true
		}
	}
	r.follow(FieldHSIRDY, FieldHSION)
	r.follow(FieldHSERDY, FieldHSEON)
	r.follow(FieldPLLRDY, FieldPLLON)
	r.follow(FieldSWS, FieldSW)
}

func (r *fakeRegs) follow(status, ctl Field) {
	if !r.stuck[status] {
		r.f[status] = r.f[ctl]
	}
}

func (r *fakeRegs) WriteEnable(e EnableReg, mask uint32) {
	r.updates++
	r.en[e] = mask
}

// written reports whether f was ever written.
func (r *fakeRegs) written(f Field) bool {
	for _, v := range r.log {
		if v.F == f {
			return true
		}
	}
	return false
}

func TestConfigureReference(t *testing.T) {
	regs := &fakeRegs{}
	regs.f[FieldHSION], regs.f[FieldHSIRDY] = 1, 1 // reset state

	var steps []Step
	q := New(regs, STM32F4)
	q.Trace = func(s Step) { steps = append(steps, s) }

	cfg := disco168()
	cfg.Enables = PeripheralEnables{AHB1: 1 << 3, APB1: 1<<28 | 1<<18, APB2: 1 << 14}
	s, err := q.Configure(cfg)
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if s.PLLOutput != 168_000_000 || s.SysTickClk != 21_000_000 {
		t.Fatalf("speeds = %+v", s)
	}

	wantSteps := []Step{
		StepPrecheck, StepPowerEnable, StepVoltageScale, StepOscillators,
		StepPLLDisable, StepPLLConfigure, StepFlashRaise, StepBusMinimum,
		StepAHB, StepSwitch, StepBusTarget, StepFlashLower, StepTimerAndTick,
		StepPeripheralEnable, StepDone,
	}
	if len(steps) != len(wantSteps) {
		t.Fatalf("steps = %v, want %v", steps, wantSteps)
	}
	for i := range steps {
		if steps[i] != wantSteps[i] {
			t.Fatalf("step %d = %v, want %v", i, steps[i], wantSteps[i])
		}
	}

	for _, c := range []struct {
		f    Field
		want uint32
	}{
		{FieldPWREN, 1},
		{FieldVOS, 0b11},
		{FieldHSEON, 1}, {FieldHSEBYP, 1}, {FieldHSERDY, 1},
		{FieldHSION, 1},
		{FieldPLLON, 1}, {FieldPLLRDY, 1},
		{FieldPLLSRC, 1}, {FieldPLLM, 4}, {FieldPLLN, 168}, {FieldPLLP, 0b00}, {FieldPLLQ, 7},
		{FieldLatency, 5},
		{FieldHPRE, 0},
		{FieldSW, 2}, {FieldSWS, 2},
		{FieldPPRE1, 0b101}, {FieldPPRE2, 0b100},
		{FieldTIMPRE, 0},
		{FieldCLKSOURCE, 0},
	} {
		if got := regs.f[c.f]; got != c.want {
			t.Fatalf("%v = %d, want %d", c.f, got, c.want)
		}
	}
	if regs.en != [NumEnableRegs]uint32{1 << 3, 0, 0, 1<<28 | 1<<18, 1 << 14} {
		t.Fatalf("enables = %#v", regs.en)
	}
}

func TestConfigureHazardOrdering(t *testing.T) {
	for _, c := range []struct {
		name     string
		startLat uint32
		cfg      func() Config
	}{
		{"raise 0->5", 0, disco168},
		{"lower 7->0", 7, hsiNoPLL},
		{"keep 5", 5, disco168},
		{"lower 5->2", 5, func() Config {
			c := disco168()
			c.AHB = AHBDiv2 // 84 MHz
			return c
		}},
	} {
		regs := &fakeRegs{}
		regs.f[FieldLatency] = c.startLat
		cfg := c.cfg()
		s, err := New(regs, STM32F4).Configure(cfg)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		target := FlashLatency(s.HCLK, STM32F4.Limits)
		if !regs.atSwitch.seen {
			t.Fatalf("%s: SW never written", c.name)
		}
		if regs.atSwitch.latency < target {
			t.Fatalf("%s: latency %d at switch, below target %d", c.name, regs.atSwitch.latency, target)
		}
		if regs.atSwitch.ppre1 != APBDiv16.Bits() || regs.atSwitch.ppre2 != APBDiv16.Bits() {
			t.Fatalf("%s: APB prescalers %b/%b at switch, want minimum", c.name, regs.atSwitch.ppre1, regs.atSwitch.ppre2)
		}
		if got := regs.f[FieldLatency]; got != target {
			t.Fatalf("%s: final latency %d, want %d", c.name, got, target)
		}
	}
}

func TestConfigureRejectsBeforeAnyWrite(t *testing.T) {
	regs := &fakeRegs{}
	cfg := disco168()
	cfg.APB1 = APBDiv1
	var steps []Step
	q := New(regs, STM32F4)
	q.Trace = func(s Step) { steps = append(steps, s) }

	if _, err := q.Configure(cfg); !errors.Is(err, errcode.PCLK1TooHigh) {
		t.Fatalf("err = %v, want pclk1_too_high", err)
	}
	if regs.updates != 0 {
		t.Fatalf("%d register writes on rejected config", regs.updates)
	}
	if len(steps) != 1 || steps[0] != StepPrecheck {
		t.Fatalf("steps = %v, want only precheck", steps)
	}
}

func TestConfigureWithoutPLL(t *testing.T) {
	regs := &fakeRegs{}
	regs.f[FieldPLLON], regs.f[FieldPLLRDY] = 1, 1 // left running by a bootloader
	cfg := hsiNoPLL()
	cfg.SysSource = SourceHSE
	s, err := New(regs, STM32F4).Configure(cfg)
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if s.SysClk != 8_000_000 {
		t.Fatalf("sysclk = %d", s.SysClk)
	}
	if regs.f[FieldPLLON] != 0 || regs.f[FieldPLLRDY] != 0 {
		t.Fatalf("PLL left running")
	}
	if regs.written(FieldPLLN) {
		t.Fatalf("PLLCFGR written with PLL off")
	}
	if regs.f[FieldVOS] != 0b01 {
		t.Fatalf("VOS = %b, want scale 3", regs.f[FieldVOS])
	}
}

func TestConfigureLeavesHSIRunning(t *testing.T) {
	regs := &fakeRegs{}
	regs.f[FieldHSION], regs.f[FieldHSIRDY] = 1, 1
	if _, err := New(regs, STM32F4).Configure(disco168()); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if regs.f[FieldHSION] != 1 {
		t.Fatalf("HSI switched off")
	}
	if regs.written(FieldHSION) {
		t.Fatalf("HSION written although neither SYSCLK nor PLL uses HSI")
	}
}

func TestConfigureStopsUnusedHSE(t *testing.T) {
	regs := &fakeRegs{}
	regs.f[FieldHSEON], regs.f[FieldHSERDY] = 1, 1
	cfg := disco168()
	cfg.PLLSource, cfg.PLLM = PLLFromHSI, 8
	if _, err := New(regs, STM32F4).Configure(cfg); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if regs.f[FieldHSEON] != 0 || regs.f[FieldHSION] != 1 {
		t.Fatalf("HSEON=%d HSION=%d, want 0/1", regs.f[FieldHSEON], regs.f[FieldHSION])
	}
	if regs.f[FieldPLLSRC] != 0 {
		t.Fatalf("PLLSRC = %d, want HSI", regs.f[FieldPLLSRC])
	}
}

func TestConfigureTimeouts(t *testing.T) {
	for _, c := range []struct {
		stuck Field
		want  errcode.Code
		last  Step
	}{
		{FieldHSERDY, errcode.OscNotReady, StepOscillators},
		{FieldPLLRDY, errcode.PLLNotReady, StepPLLConfigure},
		{FieldSWS, errcode.ClockSwitchTimeout, StepSwitch},
	} {
		regs := &fakeRegs{}
		regs.stuck[c.stuck] = true
		var last Step
		q := New(regs, STM32F4)
		q.PollLimit = 16
		q.Trace = func(s Step) { last = s }
		_, err := q.Configure(disco168())
		if got := errcode.Of(err); got != c.want {
			t.Fatalf("stuck %v: code = %q, want %q", c.stuck, got, c.want)
		}
		if last != c.last {
			t.Fatalf("stuck %v: stopped after %v, want %v", c.stuck, last, c.last)
		}
	}
}

func TestConfigurePLLNotStopping(t *testing.T) {
	regs := &fakeRegs{}
	regs.f[FieldPLLON], regs.f[FieldPLLRDY] = 1, 1
	regs.stuck[FieldPLLRDY] = true
	q := New(regs, STM32F4)
	q.PollLimit = 4
	_, err := q.Configure(disco168())
	if !errors.Is(err, errcode.PLLNotStopped) {
		t.Fatalf("err = %v, want pll_not_stopped", err)
	}
	if got, want := err.Error(), "clock.wait: pll_not_stopped: PLLRDY != 0"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestConfigureIdempotent(t *testing.T) {
	regs := &fakeRegs{}
	cfg := disco168()
	cfg.TimPre = true
	cfg.SysTick = SysTickHCLK
	cfg.Enables.APB1 = 1 << 28
	q := New(regs, STM32F4)

	s1, err := q.Configure(cfg)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	f1, en1 := regs.f, regs.en

	s2, err := q.Configure(cfg)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if s1 != s2 {
		t.Fatalf("speeds drifted: %+v vs %+v", s1, s2)
	}
	if regs.f != f1 || regs.en != en1 {
		t.Fatalf("register state drifted:\n%v\n%v", f1, regs.f)
	}
}

func TestApplyEnablesVerbatim(t *testing.T) {
	regs := &fakeRegs{}
	regs.en[EnableAPB2] = 0xFFFF_FFFF
	ApplyEnables(regs, PeripheralEnables{AHB1: 0xDEAD_BEEF, AHB3: 1})
	want := [NumEnableRegs]uint32{0xDEAD_BEEF, 0, 1, 0, 0}
	if regs.en != want {
		t.Fatalf("enables = %#v, want %#v", regs.en, want)
	}
	if regs.updates != int(NumEnableRegs) {
		t.Fatalf("%d writes, want one per register", regs.updates)
	}
}

func TestStepNames(t *testing.T) {
	if StepSwitch.String() != "switch" || StepDone.String() != "done" || Step(0).String() != "?" {
		t.Fatalf("step names wrong")
	}
	if FieldLatency.String() != "LATENCY" || NumFields.String() != "?" {
		t.Fatalf("field names wrong")
	}
}
