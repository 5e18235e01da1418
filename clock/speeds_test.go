package clock

import (
	"testing"
	"time"
)

// disco168 is the 168 MHz point: 8 MHz HSE bypass / 4 * 168 / 2.
func disco168() Config {
	return Config{
		SysSource: SourcePLL,
		PLLSource: PLLFromHSE,
		PLLM:      4,
		PLLN:      168,
		PLLP:      PLLPDiv2,
		PLLQ:      7,
		AHB:       AHBDiv1,
		APB1:      APBDiv4,
		APB2:      APBDiv2,
		SysTick:   SysTickHCLKDiv8,
	}
}

// hsiNoPLL runs from HSI with the PLL stopped. Its dividers still have to
// describe a legal PLL.
func hsiNoPLL() Config {
	return Config{
		SysSource: SourceHSI,
		PLLSource: PLLOff,
		PLLM:      8,
		PLLN:      168,
		PLLP:      PLLPDiv4,
		PLLQ:      7,
		SysTick:   SysTickHCLKDiv8,
	}
}

func TestComputeReference(t *testing.T) {
	s := Compute(disco168(), STM32F4)
	want := Speeds{
		PLLInput:   2_000_000,
		VCO:        336_000_000,
		PLLOutput:  168_000_000,
		PLLAux:     48_000_000,
		SysClk:     168_000_000,
		HCLK:       168_000_000,
		PCLK1:      42_000_000,
		PCLK2:      84_000_000,
		Tim1Clk:    84_000_000,
		Tim2Clk:    168_000_000,
		SysTickClk: 21_000_000,
	}
	if s != want {
		t.Fatalf("Compute = %+v, want %+v", s, want)
	}
	if err := Validate(disco168(), s, STM32F4.Limits); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestComputeSysSources(t *testing.T) {
	cfg := disco168()
	cfg.SysSource = SourceHSI
	if got := Compute(cfg, STM32F4).SysClk; got != 16_000_000 {
		t.Fatalf("HSI sysclk = %d", got)
	}
	cfg.SysSource = SourceHSE
	if got := Compute(cfg, STM32F4).SysClk; got != 8_000_000 {
		t.Fatalf("HSE sysclk = %d", got)
	}
}

func TestComputePLLReferenceFollowsSource(t *testing.T) {
	cfg := disco168()
	cfg.PLLSource = PLLFromHSI
	cfg.PLLM = 8
	if got := Compute(cfg, STM32F4).PLLInput; got != 2_000_000 {
		t.Fatalf("HSI/8 pll input = %d", got)
	}

	board := STM32F4
	board.HSE = 25_000_000
	cfg = disco168()
	cfg.PLLM = 25
	cfg.PLLN = 336
	cfg.PLLP = PLLPDiv4
	s := Compute(cfg, board)
	if s.PLLInput != 1_000_000 || s.VCO != 336_000_000 || s.PLLOutput != 84_000_000 {
		t.Fatalf("25 MHz crystal tree = %+v", s)
	}
}

func TestComputeZeroDividers(t *testing.T) {
	cfg := Config{} // HSI, PLL off, all dividers at reset zero
	s := Compute(cfg, STM32F4)
	if s.PLLInput != 0 || s.VCO != 0 || s.PLLAux != 0 {
		t.Fatalf("zero dividers = %+v", s)
	}
	if s.SysClk != 16_000_000 || s.HCLK != 16_000_000 || s.SysTickClk != 2_000_000 {
		t.Fatalf("reset tree = %+v", s)
	}
}

func TestTimerClockDoubling(t *testing.T) {
	base := Config{SysSource: SourceHSI} // HCLK 16 MHz
	for _, c := range []struct {
		name   string
		apb    APBPrescaler
		timpre bool
		want   uint32
	}{
		{"div1", APBDiv1, false, 16_000_000},        // == PCLK
		{"div2", APBDiv2, false, 16_000_000},        // 2 * 8 MHz
		{"div8", APBDiv8, false, 4_000_000},         // 2 * 2 MHz
		{"div1 timpre", APBDiv1, true, 16_000_000},  // HCLK
		{"div2 timpre", APBDiv2, true, 16_000_000},  // HCLK, not 2 * PCLK
		{"div4 timpre", APBDiv4, true, 16_000_000},  // HCLK
		{"div8 timpre", APBDiv8, true, 8_000_000},   // 4 * 2 MHz
		{"div16 timpre", APBDiv16, true, 4_000_000}, // 4 * 1 MHz
	} {
		cfg := base
		cfg.APB1, cfg.APB2, cfg.TimPre = c.apb, c.apb, c.timpre
		s := Compute(cfg, STM32F4)
		if s.Tim1Clk != c.want || s.Tim2Clk != c.want {
			t.Fatalf("%s: tim1 %d tim2 %d, want %d", c.name, s.Tim1Clk, s.Tim2Clk, c.want)
		}
	}
}

func TestTimerRulesUseOwnBus(t *testing.T) {
	cfg := disco168()
	cfg.TimPre = true
	cfg.APB1 = APBDiv8 // 21 MHz
	cfg.APB2 = APBDiv2 // 84 MHz
	s := Compute(cfg, STM32F4)
	if s.Tim1Clk != 84_000_000 {
		t.Fatalf("tim1 = %d, want 4 * 21 MHz", s.Tim1Clk)
	}
	if s.Tim2Clk != 168_000_000 {
		t.Fatalf("tim2 = %d, want HCLK", s.Tim2Clk)
	}
}

func TestSysTickClock(t *testing.T) {
	cfg := disco168()
	if got := Compute(cfg, STM32F4).SysTickClk; got != 21_000_000 {
		t.Fatalf("systick /8 = %d, want 21000000", got)
	}
	cfg.SysTick = SysTickHCLK
	if got := Compute(cfg, STM32F4).SysTickClk; got != 168_000_000 {
		t.Fatalf("systick /1 = %d, want 168000000", got)
	}
}

func TestSysTickReload(t *testing.T) {
	s := Compute(disco168(), STM32F4)
	if got := s.SysTickReload(time.Millisecond); got != 20_999 {
		t.Fatalf("reload 1ms = %d, want 20999", got)
	}
	if got := s.SysTickReload(time.Second); got != 1<<24-1 {
		t.Fatalf("reload 1s = %d, want 24-bit max", got)
	}
	if got := (Speeds{SysTickClk: 168_000_000}).SysTickReload(109_803 * time.Millisecond); got != 1<<24-1 {
		t.Fatalf("reload 109.803s = %d, want 24-bit max", got)
	}
	if got := s.SysTickReload(0); got != 0 {
		t.Fatalf("reload 0 = %d, want 0", got)
	}
}
