package clock

import (
	"math"
	"time"

	"clocktree-go/x/mathx"
	"clocktree-go/x/timex"
)

// Speeds is the derived clock tree, in Hz. It is computed once per
// configuration pass and returned by value.
type Speeds struct {
	PLLInput  uint32 // reference / PLLM
	VCO       uint32 // PLLInput * PLLN
	PLLOutput uint32 // VCO / PLLP
	PLLAux    uint32 // VCO / PLLQ (USB, SDIO, RNG)

	SysClk uint32
	HCLK   uint32
	PCLK1  uint32 // APB1, low speed
	PCLK2  uint32 // APB2, high speed

	Tim1Clk uint32 // timers on APB1
	Tim2Clk uint32 // timers on APB2

	SysTickClk uint32
}

// Compute derives every clock in the tree from cfg. It never touches
// hardware and never fails; legality is Validate's job. Enumerated fields
// must hold named values.
func Compute(cfg Config, chip Chip) Speeds {
	var s Speeds

	ref := chip.HSI
	if cfg.PLLSource == PLLFromHSE {
		ref = chip.HSE
	}
	s.PLLInput = mathx.DivOrZero(ref, uint32(cfg.PLLM))
	s.VCO = uint32(mathx.Clamp(uint64(s.PLLInput)*uint64(cfg.PLLN), 0, math.MaxUint32))
	s.PLLOutput = s.VCO / cfg.PLLP.Scale()
	s.PLLAux = mathx.DivOrZero(s.VCO, uint32(cfg.PLLQ))

	switch cfg.SysSource {
	case SourceHSI:
		s.SysClk = chip.HSI
	case SourceHSE:
		s.SysClk = chip.HSE
	case SourcePLL:
		s.SysClk = s.PLLOutput
	}

	s.HCLK = s.SysClk / cfg.AHB.Scale()
	apb1, apb2 := cfg.APB1.Scale(), cfg.APB2.Scale()
	s.PCLK1 = s.HCLK / apb1
	s.PCLK2 = s.HCLK / apb2
	s.Tim1Clk = timerClock(s.HCLK, s.PCLK1, apb1, cfg.TimPre)
	s.Tim2Clk = timerClock(s.HCLK, s.PCLK2, apb2, cfg.TimPre)

	if cfg.SysTick == SysTickHCLK {
		s.SysTickClk = s.HCLK
	} else {
		s.SysTickClk = s.HCLK / 8
	}
	return s
}

// timerClock applies the RCC timer clock multiplier (RM0090 DCKCFGR TIMPRE).
// With TIMPRE set the timers run at HCLK while the APB factor is at most 4,
// otherwise at 4x PCLK. With TIMPRE clear they run at PCLK for factor 1,
// otherwise at 2x PCLK.
func timerClock(hclk, pclk, factor uint32, timpre bool) uint32 {
	if timpre {
		if factor <= 4 {
			return hclk
		}
		return pclk * 4
	}
	if factor == 1 {
		return pclk
	}
	return pclk * 2
}

// SysTickReload returns the SysTick LOAD value for the given tick period.
// Zero means the period is shorter than one SysTick cycle.
func (s Speeds) SysTickReload(period time.Duration) uint32 {
	n := timex.CyclesIn(s.SysTickClk, period)
	if n == 0 {
		return 0
	}
	if n > 1<<24 {
		n = 1 << 24 // 24-bit counter
	}
	return uint32(n - 1)
}
