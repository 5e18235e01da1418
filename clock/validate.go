package clock

import (
	"clocktree-go/errcode"
	"clocktree-go/x/conv"
	"clocktree-go/x/mathx"
)

const opValidate = "clock.validate"

// violation wraps code with the offending frequency. Formatting goes through
// x/conv so MCU builds stay free of fmt.
func violation(c errcode.Code, what string, hz uint32) error {
	var buf [20]byte
	return errcode.Wrap(c, opValidate, what+" "+string(conv.Utoa(buf[:], uint64(hz))))
}

// Validate checks a computed tree against lim and returns the first violated
// constraint, or nil. It never clamps. The PLL frequency checks apply even
// while the PLL is off; the register ranges of its raw fields only matter
// once it is started.
func Validate(cfg Config, s Speeds, lim Limits) error {
	if err := cfg.check(); err != nil {
		return err
	}
	if cfg.SysSource == SourcePLL && !cfg.PLLSource.Enabled() {
		return errcode.Wrap(errcode.PLLDisabled, opValidate, "sysclk selects pll")
	}

	if cfg.PLLSource.Enabled() {
		if !mathx.Between(cfg.PLLM, lim.PLLMMin, lim.PLLMMax) {
			return violation(errcode.InvalidPLLDivider, "pllm", uint32(cfg.PLLM))
		}
		if !mathx.Between(cfg.PLLN, lim.PLLNMin, lim.PLLNMax) {
			return violation(errcode.InvalidPLLDivider, "plln", uint32(cfg.PLLN))
		}
		if !mathx.Between(cfg.PLLQ, lim.PLLQMin, lim.PLLQMax) {
			return violation(errcode.InvalidPLLDivider, "pllq", uint32(cfg.PLLQ))
		}
	}
	if !mathx.Between(s.VCO, lim.VCOMin, lim.VCOMax) {
		return violation(errcode.InvalidVCO, "vco", s.VCO)
	}
	if s.PLLInput != lim.PLLInput {
		return violation(errcode.InvalidPLLInput, "pll input", s.PLLInput)
	}
	if s.PLLOutput > lim.PLLOutputMax {
		return violation(errcode.PLLOutputTooHigh, "pll output", s.PLLOutput)
	}

	if s.HCLK > lim.HCLKMax {
		return violation(errcode.HCLKTooHigh, "hclk", s.HCLK)
	}
	if s.HCLK > lim.HCLKMaxNoOverdrive && !cfg.Overdrive {
		return violation(errcode.InvalidFinalBusFrequency, "hclk without overdrive", s.HCLK)
	}
	if s.PCLK2 > lim.PCLK2Max {
		return violation(errcode.PCLK2TooHigh, "pclk2", s.PCLK2)
	}
	if s.PCLK1 > lim.PCLK1Max {
		return violation(errcode.PCLK1TooHigh, "pclk1", s.PCLK1)
	}
	if n := FlashLatency(s.HCLK, lim); n > lim.FlashLatencyMax {
		return violation(errcode.InvalidFlashLatency, "flash latency", n)
	}
	return nil
}

// FlashLatency is the number of flash wait states needed at hclk.
func FlashLatency(hclk uint32, lim Limits) uint32 {
	if lim.FlashStep == 0 {
		return 0
	}
	return hclk / lim.FlashStep
}

// VoltageScale returns the PWR_CR VOS bits for hclk. Frequencies above the
// top band only pass validation with overdrive and share its setting.
func VoltageScale(hclk uint32, lim Limits) uint32 {
	for i, band := range lim.VOSBand {
		if hclk <= band {
			return lim.VOSBits[i]
		}
	}
	return lim.VOSBits[len(lim.VOSBits)-1]
}

// Plan computes and validates cfg for chip without touching hardware.
// When only validation fails the computed tree is still returned, for
// diagnostics; it must not be programmed.
func Plan(cfg Config, chip Chip) (Speeds, error) {
	if err := cfg.check(); err != nil {
		return Speeds{}, err
	}
	s := Compute(cfg, chip)
	return s, Validate(cfg, s, chip.Limits)
}
