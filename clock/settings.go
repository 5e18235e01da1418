// Package clock derives, validates and programs the STM32F4 clock tree.
//
// The package splits into a pure half and a hardware half:
//
//   - Compute turns a Config into a Speeds snapshot (no side effects).
//   - Validate checks a snapshot against the chip limits (fail fast).
//   - Sequencer programs oscillators, PLL, flash latency, prescalers and the
//     clock switch through the Registers interface, in an order that never
//     overclocks a bus or under-provisions flash wait states.
//
// Nothing here allocates on the success path; errors are errcode values.
package clock

import "clocktree-go/errcode"

// ClockSource selects SYSCLK. Values match the RCC_CFGR SW/SWS encoding.
type ClockSource uint8

const (
	SourceHSI ClockSource = 0
	SourceHSE ClockSource = 1
	SourcePLL ClockSource = 2
)

// PLLSource selects the PLL reference, or leaves the PLL off.
type PLLSource uint8

const (
	PLLOff PLLSource = iota
	PLLFromHSE
	PLLFromHSI
)

// Enabled reports whether the PLL is to be programmed and started.
func (p PLLSource) Enabled() bool { return p == PLLFromHSE || p == PLLFromHSI }

// PLLP is the main PLL output divider. Values match the PLLCFGR PLLP encoding.
type PLLP uint8

const (
	PLLPDiv2 PLLP = 0b00
	PLLPDiv4 PLLP = 0b01
	PLLPDiv6 PLLP = 0b10
	PLLPDiv8 PLLP = 0b11
)

// AHBPrescaler divides SYSCLK into HCLK. Values match the CFGR HPRE encoding.
type AHBPrescaler uint8

const (
	AHBDiv1   AHBPrescaler = 0b0000
	AHBDiv2   AHBPrescaler = 0b1000
	AHBDiv4   AHBPrescaler = 0b1001
	AHBDiv8   AHBPrescaler = 0b1010
	AHBDiv16  AHBPrescaler = 0b1011
	AHBDiv64  AHBPrescaler = 0b1100
	AHBDiv128 AHBPrescaler = 0b1101
	AHBDiv256 AHBPrescaler = 0b1110
	AHBDiv512 AHBPrescaler = 0b1111
)

// APBPrescaler divides HCLK into PCLK1/PCLK2. Values match the CFGR PPREx encoding.
type APBPrescaler uint8

const (
	APBDiv1  APBPrescaler = 0b000
	APBDiv2  APBPrescaler = 0b100
	APBDiv4  APBPrescaler = 0b101
	APBDiv8  APBPrescaler = 0b110
	APBDiv16 APBPrescaler = 0b111
)

// SysTickSource selects the SysTick input tap. Values match STK_CTRL CLKSOURCE.
type SysTickSource uint8

const (
	SysTickHCLKDiv8 SysTickSource = 0
	SysTickHCLK     SysTickSource = 1
)

// PeripheralEnables are written verbatim to the five RCC enable registers.
// The bits are owned by the caller; this package does not interpret them.
type PeripheralEnables struct {
	AHB1, AHB2, AHB3 uint32
	APB1, APB2       uint32
}

// Config is one clock tree choice. It is read for the duration of a single
// Configure call and never retained.
//
// input  = HSE || HSI
// input / PLLM          must be exactly the PLL input target (2 MHz)
// VCO = input * PLLN    must lie within the VCO range
// PLL = VCO / PLLP      must not exceed the PLL output ceiling
// aux = VCO / PLLQ      48 MHz for USB/SDIO (reported, not enforced)
type Config struct {
	SysSource ClockSource
	PLLSource PLLSource

	PLLM uint8  // 2..63
	PLLN uint16 // 50..432
	PLLP PLLP
	PLLQ uint8 // 2..15

	AHB  AHBPrescaler
	APB1 APBPrescaler
	APB2 APBPrescaler

	TimPre    bool
	SysTick   SysTickSource
	Overdrive bool // overdrive already enabled by the caller

	Enables PeripheralEnables
}

// check rejects enumerated fields outside their named sets.
func (c *Config) check() error {
	switch {
	case !c.SysSource.Valid():
		return errcode.Wrap(errcode.InvalidParams, opValidate, "sys source")
	case !c.PLLSource.Valid():
		return errcode.Wrap(errcode.InvalidParams, opValidate, "pll source")
	case !c.PLLP.Valid():
		return errcode.Wrap(errcode.InvalidParams, opValidate, "pllp")
	case !c.AHB.Valid():
		return errcode.Wrap(errcode.InvalidParams, opValidate, "ahb prescaler")
	case !c.APB1.Valid():
		return errcode.Wrap(errcode.InvalidParams, opValidate, "apb1 prescaler")
	case !c.APB2.Valid():
		return errcode.Wrap(errcode.InvalidParams, opValidate, "apb2 prescaler")
	case !c.SysTick.Valid():
		return errcode.Wrap(errcode.InvalidParams, opValidate, "systick source")
	}
	return nil
}

// usesHSE reports whether SYSCLK or the PLL reference needs the external oscillator.
func (c *Config) usesHSE() bool { return c.SysSource == SourceHSE || c.PLLSource == PLLFromHSE }

// usesHSI reports whether SYSCLK or the PLL reference needs the internal oscillator.
func (c *Config) usesHSI() bool { return c.SysSource == SourceHSI || c.PLLSource == PLLFromHSI }
