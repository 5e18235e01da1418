// Package boards holds named clock setups for known STM32F4 boards.
package boards

import (
	"clocktree-go/clock"
)

// Board pairs the chip as fitted (HSE frequency) with the clock tree to
// program and the console baud rate.
type Board struct {
	Name        string
	Chip        clock.Chip
	Clock       clock.Config
	ConsoleBaud uint32
}

const (
	ahb1GPIOA   = 1 << 0
	apb1USART2  = 1 << 17
	apb1PWR     = 1 << 28
	apb2SYSCFG  = 1 << 14
	defaultBaud = 115200
)

// Console on USART2 (PA2/PA3). PWREN stays set because enable masks are
// written whole.
var consoleEnables = clock.PeripheralEnables{
	AHB1: ahb1GPIOA,
	APB1: apb1PWR | apb1USART2,
	APB2: apb2SYSCFG,
}

// Disco168 runs an 8 MHz bypassed HSE up to 168 MHz, the fastest point
// without overdrive.
var Disco168 = Board{
	Name: "disco168",
	Chip: clock.STM32F4,
	Clock: clock.Config{
		SysSource: clock.SourcePLL,
		PLLSource: clock.PLLFromHSE,
		PLLM:      4,
		PLLN:      168,
		PLLP:      clock.PLLPDiv2,
		PLLQ:      7,
		AHB:       clock.AHBDiv1,
		APB1:      clock.APBDiv4,
		APB2:      clock.APBDiv2,
		SysTick:   clock.SysTickHCLKDiv8,
		Enables:   consoleEnables,
	},
	ConsoleBaud: defaultBaud,
}

// Disco160 keeps PCLK1 at 40 MHz for an exact 115200 divisor.
var Disco160 = Board{
	Name: "disco160",
	Chip: clock.STM32F4,
	Clock: clock.Config{
		SysSource: clock.SourcePLL,
		PLLSource: clock.PLLFromHSE,
		PLLM:      4,
		PLLN:      160,
		PLLP:      clock.PLLPDiv2,
		PLLQ:      7,
		AHB:       clock.AHBDiv1,
		APB1:      clock.APBDiv4,
		APB2:      clock.APBDiv2,
		SysTick:   clock.SysTickHCLKDiv8,
		Enables:   consoleEnables,
	},
	ConsoleBaud: defaultBaud,
}

// HSI84 needs no crystal: 16 MHz HSI / 8 * 168 / 4.
var HSI84 = Board{
	Name: "hsi84",
	Chip: clock.STM32F4,
	Clock: clock.Config{
		SysSource: clock.SourcePLL,
		PLLSource: clock.PLLFromHSI,
		PLLM:      8,
		PLLN:      168,
		PLLP:      clock.PLLPDiv4,
		PLLQ:      7,
		AHB:       clock.AHBDiv1,
		APB1:      clock.APBDiv2,
		APB2:      clock.APBDiv1,
		SysTick:   clock.SysTickHCLK,
		Enables:   consoleEnables,
	},
	ConsoleBaud: defaultBaud,
}

// HSI16 is the reset clock with the PLL stopped. The dividers are never
// programmed but still have to describe a legal PLL.
var HSI16 = Board{
	Name: "hsi16",
	Chip: clock.STM32F4,
	Clock: clock.Config{
		SysSource: clock.SourceHSI,
		PLLSource: clock.PLLOff,
		PLLM:      8,
		PLLN:      168,
		PLLP:      clock.PLLPDiv4,
		PLLQ:      7,
		SysTick:   clock.SysTickHCLK,
		Enables:   consoleEnables,
	},
	ConsoleBaud: defaultBaud,
}

var all = []*Board{&Disco168, &Disco160, &HSI84, &HSI16}

// All returns every preset in a stable order.
func All() []Board {
	out := make([]Board, len(all))
	for i, b := range all {
		out[i] = *b
	}
	return out
}

// Lookup returns the preset called name.
func Lookup(name string) (Board, bool) {
	for _, b := range all {
		if b.Name == name {
			return *b, true
		}
	}
	return Board{}, false
}
