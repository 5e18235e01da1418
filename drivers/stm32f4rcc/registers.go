// Package stm32f4rcc maps the clock package's named fields onto the
// STM32F4 RCC, PWR, FLASH and SysTick registers.
package stm32f4rcc

import "clocktree-go/clock"

// Reg identifies one 32-bit register touched by the clock sequencer.
type Reg uint8

const (
	RegCR Reg = iota
	RegPLLCFGR
	RegCFGR
	RegAHB1ENR
	RegAHB2ENR
	RegAHB3ENR
	RegAPB1ENR
	RegAPB2ENR
	RegDCKCFGR
	RegPWRCR
	RegFlashACR
	RegSysTickCTRL

	NumRegs
)

const (
	rccBase     = 0x40023800
	pwrBase     = 0x40007000
	flashBase   = 0x40023C00
	sysTickBase = 0xE000E010
)

// Addr holds the absolute address of each register.
var Addr = [NumRegs]uintptr{
	RegCR:          rccBase + 0x00,
	RegPLLCFGR:     rccBase + 0x04,
	RegCFGR:        rccBase + 0x08,
	RegAHB1ENR:     rccBase + 0x30,
	RegAHB2ENR:     rccBase + 0x34,
	RegAHB3ENR:     rccBase + 0x38,
	RegAPB1ENR:     rccBase + 0x40,
	RegAPB2ENR:     rccBase + 0x44,
	RegDCKCFGR:     rccBase + 0x8C,
	RegPWRCR:       pwrBase + 0x00,
	RegFlashACR:    flashBase + 0x00,
	RegSysTickCTRL: sysTickBase + 0x00,
}

var regNames = [NumRegs]string{
	RegCR: "RCC_CR", RegPLLCFGR: "RCC_PLLCFGR", RegCFGR: "RCC_CFGR",
	RegAHB1ENR: "RCC_AHB1ENR", RegAHB2ENR: "RCC_AHB2ENR", RegAHB3ENR: "RCC_AHB3ENR",
	RegAPB1ENR: "RCC_APB1ENR", RegAPB2ENR: "RCC_APB2ENR", RegDCKCFGR: "RCC_DCKCFGR",
	RegPWRCR: "PWR_CR", RegFlashACR: "FLASH_ACR", RegSysTickCTRL: "STK_CTRL",
}

func (r Reg) String() string {
	if r >= NumRegs {
		return "?"
	}
	return regNames[r]
}

// Reset values after power-on (RM0090). CR has HSION and HSIRDY set plus
// the factory trim; PLLCFGR carries M=16 N=192 P=2 Q=4.
var resetValue = [NumRegs]uint32{
	RegCR:      0x0000_0083,
	RegPLLCFGR: 0x2400_3010,
	RegPWRCR:   0x0000_4000,
	RegAHB1ENR: 0x0010_0000,
}

type layout struct {
	reg   Reg
	pos   uint8
	width uint8
}

func (l layout) mask() uint32 { return (uint32(1)<<l.width - 1) << l.pos }

// fields places every clock.Field.
var fields = [clock.NumFields]layout{
	clock.FieldHSION:  {RegCR, 0, 1},
	clock.FieldHSIRDY: {RegCR, 1, 1},
	clock.FieldHSEON:  {RegCR, 16, 1},
	clock.FieldHSERDY: {RegCR, 17, 1},
	clock.FieldHSEBYP: {RegCR, 18, 1},
	clock.FieldPLLON:  {RegCR, 24, 1},
	clock.FieldPLLRDY: {RegCR, 25, 1},

	clock.FieldPLLM:   {RegPLLCFGR, 0, 6},
	clock.FieldPLLN:   {RegPLLCFGR, 6, 9},
	clock.FieldPLLP:   {RegPLLCFGR, 16, 2},
	clock.FieldPLLSRC: {RegPLLCFGR, 22, 1},
	clock.FieldPLLQ:   {RegPLLCFGR, 24, 4},

	clock.FieldSW:    {RegCFGR, 0, 2},
	clock.FieldSWS:   {RegCFGR, 2, 2},
	clock.FieldHPRE:  {RegCFGR, 4, 4},
	clock.FieldPPRE1: {RegCFGR, 10, 3},
	clock.FieldPPRE2: {RegCFGR, 13, 3},

	clock.FieldPWREN:     {RegAPB1ENR, 28, 1},
	clock.FieldVOS:       {RegPWRCR, 14, 2},
	clock.FieldLatency:   {RegFlashACR, 0, 4},
	clock.FieldTIMPRE:    {RegDCKCFGR, 24, 1},
	clock.FieldCLKSOURCE: {RegSysTickCTRL, 2, 1},
}

var enableRegs = [clock.NumEnableRegs]Reg{
	clock.EnableAHB1: RegAHB1ENR,
	clock.EnableAHB2: RegAHB2ENR,
	clock.EnableAHB3: RegAHB3ENR,
	clock.EnableAPB1: RegAPB1ENR,
	clock.EnableAPB2: RegAPB2ENR,
}

// RegOf returns the register holding f.
func RegOf(f clock.Field) Reg { return fields[f].reg }
