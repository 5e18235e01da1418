package clock

// Field names one bit-field of the clock, power, flash or SysTick
// controller. The driver maps each to a register, position and width.
type Field uint8

const (
	FieldHSION Field = iota
	FieldHSIRDY
	FieldHSEON
	FieldHSERDY
	FieldHSEBYP
	FieldPLLON
	FieldPLLRDY

	FieldPLLM
	FieldPLLN
	FieldPLLP
	FieldPLLSRC
	FieldPLLQ

	FieldSW
	FieldSWS
	FieldHPRE
	FieldPPRE1
	FieldPPRE2

	FieldPWREN     // RCC_APB1ENR
	FieldVOS       // PWR_CR
	FieldLatency   // FLASH_ACR
	FieldTIMPRE    // RCC_DCKCFGR
	FieldCLKSOURCE // STK_CTRL

	NumFields
)

var fieldNames = [NumFields]string{
	FieldHSION: "HSION", FieldHSIRDY: "HSIRDY",
	FieldHSEON: "HSEON", FieldHSERDY: "HSERDY", FieldHSEBYP: "HSEBYP",
	FieldPLLON: "PLLON", FieldPLLRDY: "PLLRDY",
	FieldPLLM: "PLLM", FieldPLLN: "PLLN", FieldPLLP: "PLLP", FieldPLLSRC: "PLLSRC", FieldPLLQ: "PLLQ",
	FieldSW: "SW", FieldSWS: "SWS", FieldHPRE: "HPRE", FieldPPRE1: "PPRE1", FieldPPRE2: "PPRE2",
	FieldPWREN: "PWREN", FieldVOS: "VOS", FieldLatency: "LATENCY",
	FieldTIMPRE: "TIMPRE", FieldCLKSOURCE: "CLKSOURCE",
}

func (f Field) String() string {
	if f >= NumFields {
		return "?"
	}
	return fieldNames[f]
}

// FieldValue is one field assignment.
type FieldValue struct {
	F Field
	V uint32
}

// EnableReg identifies one of the five peripheral clock enable registers.
type EnableReg uint8

const (
	EnableAHB1 EnableReg = iota
	EnableAHB2
	EnableAHB3
	EnableAPB1
	EnableAPB2

	NumEnableRegs
)

// Registers is the hardware boundary. Implementations perform each Update
// as a single read-modify-write of the register holding the fields; all
// fields in one call belong to the same register.
type Registers interface {
	// Get returns the current value of f, right-aligned.
	Get(f Field) uint32
	// Update writes the given fields, leaving other bits untouched.
	Update(vals ...FieldValue)
	// WriteEnable writes mask verbatim to an enable register.
	WriteEnable(r EnableReg, mask uint32)
}
