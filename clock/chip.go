package clock

// MHz is one megahertz in Hz.
const MHz uint32 = 1_000_000

// Limits are the electrical and timing limits of one chip family.
type Limits struct {
	VCOMin, VCOMax uint32 // inclusive
	PLLInput       uint32 // exact
	PLLOutputMax   uint32

	HCLKMax            uint32 // absolute, overdrive on
	HCLKMaxNoOverdrive uint32
	PCLK1Max           uint32
	PCLK2Max           uint32

	FlashStep       uint32 // one wait state per step of HCLK
	FlashLatencyMax uint32

	// Voltage scaling bands: HCLK <= VOSBand[i] selects VOSBits[i].
	VOSBand [3]uint32
	VOSBits [3]uint32

	PLLMMin, PLLMMax uint8
	PLLNMin, PLLNMax uint16
	PLLQMin, PLLQMax uint8
}

// Chip carries the nominal oscillator frequencies and limits of a target.
// Boards with a different crystal copy STM32F4 and change HSE.
type Chip struct {
	HSI    uint32
	HSE    uint32
	Limits Limits
}

// STM32F4 is the STM32F42x/43x reference (RM0090): 16 MHz HSI, 8 MHz
// externally buffered HSE in bypass mode.
var STM32F4 = Chip{
	HSI: 16 * MHz,
	HSE: 8 * MHz,
	Limits: Limits{
		VCOMin:       100 * MHz,
		VCOMax:       432 * MHz,
		PLLInput:     2 * MHz,
		PLLOutputMax: 180 * MHz,

		HCLKMax:            180 * MHz,
		HCLKMaxNoOverdrive: 168 * MHz,
		PCLK1Max:           45 * MHz,
		PCLK2Max:           90 * MHz,

		FlashStep:       30 * MHz,
		FlashLatencyMax: 5,

		VOSBand: [3]uint32{120 * MHz, 144 * MHz, 168 * MHz},
		VOSBits: [3]uint32{0b01, 0b10, 0b11},

		PLLMMin: 2, PLLMMax: 63,
		PLLNMin: 50, PLLNMax: 432,
		PLLQMin: 2, PLLQMax: 15,
	},
}
