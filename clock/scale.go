package clock

import "clocktree-go/errcode"

// Scale tables. Every named value has a factor; anything else is a
// programming error caught earlier by Config.check.

// Scale returns the division factor.
func (p PLLP) Scale() uint32 {
	switch p {
	case PLLPDiv2:
		return 2
	case PLLPDiv4:
		return 4
	case PLLPDiv6:
		return 6
	case PLLPDiv8:
		return 8
	}
	panic("clock: unreachable PLLP")
}

// Scale returns the division factor.
func (a AHBPrescaler) Scale() uint32 {
	switch a {
	case AHBDiv1:
		return 1
	case AHBDiv2:
		return 2
	case AHBDiv4:
		return 4
	case AHBDiv8:
		return 8
	case AHBDiv16:
		return 16
	case AHBDiv64:
		return 64
	case AHBDiv128:
		return 128
	case AHBDiv256:
		return 256
	case AHBDiv512:
		return 512
	}
	panic("clock: unreachable AHB prescaler")
}

// Scale returns the division factor.
func (a APBPrescaler) Scale() uint32 {
	switch a {
	case APBDiv1:
		return 1
	case APBDiv2:
		return 2
	case APBDiv4:
		return 4
	case APBDiv8:
		return 8
	case APBDiv16:
		return 16
	}
	panic("clock: unreachable APB prescaler")
}

// Register encodings. The enumerations already carry them.

func (s ClockSource) Bits() uint32   { return uint32(s) }
func (p PLLP) Bits() uint32          { return uint32(p) }
func (a AHBPrescaler) Bits() uint32  { return uint32(a) }
func (a APBPrescaler) Bits() uint32  { return uint32(a) }
func (s SysTickSource) Bits() uint32 { return uint32(s) }

// Bits returns the PLLSRC bit (1 = HSE).
func (p PLLSource) Bits() uint32 {
	if p == PLLFromHSE {
		return 1
	}
	return 0
}

// Closed-set membership.

func (s ClockSource) Valid() bool   { return s <= SourcePLL }
func (p PLLSource) Valid() bool     { return p <= PLLFromHSI }
func (p PLLP) Valid() bool          { return p <= PLLPDiv8 }
func (s SysTickSource) Valid() bool { return s <= SysTickHCLK }

func (a AHBPrescaler) Valid() bool { return a == AHBDiv1 || (a >= AHBDiv2 && a <= AHBDiv512) }
func (a APBPrescaler) Valid() bool { return a == APBDiv1 || (a >= APBDiv2 && a <= APBDiv16) }

// Names, shared by String and the Parse helpers used for board files.

var sourceNames = [...]string{SourceHSI: "hsi", SourceHSE: "hse", SourcePLL: "pll"}
var pllSourceNames = [...]string{PLLOff: "off", PLLFromHSE: "hse", PLLFromHSI: "hsi"}
var pllpNames = [...]string{PLLPDiv2: "div2", PLLPDiv4: "div4", PLLPDiv6: "div6", PLLPDiv8: "div8"}
var sysTickNames = [...]string{SysTickHCLKDiv8: "hclk/8", SysTickHCLK: "hclk"}

var ahbValues = [...]AHBPrescaler{AHBDiv1, AHBDiv2, AHBDiv4, AHBDiv8, AHBDiv16, AHBDiv64, AHBDiv128, AHBDiv256, AHBDiv512}
var apbValues = [...]APBPrescaler{APBDiv1, APBDiv2, APBDiv4, APBDiv8, APBDiv16}

func (s ClockSource) String() string {
	if !s.Valid() {
		return "invalid"
	}
	return sourceNames[s]
}

func (p PLLSource) String() string {
	if !p.Valid() {
		return "invalid"
	}
	return pllSourceNames[p]
}

func (p PLLP) String() string {
	if !p.Valid() {
		return "invalid"
	}
	return pllpNames[p]
}

func (s SysTickSource) String() string {
	if !s.Valid() {
		return "invalid"
	}
	return sysTickNames[s]
}

func (a AHBPrescaler) String() string {
	if !a.Valid() {
		return "invalid"
	}
	return divName(a.Scale())
}

func (a APBPrescaler) String() string {
	if !a.Valid() {
		return "invalid"
	}
	return divName(a.Scale())
}

func divName(n uint32) string {
	var b [3]byte
	i := len(b)
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	return "div" + string(b[i:])
}

func parseErr(what, s string) error {
	return errcode.Wrap(errcode.InvalidParams, "clock.parse", what+" "+s)
}

// ParseClockSource accepts "hsi", "hse" or "pll".
func ParseClockSource(s string) (ClockSource, error) {
	for i, n := range sourceNames {
		if n == s {
			return ClockSource(i), nil
		}
	}
	return 0, parseErr("sys source", s)
}

// ParsePLLSource accepts "off", "hse" or "hsi" ("" means off).
func ParsePLLSource(s string) (PLLSource, error) {
	if s == "" {
		return PLLOff, nil
	}
	for i, n := range pllSourceNames {
		if n == s {
			return PLLSource(i), nil
		}
	}
	return 0, parseErr("pll source", s)
}

// ParsePLLP accepts "div2" .. "div8".
func ParsePLLP(s string) (PLLP, error) {
	for i, n := range pllpNames {
		if n == s {
			return PLLP(i), nil
		}
	}
	return 0, parseErr("pllp", s)
}

// ParseSysTickSource accepts "hclk/8" or "hclk".
func ParseSysTickSource(s string) (SysTickSource, error) {
	for i, n := range sysTickNames {
		if n == s {
			return SysTickSource(i), nil
		}
	}
	return 0, parseErr("systick source", s)
}

// ParseAHBPrescaler accepts "div1" .. "div512" ("" means div1).
func ParseAHBPrescaler(s string) (AHBPrescaler, error) {
	if s == "" {
		return AHBDiv1, nil
	}
	for _, v := range ahbValues {
		if v.String() == s {
			return v, nil
		}
	}
	return 0, parseErr("ahb prescaler", s)
}

// ParseAPBPrescaler accepts "div1" .. "div16" ("" means div1).
func ParseAPBPrescaler(s string) (APBPrescaler, error) {
	if s == "" {
		return APBDiv1, nil
	}
	for _, v := range apbValues {
		if v.String() == s {
			return v, nil
		}
	}
	return 0, parseErr("apb prescaler", s)
}
