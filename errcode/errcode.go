package errcode

// Code is a stable, reportable error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK            Code = "ok"
	InvalidParams Code = "invalid_params"
	Timeout       Code = "timeout"

	// Clock tree constraint violations.
	PLLDisabled              Code = "pll_disabled"
	InvalidPLLDivider        Code = "invalid_pll_divider"
	InvalidVCO               Code = "invalid_vco"
	InvalidPLLInput          Code = "invalid_pll_input"
	PLLOutputTooHigh         Code = "pll_output_too_high"
	HCLKTooHigh              Code = "hclk_too_high"
	InvalidFinalBusFrequency Code = "invalid_final_bus_frequency"
	PCLK1TooHigh             Code = "pclk1_too_high"
	PCLK2TooHigh             Code = "pclk2_too_high"
	InvalidFlashLatency      Code = "invalid_flash_latency"

	// Hardware handshakes that never completed.
	OscNotReady        Code = "osc_not_ready"
	PLLNotReady        Code = "pll_not_ready"
	PLLNotStopped      Code = "pll_not_stopped"
	ClockSwitchTimeout Code = "clock_switch_timeout"

	Error Code = "error" // generic fallback
)

// E keeps context and a cause alongside a Code.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}

// Unwrap returns the cause, or the Code itself so errors.Is(err, code) holds.
func (e *E) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.C
}
func (e *E) Code() Code { return e.C }

// Is matches e against its own Code even when a cause is attached.
func (e *E) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.C
}

// Wrap builds an *E for op with a detail message.
func Wrap(c Code, op, msg string) *E {
	return &E{C: c, Op: op, Msg: msg}
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}

// IsHardware reports whether c names a ready-flag handshake that timed out,
// as opposed to a configuration rejected before any register write.
func IsHardware(c Code) bool {
	switch c {
	case OscNotReady, PLLNotReady, PLLNotStopped, ClockSwitchTimeout, Timeout:
		return true
	}
	return false
}
