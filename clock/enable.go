package clock

// ApplyEnables writes the five caller-supplied masks verbatim. Each is a
// single unconditional register write; bits are not interpreted.
func ApplyEnables(r Registers, e PeripheralEnables) {
	r.WriteEnable(EnableAHB1, e.AHB1)
	r.WriteEnable(EnableAHB2, e.AHB2)
	r.WriteEnable(EnableAHB3, e.AHB3)
	r.WriteEnable(EnableAPB1, e.APB1)
	r.WriteEnable(EnableAPB2, e.APB2)
}
