package stm32f4rcc

import "clocktree-go/clock"

// WordIO is raw 32-bit register access.
type WordIO interface {
	Load(r Reg) uint32
	Store(r Reg, v uint32)
}

// RCC implements clock.Registers over a WordIO.
type RCC struct {
	io WordIO
}

var _ clock.Registers = (*RCC)(nil)

// New returns an RCC driving io.
func New(io WordIO) *RCC { return &RCC{io: io} }

// Get reads f right-aligned.
func (d *RCC) Get(f clock.Field) uint32 {
	l := fields[f]
	return (d.io.Load(l.reg) & l.mask()) >> l.pos
}

// Update performs one read-modify-write per register touched. Callers
// group fields of one register; a call spanning registers is split in order.
func (d *RCC) Update(vals ...clock.FieldValue) {
	if len(vals) == 0 {
		return
	}
	cur := fields[vals[0].F].reg
	v := d.io.Load(cur)
	for _, fv := range vals {
		l := fields[fv.F]
		if l.reg != cur {
			d.io.Store(cur, v)
			cur = l.reg
			v = d.io.Load(cur)
		}
		v = modifyField(v, l, fv.V)
	}
	d.io.Store(cur, v)
}

// WriteEnable stores mask without reading the register first.
func (d *RCC) WriteEnable(r clock.EnableReg, mask uint32) {
	d.io.Store(enableRegs[r], mask)
}

// modifyField replaces the bits of l in v. Values wider than the field
// are truncated to it.
func modifyField(v uint32, l layout, x uint32) uint32 {
	m := l.mask()
	return (v &^ m) | ((x << l.pos) & m)
}
