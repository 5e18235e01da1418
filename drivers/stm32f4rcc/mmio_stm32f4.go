//go:build stm32f4

package stm32f4rcc

import (
	"runtime/volatile"
	"unsafe"
)

// mmio is the memory-mapped register file of the running chip.
type mmio struct{}

func reg32(r Reg) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(Addr[r]))
}

func (mmio) Load(r Reg) uint32     { return reg32(r).Get() }
func (mmio) Store(r Reg, v uint32) { reg32(r).Set(v) }

// Open returns the RCC of the running chip.
func Open() *RCC { return New(mmio{}) }
