//go:build !stm32f4

package stm32f4rcc

// Open returns an RCC over a fresh simulator when not running on the chip.
func Open() *RCC { return New(NewSim()) }
