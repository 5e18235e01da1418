//go:build stm32f4

package main

import (
	"machine"

	"tinygo.org/x/drivers"

	"clocktree-go/boards"
	"clocktree-go/clock"
	"clocktree-go/console"
)

// openConsole brings up USART2 and replaces the divisor machine derived from
// its own clock assumption with one from the measured PCLK1.
func openConsole(b *boards.Board, s clock.Speeds) drivers.UART {
	u := machine.DefaultUART
	u.Configure(machine.UARTConfig{BaudRate: b.ConsoleBaud})
	brr, err := console.BRR(s.PCLK1, b.ConsoleBaud)
	if err != nil {
		println("Error:", err.Error())
		return u
	}
	u.Bus.BRR.Set(brr)
	return u
}
