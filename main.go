package main

import (
	"time"

	"clocktree-go/boards"
	"clocktree-go/clock"
	"clocktree-go/console"
	"clocktree-go/drivers/stm32f4rcc"
)

func main() {
	println("boot")

	b := boards.Selected
	q := clock.New(stm32f4rcc.Open(), b.Chip)
	q.Trace = func(s clock.Step) { println("Info: clock", s.String()) }

	s, err := q.Configure(b.Clock)
	if err != nil {
		println("Error:", err.Error())
		halt()
	}

	// The console baud divisor depends on the PCLK just programmed.
	con := console.New(openConsole(b, s))
	con.Printf("board %s\r\n", b.Name)
	con.Report(s)
	println("Info: systick reload", s.SysTickReload(time.Millisecond))

	tick := time.NewTicker(1 * time.Second)
	defer tick.Stop()

	for t := range tick.C {
		println(t.Format("15:04:05"), "Heartbeat")
	}
}

// halt parks the core after a failed bring-up.
func halt() {
	for {
		time.Sleep(time.Hour)
	}
}
