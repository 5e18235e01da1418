package main

import (
	"github.com/spf13/cobra"

	"clocktree-go/clock"
	"clocktree-go/console"
)

func newCheckCmd() *cobra.Command {
	var src source
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a clock tree and print the derived frequencies",
		Long:  "Compute every derived frequency for the board and check it against the chip limits. The tree is printed even when it is rejected.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := src.load()
			if err != nil {
				return err
			}
			s, verr := clock.Plan(b.Clock, b.Chip)
			con := consoleFor(cmd)
			con.Printf("board %s (hse %d Hz)\n", b.Name, b.Chip.HSE)
			if err := con.Report(s); err != nil {
				return err
			}
			if verr != nil {
				return verr
			}
			lim := b.Chip.Limits
			con.Printf("flash latency %d\n", clock.FlashLatency(s.HCLK, lim))
			con.Printf("vos %d\n", clock.VoltageScale(s.HCLK, lim))
			if brr, err := console.BRR(s.PCLK1, b.ConsoleBaud); err == nil {
				con.Printf("usart brr 0x%X (%d baud)\n", brr, console.Baud(s.PCLK1, brr))
			} else {
				con.Printf("usart brr: %s\n", err.Error())
			}
			return nil
		},
	}
	src.bind(cmd)
	return cmd
}
