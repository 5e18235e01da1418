package main

import (
	"github.com/spf13/cobra"

	"clocktree-go/clock"
	"clocktree-go/drivers/stm32f4rcc"
)

func newPlanCmd() *cobra.Command {
	var (
		src     source
		latency int
		poll    uint32
		deadHSE bool
		deadPLL bool
		writes  bool
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Dry-run the programming sequence on the register simulator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := src.load()
			if err != nil {
				return err
			}
			sim := stm32f4rcc.NewSim()
			sim.Latency = latency
			sim.DeadHSE, sim.DeadPLL = deadHSE, deadPLL

			con := consoleFor(cmd)
			q := clock.New(stm32f4rcc.New(sim), b.Chip)
			q.PollLimit = poll
			q.Trace = func(s clock.Step) {
				con.Printf("%-18s after %d writes\n", s.String(), len(sim.Writes))
			}

			s, err := q.Configure(b.Clock)
			if writes {
				for _, w := range sim.Writes {
					con.Printf("%-12s <- 0x%08X\n", w.Reg.String(), w.Value)
				}
			}
			if err != nil {
				return err
			}
			return con.Report(s)
		},
	}
	src.bind(cmd)
	f := cmd.Flags()
	f.IntVar(&latency, "latency", 0, "simulated reads before a ready flag follows its enable")
	f.Uint32Var(&poll, "poll", 0, "ready-flag poll limit (0 = default)")
	f.BoolVar(&deadHSE, "dead-hse", false, "simulate an HSE that never starts")
	f.BoolVar(&deadPLL, "dead-pll", false, "simulate a PLL that never locks")
	f.BoolVarP(&writes, "writes", "w", false, "list every register store")
	return cmd
}
