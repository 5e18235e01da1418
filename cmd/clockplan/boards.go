package main

import (
	"github.com/spf13/cobra"

	"clocktree-go/boards"
	"clocktree-go/clock"
)

func newBoardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "boards",
		Short: "List the built-in board presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			con := consoleFor(cmd)
			for _, b := range boards.All() {
				s, err := clock.Plan(b.Clock, b.Chip)
				status := "ok"
				if err != nil {
					status = err.Error()
				}
				con.Printf("%-10s sysclk=%-4s hclk=%10d %s\n", b.Name, b.Clock.SysSource.String(), s.HCLK, status)
			}
			return nil
		},
	}
}
