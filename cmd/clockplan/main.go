// Command clockplan validates STM32F4 clock trees on the host and replays
// the programming sequence against the register simulator.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "clockplan",
		Short:        "Plan and check STM32F4 clock trees",
		Long:         "Compute, validate and dry-run STM32F4 clock configurations from board presets or YAML board files.",
		SilenceUsage: true,
	}
	root.AddCommand(newBoardsCmd(), newCheckCmd(), newPlanCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
