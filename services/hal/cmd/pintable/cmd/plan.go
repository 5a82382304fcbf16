package cmd

import (
	"fmt"

	"mlxio-go/services/hal/internal/pinmux"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the ordered backend calls for a board",
	Long: `Print the calls InitializePins makes, in order: bank clocks, output
level presets, then one configure call per port group.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	b, err := selectedBoard()
	if err != nil {
		return err
	}
	p, err := pinmux.BuildPlan(b)
	if err != nil {
		return fmt.Errorf("board %s: %w", b.Name, err)
	}
	log.Debug("plan built", "clocks", len(p.Clocks), "presets", len(p.Presets), "groups", len(p.Groups))
	for _, s := range p.Steps() {
		fmt.Println(s)
	}
	return nil
}
