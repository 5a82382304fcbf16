package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"mlxio-go/services/hal/internal/pinmux"
	"mlxio-go/services/hal/internal/platform/boards"
	"mlxio-go/types"

	"github.com/spf13/cobra"
)

var (
	showUnclaimed bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the pin table of a board",
	Long: `List every descriptor of the selected board after validation.

With --all the analog entries added for unclaimed bonded pins are shown too.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List registered boards",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, n := range boards.Names() {
			fmt.Println(n)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(boardsCmd)

	listCmd.Flags().BoolVarP(&showUnclaimed, "all", "a", false,
		"include unclaimed pins filled as analog")
}

func runList(cmd *cobra.Command, args []string) error {
	b, err := selectedBoard()
	if err != nil {
		return err
	}
	p, err := pinmux.BuildPlan(b)
	if err != nil {
		return fmt.Errorf("board %s: %w", b.Name, err)
	}
	pins := p.Pins
	if !showUnclaimed {
		pins = pins[:len(b.Pins)]
	}
	fmt.Printf("Board: %s (%s)\n\n", b.Name, b.MCU)
	writePins(pins)
	return nil
}

func writePins(pins []types.PinDesc) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PIN\tNAME\tMODE\tPULL\tSPEED\tINITIAL\tOWNER")
	for _, d := range pins {
		speed, initial := "-", "-"
		if d.Mode == types.ModeOutput {
			speed, initial = d.Speed.String(), types.LevelString(d.Initial)
		}
		pull := types.PullString(d.Pull)
		if d.Mode == types.ModePeripheral {
			pull = "-"
		}
		owner := d.Owner
		if owner == "" {
			owner = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", d.Label(), d.Name, d.Mode, pull, speed, initial, owner)
	}
	w.Flush()
}
