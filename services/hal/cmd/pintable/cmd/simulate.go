package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"mlxio-go/services/hal/internal/pinmux"
	"mlxio-go/services/hal/internal/platform"
	"mlxio-go/types"
	"mlxio-go/x/conv"

	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

var (
	backendName string
	repeat      int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Apply a board table and check the result",
	Long: `Apply the board table on a host backend.

The sim backend models the STM32F4 GPIO banks from their reset values. After
applying, every declared pin is checked for mode, pull, speed and level, no
bank may be written before its clock is enabled and every output must first
drive its declared level. The resulting registers are printed per port.

The periph backend drives pins registered with periph.io under their package
labels ("PA4"), e.g. a bench fixture. Bonded pins nobody registered get a
gpiotest fake, so without a fixture this is a dry run through periph.io.
The result is printed per pin but not verified. periph.io has no analog
mode: analog pins become floating digital inputs there, which on real
hardware is not the safe state analog gives on the MCU.

Examples:
  pintable simulate
  pintable simulate --repeat 2       # re-apply and check nothing changed
  pintable simulate --backend periph`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().StringVar(&backendName, "backend", "sim",
		"backend to apply on (sim, periph)")
	simulateCmd.Flags().IntVarP(&repeat, "repeat", "r", 1,
		"number of times to apply the table")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	b, err := selectedBoard()
	if err != nil {
		return err
	}
	p, err := pinmux.BuildPlan(b)
	if err != nil {
		return fmt.Errorf("board %s: %w", b.Name, err)
	}
	if repeat < 1 {
		repeat = 1
	}

	switch backendName {
	case "sim":
		return simulate(p)
	case "periph":
		fakes, err := platform.RegisterDryRun(b.Bonded)
		if err != nil {
			return fmt.Errorf("registering pins: %w", err)
		}
		log.Debug("dry-run pins registered", "count", len(fakes))
		return applyPeriph(p)
	default:
		return fmt.Errorf("unknown backend %q", backendName)
	}
}

func applyPeriph(p pinmux.Plan) error {
	be := platform.NewPeriph(nil)
	for i := 0; i < repeat; i++ {
		if err := pinmux.Apply(be, p); err != nil {
			return err
		}
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PIN\tNAME\tMODE\tLEVEL\tPULL")
	for _, d := range p.Pins {
		if d.Mode == types.ModePeripheral {
			continue
		}
		pin := gpioreg.ByName(d.Label())
		if pin == nil {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", d.Label(), d.Name, d.Mode,
			types.LevelString(pin.Read()), types.PullString(pin.Pull()))
	}
	w.Flush()
	log.Info("applied", "board", p.Board, "backend", "periph", "groups", len(p.Groups))
	return nil
}

func simulate(p pinmux.Plan) error {
	s := platform.NewSim()
	var first [types.NumPorts]platform.Bank
	for i := 0; i < repeat; i++ {
		if err := pinmux.Apply(s, p); err != nil {
			return err
		}
		if i == 0 {
			first = s.Banks()
			continue
		}
		if s.Banks() != first {
			return fmt.Errorf("apply %d changed register state", i+1)
		}
	}
	for _, op := range s.Ops() {
		log.Debug("op", "seq", op.Seq, "kind", op.Kind.String(), "port", op.Port.String(), "mask", op.Mask)
	}
	if err := pinmux.Verify(s, p); err != nil {
		return fmt.Errorf("verification failed:\n%w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PORT\tMODER\tOTYPER\tOSPEEDR\tPUPDR\tODR")
	banks := s.Banks()
	for _, port := range p.Clocks {
		bk := banks[port]
		fmt.Fprintf(w, "GPIO%s\t%s\t%s\t%s\t%s\t%s\n",
			port, reg(bk.MODER), reg(bk.OTYPER), reg(bk.OSPEEDR), reg(bk.PUPDR), reg(bk.ODR))
	}
	w.Flush()
	log.Info("verified", "board", p.Board, "pins", len(p.Pins), "ops", len(s.Ops()), "applies", repeat)
	return nil
}

func reg(v uint32) string {
	var buf [8]byte
	return string(conv.U32Hex(buf[:], v))
}
