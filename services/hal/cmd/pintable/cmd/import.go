package cmd

import (
	"fmt"
	"os"

	"mlxio-go/services/hal/internal/cubemx"
	"mlxio-go/services/hal/internal/pinmux"

	"github.com/spf13/cobra"
)

var (
	importName string
	goTable    bool
)

var importCmd = &cobra.Command{
	Use:   "import <main.h> <gpio.c>",
	Short: "Import a pin table from STM32CubeMX generated code",
	Long: `Read the pin macros from main.h and MX_GPIO_Init from gpio.c and print
the equivalent pin table. Pins named only in main.h are configured by
peripheral init code and are listed as peripheral pins.

Examples:
  pintable import Core/Inc/main.h Core/Src/gpio.c
  pintable import --go Core/Inc/main.h Core/Src/gpio.c > table.txt`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

var diffCmd = &cobra.Command{
	Use:   "diff <main.h> <gpio.c>",
	Short: "Compare generated code with a compiled board table",
	Long: `Import main.h and gpio.c and compare the effective boot state with the
selected board. Unclaimed pins on either side count as analog, no pull.
Exits non-zero when the tables differ.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(diffCmd)

	importCmd.Flags().StringVarP(&importName, "name", "n", "cubemx", "name of the imported board")
	importCmd.Flags().BoolVar(&goTable, "go", false, "print boards package table entries")
}

func importFiles(name, header, source string) (*cubemx.Result, error) {
	h, err := os.Open(header)
	if err != nil {
		return nil, fmt.Errorf("failed to open header: %w", err)
	}
	defer h.Close()
	s, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	defer s.Close()

	res, err := cubemx.Import(name, h, s)
	if err != nil {
		return nil, err
	}
	log.Debug("imported", "pins", len(res.Board.Pins), "clocks", len(res.Clocks))
	return res, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	res, err := importFiles(importName, args[0], args[1])
	if err != nil {
		return err
	}
	if err := pinmux.Validate(res.Board); err != nil {
		log.Warn("imported table does not validate", "err", err)
	}
	if goTable {
		fmt.Print(cubemx.GoTable(res.Board.Pins))
		return nil
	}
	fmt.Printf("Clocks:")
	for _, p := range res.Clocks {
		fmt.Printf(" GPIO%s", p)
	}
	fmt.Printf("\n\n")
	writePins(res.Board.Pins)
	return nil
}

func runDiff(cmd *cobra.Command, args []string) error {
	b, err := selectedBoard()
	if err != nil {
		return err
	}
	res, err := importFiles("cubemx", args[0], args[1])
	if err != nil {
		return err
	}
	ms, err := pinmux.Diff(b, res.Board)
	if err != nil {
		return err
	}
	if len(ms) == 0 {
		fmt.Printf("%s matches %s, %s\n", b.Name, args[0], args[1])
		return nil
	}
	for _, m := range ms {
		fmt.Printf("%-5s %-8s %s: %q, generated: %q\n", m.Label, m.Field, b.Name, m.Want, m.Got)
	}
	return fmt.Errorf("%d differences", len(ms))
}
