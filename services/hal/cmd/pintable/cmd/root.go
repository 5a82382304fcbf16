package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"mlxio-go/services/hal/internal/platform/boards"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose   bool
	boardName string

	log = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

var rootCmd = &cobra.Command{
	Use:   "pintable",
	Short: "Boot pin table tools",
	Long: `pintable works with the compiled-in GPIO boot tables:
  - list and plan the pin table of a board
  - apply it to a register simulator and check the result
  - import STM32CubeMX generated code and compare it with a board

Examples:
  pintable list                       # Melexis IO table
  pintable plan --board stm32f4disco  # ordered backend calls
  pintable simulate -v                # apply and verify on the simulator
  pintable import Core/Inc/main.h Core/Src/gpio.c
  pintable diff Core/Inc/main.h Core/Src/gpio.c`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&boardName, "board", "b", "mlx_io", "board table to use")
}

func selectedBoard() (*boards.Board, error) {
	b, ok := boards.ByName(boardName)
	if !ok {
		return nil, fmt.Errorf("unknown board %q (have %v)", boardName, boards.Names())
	}
	log.Debug("board selected", "name", b.Name, "mcu", b.MCU, "pins", len(b.Pins))
	return b, nil
}
