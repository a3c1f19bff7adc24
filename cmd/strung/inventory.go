package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/strung/pkg/strung/output"
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Report gauge usage and consolidation options",
	Long: `Show every gauge in use across all instruments: the per-instrument
tension table and the usage counts per (gauge, class) pair. Gauges used
by only one string get a swap proposal onto an already-common gauge,
with the tension change and, when out of range, the window relaxation
that would be needed.`,
	RunE: runInventory,
}

func init() {
	rootCmd.AddCommand(inventoryCmd)
}

// runInventory renders the inventory report for the stored instruments
// and selections.
func runInventory(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	return renderInventory(env)
}

// renderInventory builds and prints the report. The watch command reuses it
// on every file change.
func renderInventory(env *environment) error {
	instruments, err := env.store.LoadInstruments()
	if err != nil {
		return err
	}
	if len(instruments) == 0 {
		printInfo("no instruments defined; run 'strung config init' to create a starter file")
		return nil
	}
	selections, err := env.store.LoadSelections()
	if err != nil {
		return err
	}

	result, err := output.Build(env.catalog, instruments, selections)
	if err != nil {
		return err
	}

	formatter, err := output.Get(viper.GetString("output"))
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, output.Available())
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, result); err != nil {
		return err
	}
	fmt.Print(buf.String())
	return nil
}
