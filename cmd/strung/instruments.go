package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/strung/pkg/strung/types"
)

var instrumentsCmd = &cobra.Command{
	Use:   "instruments",
	Short: "List the defined instruments",
	Long: `List every instrument in the instruments file with its string count,
scale length, tuning, and target tension windows. Edit the file directly
to add or change instruments.`,
	RunE: runInstruments,
}

func init() {
	rootCmd.AddCommand(instrumentsCmd)
}

// runInstruments lists the stored instruments.
func runInstruments(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}

	instruments, err := env.store.LoadInstruments()
	if err != nil {
		return err
	}
	if len(instruments) == 0 {
		printInfo("no instruments defined in %s", env.cfg.InstrumentsPath)
		return nil
	}

	for _, inst := range instruments {
		fmt.Printf("%s\n", inst.Name)
		fmt.Printf("  strings: %d  scale: %s\n", inst.Strings, formatScale(inst.Scale))
		fmt.Printf("  tuning:  %s\n", strings.Join(inst.Tuning, " "))
		fmt.Printf("  targets: plain [%.1f, %.1f] lb  wound [%.1f, %.1f] lb\n",
			inst.TargetPlain.Min, inst.TargetPlain.Max,
			inst.TargetWound.Min, inst.TargetWound.Max)
	}
	return nil
}

// formatScale renders a scale length, showing the fan for multiscale.
func formatScale(s types.Scale) string {
	if s.Multiscale() {
		return fmt.Sprintf("%.2f\"-%.2f\" multiscale", s.Treble, s.Bass)
	}
	return fmt.Sprintf("%.2f\"", s.Treble)
}
