package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/strung/pkg/strung/catalog"
	"github.com/jamesainslie/strung/pkg/strung/pitch"
	"github.com/jamesainslie/strung/pkg/strung/tension"
	"github.com/jamesainslie/strung/pkg/strung/types"
)

var (
	tensionGauge float64
	tensionClass string
	tensionScale float64
	tensionNote  string
	tensionFreq  float64

	tensionCmd = &cobra.Command{
		Use:   "tension",
		Short: "Compute the tension of one string",
		Long: `Compute the mechanical tension in pounds of a single string given its
gauge, construction class, scale length in inches, and pitch.

A gauge missing from the catalog reports tension 0 rather than failing.

Examples:
  strung tension -g 0.042 -c wound -s 25.5 -n E2
  strung tension -g 0.010 -c plain -s 25.5 -f 329.63`,
		RunE: runTension,
	}
)

func init() {
	tensionCmd.Flags().Float64VarP(&tensionGauge, "gauge", "g", 0, "string gauge in inches (required)")
	tensionCmd.Flags().StringVarP(&tensionClass, "class", "c", "plain", "string class (plain or wound)")
	tensionCmd.Flags().Float64VarP(&tensionScale, "scale", "s", 25.5, "scale length in inches")
	tensionCmd.Flags().StringVarP(&tensionNote, "note", "n", "", "note token, e.g. E4 or Bb3")
	tensionCmd.Flags().Float64VarP(&tensionFreq, "freq", "f", 0, "frequency in Hz (overrides --note)")
	_ = tensionCmd.MarkFlagRequired("gauge")

	rootCmd.AddCommand(tensionCmd)
}

// runTension computes and prints one tension value.
func runTension(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}

	class, err := types.ParseStringClass(tensionClass)
	if err != nil {
		return err
	}

	freq := tensionFreq
	if freq == 0 {
		if tensionNote == "" {
			return fmt.Errorf("either --note or --freq is required")
		}
		if freq, err = pitch.NoteToFreq(tensionNote); err != nil {
			return err
		}
	}

	t := tension.Tension(env.catalog, tensionGauge, class, tensionScale, freq)
	if !env.catalog.Has(class, tensionGauge) {
		printInfo("note: gauge %s is not in the %s catalog; tension reported as 0",
			catalog.FormatGauge(tensionGauge), class)
	}
	fmt.Printf("%.2f lb\n", t)
	return nil
}
