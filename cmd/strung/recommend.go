package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/strung/pkg/strung/catalog"
	"github.com/jamesainslie/strung/pkg/strung/pitch"
	"github.com/jamesainslie/strung/pkg/strung/recommend"
	"github.com/jamesainslie/strung/pkg/strung/tension"
	"github.com/jamesainslie/strung/pkg/strung/types"
)

var (
	recClass string
	recScale float64
	recNote  string
	recMin   float64
	recMax   float64
	recList  bool

	recommendCmd = &cobra.Command{
		Use:   "recommend",
		Short: "Recommend a gauge for a target tension window",
		Long: `Recommend the catalog gauge whose tension lands inside the target window,
closest to its midpoint. When no gauge can reach the window the closest
one is returned and flagged.

The window defaults to the configured target for the class.

Examples:
  strung recommend -c plain -s 25.5 -n E4
  strung recommend -c wound -s 27 -n B1 --min 16 --max 20 --list`,
		RunE: runRecommend,
	}
)

func init() {
	recommendCmd.Flags().StringVarP(&recClass, "class", "c", "plain", "string class (plain or wound)")
	recommendCmd.Flags().Float64VarP(&recScale, "scale", "s", 25.5, "scale length in inches")
	recommendCmd.Flags().StringVarP(&recNote, "note", "n", "", "note token, e.g. E4 or Bb3 (required)")
	recommendCmd.Flags().Float64Var(&recMin, "min", 0, "target window low bound in pounds")
	recommendCmd.Flags().Float64Var(&recMax, "max", 0, "target window high bound in pounds")
	recommendCmd.Flags().BoolVar(&recList, "list", false, "also list every in-range gauge")
	_ = recommendCmd.MarkFlagRequired("note")

	rootCmd.AddCommand(recommendCmd)
}

// runRecommend prints the recommended gauge and its tension.
func runRecommend(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}

	class, err := types.ParseStringClass(recClass)
	if err != nil {
		return err
	}
	freq, err := pitch.NoteToFreq(recNote)
	if err != nil {
		return err
	}

	target := env.cfg.PlainTarget()
	if class == types.Wound {
		target = env.cfg.WoundTarget()
	}
	if cmd.Flags().Changed("min") {
		target.Min = recMin
	}
	if cmd.Flags().Changed("max") {
		target.Max = recMax
	}

	gauge := recommend.Recommend(env.catalog, class, recScale, freq, target)
	t := tension.Tension(env.catalog, gauge, class, recScale, freq)

	fmt.Printf("%s  %.2f lb", catalog.FormatGauge(gauge), t)
	if !target.Contains(t) {
		fmt.Printf("  (no gauge reaches [%.1f, %.1f]; closest shown)", target.Min, target.Max)
	}
	fmt.Println()

	if recList {
		inRange := recommend.InRange(env.catalog, class, recScale, freq, target)
		if len(inRange) == 0 {
			printInfo("no gauges in range")
			return nil
		}
		for _, g := range inRange {
			printInfo("  %s  %.2f lb", catalog.FormatGauge(g),
				tension.Tension(env.catalog, g, class, recScale, freq))
		}
	}
	return nil
}
