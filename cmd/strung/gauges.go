package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/strung/pkg/strung/catalog"
	"github.com/jamesainslie/strung/pkg/strung/types"
)

var (
	gaugesClass string

	gaugesCmd = &cobra.Command{
		Use:   "gauges",
		Short: "List the gauge catalog",
		Long: `List every catalog gauge and its unit weight, in ascending gauge order.
Plain gauges span the thin end of the range; wound gauges the thick,
wrapped end.`,
		RunE: runGauges,
	}
)

func init() {
	gaugesCmd.Flags().StringVarP(&gaugesClass, "class", "c", "", "limit to one class (plain or wound)")

	rootCmd.AddCommand(gaugesCmd)
}

// runGauges lists catalog entries for one or both classes.
func runGauges(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}

	classes := []types.StringClass{types.Plain, types.Wound}
	if gaugesClass != "" {
		class, err := types.ParseStringClass(gaugesClass)
		if err != nil {
			return err
		}
		classes = []types.StringClass{class}
	}

	for _, class := range classes {
		fmt.Printf("%s:\n", class)
		for _, e := range env.catalog.Entries(class) {
			fmt.Printf("  %-7s %.8f\n", catalog.FormatGauge(e.Gauge), e.UnitWeight)
		}
	}
	return nil
}
