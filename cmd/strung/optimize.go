package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/strung/pkg/strung/catalog"
	"github.com/jamesainslie/strung/pkg/strung/logging"
	"github.com/jamesainslie/strung/pkg/strung/optimize"
	"github.com/jamesainslie/strung/pkg/strung/output"
)

var (
	optimizeWrite bool

	optimizeCmd = &cobra.Command{
		Use:   "optimize",
		Short: "Repair and consolidate gauge selections",
		Long: `Produce a selection set that is inside every string's target window and
uses as few distinct gauges as possible, changing as little as possible:
in-range strings keep their gauge and only singleton gauges are
considered for consolidation. Missing selections are filled in.

The result is printed as a report; --write saves it as the current
selections.`,
		RunE: runOptimize,
	}
)

func init() {
	optimizeCmd.Flags().BoolVarP(&optimizeWrite, "write", "w", false, "save the optimized selections")

	rootCmd.AddCommand(optimizeCmd)
}

// runOptimize optimizes the stored selections and reports the result.
func runOptimize(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	logger := logging.Get("engine")

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
	selections = env.store.Prune(instruments, selections)

	before := selections.DistinctGauges()
	optimized, err := optimize.Optimize(env.catalog, instruments, selections)
	if err != nil {
		return err
	}
	after := optimized.DistinctGauges()
	logger.Info("optimized selections",
		"instruments", len(instruments), "gauges_before", before, "gauges_after", after)

	changes := 0
	for id, sels := range optimized {
		for i, sel := range sels {
			old := selections[id]
			if i >= len(old) || old[i] != sel {
				changes++
				logger.Debug("changed selection",
					"instrument", id, "position", i, "gauge", catalog.FormatGauge(sel.Gauge))
			}
		}
	}

	result, err := output.Build(env.catalog, instruments, optimized)
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

	printInfo("%d string(s) changed, %d distinct gauge(s)", changes, after)

	if optimizeWrite {
		if err := env.store.SaveSelections(optimized); err != nil {
			return err
		}
		printInfo("selections written to %s", env.cfg.SelectionsPath)
	} else if changes > 0 {
		printInfo("run with --write to save")
	}
	return nil
}
