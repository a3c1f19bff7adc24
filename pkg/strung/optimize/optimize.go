// Package optimize transforms a selection set into one that is in range
// everywhere and uses as few distinct gauges as possible, while changing as
// little as possible: strings already inside their target window keep their
// gauge, and only true singletons are considered for consolidation.
package optimize

import (
	"github.com/jamesainslie/strung/pkg/strung/catalog"
	"github.com/jamesainslie/strung/pkg/strung/inventory"
	"github.com/jamesainslie/strung/pkg/strung/recommend"
	"github.com/jamesainslie/strung/pkg/strung/tension"
	"github.com/jamesainslie/strung/pkg/strung/types"
)

// Optimize returns a new selection set for the given instruments. The input
// set may be partial or empty; unassigned slots count as tension 0 and are
// filled by the repair pass. The caller's set is never mutated.
//
// Three ordered passes run over a working copy:
//
//  1. Repair: every string whose tension is outside its target window gets
//     the recommended gauge for its own context.
//  2. Consolidate: every singleton gauge with an in-range swap onto an
//     already-common gauge takes it.
//  3. Repeat pass 2 until no swap applies. Each applied swap strictly
//     reduces the singleton count, so the loop terminates.
func Optimize(cat *catalog.Catalog, instruments []types.Instrument, selections types.SelectionSet) (types.SelectionSet, error) {
	working := selections.Clone()

	if err := repair(cat, instruments, working); err != nil {
		return nil, err
	}
	if err := consolidate(cat, instruments, working); err != nil {
		return nil, err
	}
	return working, nil
}

// repair fills unassigned slots and replaces out-of-range gauges, leaving
// in-range strings untouched. A selection's own class wins over the resolved
// one, so recommendation never flips a string between plain and wound.
func repair(cat *catalog.Catalog, instruments []types.Instrument, working types.SelectionSet) error {
	for _, inst := range instruments {
		ctxs, err := tension.ResolveStrings(inst)
		if err != nil {
			return err
		}

		sels := working[inst.ID]
		if len(sels) < inst.Strings {
			grown := make([]types.Selection, inst.Strings)
			copy(grown, sels)
			sels = grown
		}

		for i, ctx := range ctxs {
			class := sels[i].Class
			if class != types.Plain && class != types.Wound {
				class = ctx.Class
			}
			target := inst.Target(class)
			t := tension.Tension(cat, sels[i].Gauge, class, ctx.Scale, ctx.Freq)
			if target.Contains(t) {
				sels[i].Class = class
				continue
			}
			sels[i] = types.Selection{
				Gauge: recommend.Recommend(cat, class, ctx.Scale, ctx.Freq, target),
				Class: class,
			}
		}
		working[inst.ID] = sels
	}
	return nil
}

// consolidate repeatedly absorbs singleton gauges into common ones until a
// fixed point. Only swaps that keep the string inside its target window are
// applied; the analyzer's out-of-range proposals stay report-only.
func consolidate(cat *catalog.Catalog, instruments []types.Instrument, working types.SelectionSet) error {
	for {
		groups, err := inventory.Analyze(cat, instruments, working)
		if err != nil {
			return err
		}

		applied := false
		for _, g := range groups {
			if !g.Singleton() || g.Swap == nil || !g.Swap.InRange {
				continue
			}
			use := g.Uses[0]
			working[use.InstrumentID][use.Position] = types.Selection{
				Gauge: g.Swap.Gauge,
				Class: g.Class,
			}
			applied = true
		}
		if !applied {
			return nil
		}
	}
}
