// Package inventory reports how gauges are shared across instruments.
// It groups every current (gauge, class) selection, counts usage, and for
// gauges used by exactly one string proposes a consolidating swap onto a
// gauge that is already common elsewhere. The report is recomputed from
// scratch on every call; nothing is cached between calls.
package inventory

import (
	"math"
	"sort"

	"github.com/jamesainslie/strung/pkg/strung/catalog"
	"github.com/jamesainslie/strung/pkg/strung/tension"
	"github.com/jamesainslie/strung/pkg/strung/types"
)

// Use records one string position occupying a gauge.
type Use struct {
	// InstrumentID identifies the owning instrument.
	InstrumentID string

	// InstrumentName is the owning instrument's display label.
	InstrumentName string

	// Position is the zero-based string position.
	Position int

	// Note is the tuning token at this position.
	Note string

	// Scale is the resolved scale length in inches.
	Scale float64

	// Freq is the resolved frequency in Hz.
	Freq float64

	// Tension is the current tension of this string in pounds.
	Tension float64

	// Target is the acceptable tension window for this string.
	Target types.Range
}

// Swap is a consolidating replacement proposal for a singleton gauge.
type Swap struct {
	// Gauge is the common gauge to switch to.
	Gauge float64

	// Tension is the resulting tension at the singleton's own context.
	Tension float64

	// Delta is the signed tension change, proposed minus current.
	Delta float64

	// InRange reports whether the resulting tension stays inside the
	// string's target window.
	InRange bool

	// RelaxedTarget is the minimally widened window that would admit the
	// swap, with the moved bound rounded outward to the nearest 0.5 lb so
	// the stated requirement is always achievable. Nil when InRange.
	RelaxedTarget *types.Range
}

// Group aggregates all strings currently using one (gauge, class) pair.
type Group struct {
	// Gauge is the shared gauge diameter.
	Gauge float64

	// Class is the string construction class.
	Class types.StringClass

	// Count is the number of strings using this gauge.
	Count int

	// Uses lists the occupying strings.
	Uses []Use

	// Swap is the consolidation proposal for singleton groups. Nil for
	// common groups, and nil for singletons with no same-class common
	// gauge to move to (see NoCandidate).
	Swap *Swap

	// NoCandidate marks a singleton for which no common gauge of the same
	// class exists. Reported as data, never as an error.
	NoCandidate bool
}

// Singleton reports whether exactly one string uses this gauge.
func (g *Group) Singleton() bool {
	return g.Count == 1
}

// groupKey identifies a usage group.
type groupKey struct {
	gauge float64
	class types.StringClass
}

// Analyze builds the usage groups for the given instruments and selections,
// sorted by gauge then class. Unassigned selection slots are skipped.
func Analyze(cat *catalog.Catalog, instruments []types.Instrument, selections types.SelectionSet) ([]Group, error) {
	byKey := make(map[groupKey]*Group)

	for _, inst := range instruments {
		ctxs, err := tension.ResolveStrings(inst)
		if err != nil {
			return nil, err
		}
		sels := selections[inst.ID]
		for i, ctx := range ctxs {
			if i >= len(sels) || !sels[i].Assigned() {
				continue
			}
			sel := sels[i]
			key := groupKey{gauge: sel.Gauge, class: sel.Class}
			g, ok := byKey[key]
			if !ok {
				g = &Group{Gauge: sel.Gauge, Class: sel.Class}
				byKey[key] = g
			}
			g.Count++
			g.Uses = append(g.Uses, Use{
				InstrumentID:   ctx.InstrumentID,
				InstrumentName: ctx.InstrumentName,
				Position:       ctx.Position,
				Note:           ctx.Note,
				Scale:          ctx.Scale,
				Freq:           ctx.Freq,
				Tension:        tension.Tension(cat, sel.Gauge, sel.Class, ctx.Scale, ctx.Freq),
				// The window for the class actually selected, not the
				// resolved default, so overridden strings judge swaps
				// against the right target.
				Target: inst.Target(sel.Class),
			})
		}
	}

	groups := make([]Group, 0, len(byKey))
	for _, g := range byKey {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Gauge != groups[j].Gauge {
			return groups[i].Gauge < groups[j].Gauge
		}
		return groups[i].Class < groups[j].Class
	})

	attachSwaps(cat, groups)
	return groups, nil
}

// attachSwaps fills in consolidation proposals for every singleton group.
// Common gauges are collected first so each singleton scans the same set.
func attachSwaps(cat *catalog.Catalog, groups []Group) {
	var common []Group
	for _, g := range groups {
		if !g.Singleton() {
			common = append(common, g)
		}
	}

	for i := range groups {
		g := &groups[i]
		if !g.Singleton() {
			continue
		}
		swap := bestSwap(cat, g, common)
		if swap == nil {
			g.NoCandidate = true
			continue
		}
		g.Swap = swap
	}
}

// bestSwap finds, among common gauges of the singleton's class, the one
// whose tension at the singleton's own scale and frequency deviates least
// from its current tension. Candidates are scanned in ascending gauge order,
// so ties go to the thinner gauge. Returns nil when no same-class common
// gauge exists.
func bestSwap(cat *catalog.Catalog, g *Group, common []Group) *Swap {
	use := g.Uses[0]

	var best *Swap
	bestDev := math.Inf(1)
	for _, c := range common {
		if c.Class != g.Class {
			continue
		}
		t := tension.Tension(cat, c.Gauge, c.Class, use.Scale, use.Freq)
		dev := math.Abs(t - use.Tension)
		if dev >= bestDev {
			continue
		}
		bestDev = dev
		best = &Swap{
			Gauge:   c.Gauge,
			Tension: t,
			Delta:   t - use.Tension,
			InRange: use.Target.Contains(t),
		}
		if !best.InRange {
			relaxed := relax(use.Target, t)
			best.RelaxedTarget = &relaxed
		}
	}
	return best
}

// relax widens the target window just enough to admit tension t, rounding
// the moved bound outward to the nearest 0.5 lb: the low bound is floored,
// the high bound ceiled, so the reported requirement is never optimistic.
func relax(target types.Range, t float64) types.Range {
	out := target
	if t < target.Min {
		out.Min = math.Floor(t*2) / 2
	} else if t > target.Max {
		out.Max = math.Ceil(t*2) / 2
	}
	return out
}
