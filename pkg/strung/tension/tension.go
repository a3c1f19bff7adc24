// Package tension implements the closed-form string tension model and the
// per-string context resolution that feeds it. All functions are pure and
// read only their arguments plus the immutable catalog.
package tension

import (
	"fmt"

	"github.com/jamesainslie/strung/pkg/strung/catalog"
	"github.com/jamesainslie/strung/pkg/strung/pitch"
	"github.com/jamesainslie/strung/pkg/strung/types"
)

// gravity is the standard gravitational conversion constant in in/s^2.
// With scale in inches and unit weight in lb/inch it makes the result come
// out in pounds-force.
const gravity = 386.4

// FromUnitWeight computes the tension of a string with unit weight mu,
// scale length in inches, and fundamental frequency in Hz.
func FromUnitWeight(mu, scale, freq float64) float64 {
	v := 2 * scale * freq
	return v * v * mu / gravity
}

// Tension computes the tension of a gauge of the given class at the given
// scale length and frequency. A gauge missing from the catalog has unit
// weight 0 and therefore tension 0; downstream range checks flag that as out
// of range rather than this function failing.
func Tension(cat *catalog.Catalog, gauge float64, class types.StringClass, scale, freq float64) float64 {
	return FromUnitWeight(cat.UnitWeight(class, gauge), scale, freq)
}

// ResolveStrings derives the evaluation context for every string of an
// instrument: scale length (with multiscale interpolation), class
// (override or positional default), frequency, and target window.
// Positions beyond the tuning list fall back to E4, matching the
// historical data files; an unparseable note is returned as an error.
func ResolveStrings(inst types.Instrument) ([]types.StringContext, error) {
	scales := inst.Scale.Resolve(inst.Strings)
	classes := types.ResolveClasses(inst.Classes, inst.Strings)

	out := make([]types.StringContext, inst.Strings)
	for i := 0; i < inst.Strings; i++ {
		note := "E4"
		if i < len(inst.Tuning) {
			note = inst.Tuning[i]
		}
		freq, err := pitch.NoteToFreq(note)
		if err != nil {
			return nil, fmt.Errorf("instrument %q string %d: %w", inst.Name, i+1, err)
		}
		out[i] = types.StringContext{
			InstrumentID:   inst.ID,
			InstrumentName: inst.Name,
			Position:       i,
			Note:           note,
			Freq:           freq,
			Scale:          scales[i],
			Class:          classes[i],
			Target:         inst.Target(classes[i]),
		}
	}
	return out, nil
}

// ResolveAll resolves every instrument in order and flattens the contexts.
func ResolveAll(instruments []types.Instrument) ([]types.StringContext, error) {
	var out []types.StringContext
	for _, inst := range instruments {
		ctxs, err := ResolveStrings(inst)
		if err != nil {
			return nil, err
		}
		out = append(out, ctxs...)
	}
	return out, nil
}
