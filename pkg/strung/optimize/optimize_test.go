package optimize

import (
	"reflect"
	"testing"

	"github.com/jamesainslie/strung/pkg/strung/catalog"
	"github.com/jamesainslie/strung/pkg/strung/tension"
	"github.com/jamesainslie/strung/pkg/strung/types"
)

func testInstrument() types.Instrument {
	return types.Instrument{
		ID:          "test-id",
		Name:        "Six String",
		Strings:     6,
		Scale:       types.SingleScale(25.5),
		Tuning:      []string{"E4", "B3", "G3", "D3", "A2", "E2"},
		TargetPlain: types.DefaultPlainTarget,
		TargetWound: types.DefaultWoundTarget,
	}
}

// assertAllInRange fails unless every assigned selection sits inside its
// string's target window.
func assertAllInRange(t *testing.T, cat *catalog.Catalog, instruments []types.Instrument, selections types.SelectionSet) {
	t.Helper()
	for _, inst := range instruments {
		ctxs, err := tension.ResolveStrings(inst)
		if err != nil {
			t.Fatalf("ResolveStrings(%s) error = %v", inst.Name, err)
		}
		for i, ctx := range ctxs {
			sel := selections[inst.ID][i]
			if !sel.Assigned() {
				t.Errorf("%s string %d left unassigned", inst.Name, i+1)
				continue
			}
			tn := tension.Tension(cat, sel.Gauge, sel.Class, ctx.Scale, ctx.Freq)
			if !inst.Target(sel.Class).Contains(tn) {
				t.Errorf("%s string %d: gauge %v at %.2f lb outside %+v",
					inst.Name, i+1, sel.Gauge, tn, inst.Target(sel.Class))
			}
		}
	}
}

func TestOptimize_FillsEmptySet(t *testing.T) {
	cat := catalog.Default()
	inst := testInstrument()
	instruments := []types.Instrument{inst}

	got, err := Optimize(cat, instruments, types.SelectionSet{})
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}

	want := []types.Selection{
		{Gauge: 0.0095, Class: types.Plain},
		{Gauge: 0.013, Class: types.Plain},
		{Gauge: 0.016, Class: types.Plain},
		{Gauge: 0.026, Class: types.Wound},
		{Gauge: 0.034, Class: types.Wound},
		{Gauge: 0.046, Class: types.Wound},
	}
	if !reflect.DeepEqual(got[inst.ID], want) {
		t.Errorf("Optimize() = %v, want %v", got[inst.ID], want)
	}
	assertAllInRange(t, cat, instruments, got)
}

func TestOptimize_KeepsInRangeSelections(t *testing.T) {
	cat := catalog.Default()
	inst := testInstrument()
	instruments := []types.Instrument{inst}

	// A standard light set is in range everywhere; nothing should move.
	current := types.SelectionSet{
		inst.ID: {
			{Gauge: 0.009, Class: types.Plain},
			{Gauge: 0.013, Class: types.Plain},
			{Gauge: 0.016, Class: types.Plain},
			{Gauge: 0.026, Class: types.Wound},
			{Gauge: 0.034, Class: types.Wound},
			{Gauge: 0.046, Class: types.Wound},
		},
	}

	got, err := Optimize(cat, instruments, current)
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	if !reflect.DeepEqual(got, current) {
		t.Errorf("Optimize() changed an in-range set:\ngot  %v\nwant %v", got[inst.ID], current[inst.ID])
	}
}

func TestOptimize_RepairsOutOfRange(t *testing.T) {
	cat := catalog.Default()
	inst := testInstrument()
	instruments := []types.Instrument{inst}

	// A .008 high E runs around 10.4 lb, below the plain window.
	current := types.SelectionSet{
		inst.ID: {
			{Gauge: 0.008, Class: types.Plain},
			{Gauge: 0.013, Class: types.Plain},
			{Gauge: 0.016, Class: types.Plain},
			{Gauge: 0.026, Class: types.Wound},
			{Gauge: 0.034, Class: types.Wound},
			{Gauge: 0.046, Class: types.Wound},
		},
	}

	got, err := Optimize(cat, instruments, current)
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	if got[inst.ID][0].Gauge != 0.0095 {
		t.Errorf("repaired gauge = %v, want 0.0095", got[inst.ID][0].Gauge)
	}
	for i := 1; i < 6; i++ {
		if got[inst.ID][i] != current[inst.ID][i] {
			t.Errorf("string %d changed: %v, was %v", i+1, got[inst.ID][i], current[inst.ID][i])
		}
	}
	assertAllInRange(t, cat, instruments, got)
}

func TestOptimize_PreservesSelectionClass(t *testing.T) {
	cat := catalog.Default()
	inst := testInstrument()
	instruments := []types.Instrument{inst}

	// A wound string on the positionally plain G, out of the wound window.
	// Repair must recommend within the wound class, not flip it to plain.
	current := types.SelectionSet{
		inst.ID: {
			{Gauge: 0.009, Class: types.Plain},
			{Gauge: 0.013, Class: types.Plain},
			{Gauge: 0.017, Class: types.Wound},
			{Gauge: 0.026, Class: types.Wound},
			{Gauge: 0.034, Class: types.Wound},
			{Gauge: 0.046, Class: types.Wound},
		},
	}

	got, err := Optimize(cat, instruments, current)
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	g := got[inst.ID][2]
	if g.Class != types.Wound {
		t.Fatalf("class flipped to %v", g.Class)
	}
	if g.Gauge != 0.019 {
		t.Errorf("repaired wound G gauge = %v, want 0.019", g.Gauge)
	}
}

func TestOptimize_ConsolidatesSingletons(t *testing.T) {
	cat := catalog.Default()

	wide := types.Range{Min: 12, Max: 18}
	a := types.Instrument{
		ID: "a", Name: "Pair", Strings: 2,
		Scale:       types.SingleScale(25.5),
		Tuning:      []string{"G3", "G3"},
		TargetPlain: wide,
		TargetWound: types.DefaultWoundTarget,
	}
	b := types.Instrument{
		ID: "b", Name: "Solo", Strings: 1,
		Scale:       types.SingleScale(25.5),
		Tuning:      []string{"G3"},
		TargetPlain: wide,
		TargetWound: types.DefaultWoundTarget,
	}
	instruments := []types.Instrument{a, b}

	// Both .016 and .017 are in the wide window, so repair keeps them; the
	// consolidation pass should absorb the .017 singleton into .016.
	current := types.SelectionSet{
		"a": {{Gauge: 0.016, Class: types.Plain}, {Gauge: 0.016, Class: types.Plain}},
		"b": {{Gauge: 0.017, Class: types.Plain}},
	}

	got, err := Optimize(cat, instruments, current)
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	if got["b"][0].Gauge != 0.016 {
		t.Errorf("singleton gauge = %v, want consolidated 0.016", got["b"][0].Gauge)
	}
	if got.DistinctGauges() != 1 {
		t.Errorf("DistinctGauges() = %d, want 1", got.DistinctGauges())
	}
	if got.DistinctGauges() > current.DistinctGauges() {
		t.Error("optimization increased the distinct gauge count")
	}
	assertAllInRange(t, cat, instruments, got)
}

func TestOptimize_SkipsOutOfRangeSwaps(t *testing.T) {
	cat := catalog.Default()

	a := types.Instrument{
		ID: "a", Name: "Pair", Strings: 2,
		Scale:       types.SingleScale(25.5),
		Tuning:      []string{"G3", "G3"},
		TargetPlain: types.DefaultPlainTarget,
		TargetWound: types.DefaultWoundTarget,
	}
	b := types.Instrument{
		ID: "b", Name: "Solo", Strings: 1,
		Scale:       types.SingleScale(25.5),
		Tuning:      []string{"E4"},
		TargetPlain: types.DefaultPlainTarget,
		TargetWound: types.DefaultWoundTarget,
	}
	instruments := []types.Instrument{a, b}

	// The .0095 singleton could consolidate onto the common .016, but a
	// .016 high E runs past 40 lb. The analyzer proposes it as data; the
	// optimizer must leave the string alone.
	current := types.SelectionSet{
		"a": {{Gauge: 0.016, Class: types.Plain}, {Gauge: 0.016, Class: types.Plain}},
		"b": {{Gauge: 0.0095, Class: types.Plain}},
	}

	got, err := Optimize(cat, instruments, current)
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	if got["b"][0].Gauge != 0.0095 {
		t.Errorf("singleton gauge = %v, want 0.0095 untouched", got["b"][0].Gauge)
	}
	assertAllInRange(t, cat, instruments, got)
}

func TestOptimize_Idempotent(t *testing.T) {
	cat := catalog.Default()
	inst := testInstrument()
	instruments := []types.Instrument{inst}

	once, err := Optimize(cat, instruments, types.SelectionSet{})
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	twice, err := Optimize(cat, instruments, once)
	if err != nil {
		t.Fatalf("second Optimize() error = %v", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("not idempotent:\nfirst  %v\nsecond %v", once[inst.ID], twice[inst.ID])
	}
}

func TestOptimize_DoesNotMutateInput(t *testing.T) {
	cat := catalog.Default()
	inst := testInstrument()

	current := types.SelectionSet{
		inst.ID: {
			{Gauge: 0.008, Class: types.Plain},
		},
	}
	snapshot := current.Clone()

	if _, err := Optimize(cat, []types.Instrument{inst}, current); err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	if !reflect.DeepEqual(current, snapshot) {
		t.Errorf("input set mutated: %v, was %v", current, snapshot)
	}
}

func TestOptimize_BadNote(t *testing.T) {
	cat := catalog.Default()
	inst := testInstrument()
	inst.Tuning[0] = "X9"

	if _, err := Optimize(cat, []types.Instrument{inst}, types.SelectionSet{}); err == nil {
		t.Fatal("Optimize() error = nil, want error for bad tuning")
	}
}
