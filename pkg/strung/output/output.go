// Package output provides formatters for displaying tension reports in
// various output formats (pretty, plain, json, yaml).
//
// The package uses a registry pattern to allow registration of multiple
// formatter implementations that can be selected at runtime.
//
// Basic usage:
//
//	formatter, err := output.Get("pretty")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	var buf bytes.Buffer
//	if err := formatter.Format(&buf, result); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(buf.String())
package output

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jamesainslie/strung/pkg/strung/catalog"
	"github.com/jamesainslie/strung/pkg/strung/inventory"
	"github.com/jamesainslie/strung/pkg/strung/tension"
	"github.com/jamesainslie/strung/pkg/strung/types"
)

// StringCell is one string position in the per-instrument report.
type StringCell struct {
	// Position is the zero-based string position.
	Position int `json:"position" yaml:"position"`

	// Note is the tuning token at this position.
	Note string `json:"note" yaml:"note"`

	// Gauge is the selected gauge, 0 when unassigned.
	Gauge float64 `json:"gauge" yaml:"gauge"`

	// GaugeDisplay is the packet-style rendering (".010").
	GaugeDisplay string `json:"gauge_display,omitempty" yaml:"gauge_display,omitempty"`

	// Class is the selected string class.
	Class string `json:"class,omitempty" yaml:"class,omitempty"`

	// Tension is the current tension in pounds.
	Tension float64 `json:"tension" yaml:"tension"`

	// InRange reports whether the tension sits inside the target window.
	InRange bool `json:"in_range" yaml:"in_range"`

	// Assigned reports whether a gauge is selected at all.
	Assigned bool `json:"assigned" yaml:"assigned"`
}

// InstrumentReport is the per-instrument section of the report.
type InstrumentReport struct {
	ID      string       `json:"id" yaml:"id"`
	Name    string       `json:"name" yaml:"name"`
	Tuning  string       `json:"tuning" yaml:"tuning"`
	Strings []StringCell `json:"strings" yaml:"strings"`
}

// SwapReport is a consolidation proposal rendered for display.
type SwapReport struct {
	// Gauge is the proposed common gauge.
	Gauge float64 `json:"gauge" yaml:"gauge"`

	// GaugeDisplay is the packet-style rendering.
	GaugeDisplay string `json:"gauge_display" yaml:"gauge_display"`

	// Tension is the resulting tension in pounds.
	Tension float64 `json:"tension" yaml:"tension"`

	// Delta is the signed tension change.
	Delta float64 `json:"delta" yaml:"delta"`

	// InRange reports whether the swap keeps the string in its window.
	InRange bool `json:"in_range" yaml:"in_range"`

	// RequiredMin is the relaxed low bound needed to admit the swap,
	// present only when the swap undershoots the window.
	RequiredMin *float64 `json:"required_min,omitempty" yaml:"required_min,omitempty"`

	// RequiredMax is the relaxed high bound needed to admit the swap,
	// present only when the swap overshoots the window.
	RequiredMax *float64 `json:"required_max,omitempty" yaml:"required_max,omitempty"`
}

// GroupReport is one gauge usage group.
type GroupReport struct {
	Gauge        float64 `json:"gauge" yaml:"gauge"`
	GaugeDisplay string  `json:"gauge_display" yaml:"gauge_display"`
	Class        string  `json:"class" yaml:"class"`
	Count        int     `json:"count" yaml:"count"`

	// Instrument and Position locate the string when the group is a
	// singleton; swap proposals apply to it.
	Instrument string `json:"instrument,omitempty" yaml:"instrument,omitempty"`
	Position   int    `json:"position,omitempty" yaml:"position,omitempty"`

	Swap        *SwapReport `json:"swap,omitempty" yaml:"swap,omitempty"`
	NoCandidate bool        `json:"no_candidate,omitempty" yaml:"no_candidate,omitempty"`
}

// Result contains the complete report data for formatting.
type Result struct {
	Instruments    []InstrumentReport `json:"instruments" yaml:"instruments"`
	Groups         []GroupReport      `json:"gauge_groups" yaml:"gauge_groups"`
	TotalStrings   int                `json:"total_strings" yaml:"total_strings"`
	DistinctGauges int                `json:"distinct_gauges" yaml:"distinct_gauges"`
}

// Build assembles the report for the given instruments and selections:
// the per-instrument tension table plus the gauge usage groups with swap
// proposals.
func Build(cat *catalog.Catalog, instruments []types.Instrument, selections types.SelectionSet) (*Result, error) {
	result := &Result{}

	for _, inst := range instruments {
		ctxs, err := tension.ResolveStrings(inst)
		if err != nil {
			return nil, err
		}
		report := InstrumentReport{
			ID:     inst.ID,
			Name:   inst.Name,
			Tuning: strings.Join(inst.Tuning, " "),
		}
		sels := selections[inst.ID]
		for i, ctx := range ctxs {
			cell := StringCell{Position: i, Note: ctx.Note}
			if i < len(sels) && sels[i].Assigned() {
				sel := sels[i]
				t := tension.Tension(cat, sel.Gauge, sel.Class, ctx.Scale, ctx.Freq)
				cell.Gauge = sel.Gauge
				cell.GaugeDisplay = catalog.FormatGauge(sel.Gauge)
				cell.Class = sel.Class.String()
				cell.Tension = t
				cell.InRange = inst.Target(sel.Class).Contains(t)
				cell.Assigned = true
				result.TotalStrings++
			}
			report.Strings = append(report.Strings, cell)
		}
		result.Instruments = append(result.Instruments, report)
	}

	groups, err := inventory.Analyze(cat, instruments, selections)
	if err != nil {
		return nil, err
	}
	result.DistinctGauges = len(groups)
	for _, g := range groups {
		result.Groups = append(result.Groups, buildGroup(g))
	}

	return result, nil
}

// buildGroup converts an inventory group to its display form.
func buildGroup(g inventory.Group) GroupReport {
	out := GroupReport{
		Gauge:        g.Gauge,
		GaugeDisplay: catalog.FormatGauge(g.Gauge),
		Class:        g.Class.String(),
		Count:        g.Count,
		NoCandidate:  g.NoCandidate,
	}
	if g.Singleton() && len(g.Uses) == 1 {
		out.Instrument = g.Uses[0].InstrumentName
		out.Position = g.Uses[0].Position
	}
	if g.Swap == nil {
		return out
	}

	swap := &SwapReport{
		Gauge:        g.Swap.Gauge,
		GaugeDisplay: catalog.FormatGauge(g.Swap.Gauge),
		Tension:      g.Swap.Tension,
		Delta:        g.Swap.Delta,
		InRange:      g.Swap.InRange,
	}
	if g.Swap.RelaxedTarget != nil {
		target := g.Uses[0].Target
		if g.Swap.RelaxedTarget.Min != target.Min {
			min := g.Swap.RelaxedTarget.Min
			swap.RequiredMin = &min
		}
		if g.Swap.RelaxedTarget.Max != target.Max {
			max := g.Swap.RelaxedTarget.Max
			swap.RequiredMax = &max
		}
	}
	out.Swap = swap
	return out
}

// Formatter is the interface that all output formatters must implement.
type Formatter interface {
	// Format writes the formatted output to the buffer.
	// It returns an error if formatting fails.
	Format(w *bytes.Buffer, r *Result) error
}

// FormatterFactory is a function that creates a new Formatter instance.
type FormatterFactory func() Formatter

// Registry manages formatter registration and lookup.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]FormatterFactory
}

// NewRegistry creates a new formatter registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]FormatterFactory)}
}

// Register adds a formatter factory to the registry.
// It will replace any existing formatter with the same name.
func (r *Registry) Register(name string, factory FormatterFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get returns a new formatter instance by name.
// It returns an error if the formatter is not found.
func (r *Registry) Get(name string) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown formatter: %s", name)
	}
	return factory(), nil
}

// Available returns a sorted list of all registered formatter names.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global formatter registry.
var DefaultRegistry = NewRegistry()

// Register adds a formatter factory to the default registry.
func Register(name string, factory FormatterFactory) {
	DefaultRegistry.Register(name, factory)
}

// Get returns a new formatter instance from the default registry.
func Get(name string) (Formatter, error) {
	return DefaultRegistry.Get(name)
}

// Available returns all formatter names from the default registry.
func Available() []string {
	return DefaultRegistry.Available()
}
