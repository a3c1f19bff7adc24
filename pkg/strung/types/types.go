// Package types provides core data types for the strung tension calculator.
// It includes instrument definitions, gauge selections, target tension ranges,
// and the per-string context derived from them.
package types

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// StringClass identifies a string construction class.
// Plain and wound strings have separate gauge catalogs and unit-weight tables.
type StringClass string

// The two string construction classes.
const (
	Plain StringClass = "plain"
	Wound StringClass = "wound"
)

// ErrInvalidClass indicates an unrecognized string class tag.
var ErrInvalidClass = errors.New("invalid string class")

// ParseStringClass parses a class tag. The one-letter spellings "p" and "w"
// from older data files are accepted.
func ParseStringClass(s string) (StringClass, error) {
	switch s {
	case "plain", "p":
		return Plain, nil
	case "wound", "w":
		return Wound, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidClass, s)
	}
}

// String returns the class tag.
func (c StringClass) String() string {
	return string(c)
}

// UnmarshalYAML parses a class tag, accepting legacy one-letter spellings.
func (c *StringClass) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseStringClass(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Scale is an instrument's scale length in inches. A conventional instrument
// has a single length; a multiscale (fanned-fret) instrument has a treble-side
// and a bass-side length with every string in between interpolated linearly.
type Scale struct {
	// Treble is the scale length of string 1 (the shortest side).
	Treble float64

	// Bass is the scale length of the last string. Zero means the
	// instrument is not multiscale and Treble applies to every string.
	Bass float64
}

// SingleScale returns a Scale with the same length for every string.
func SingleScale(length float64) Scale {
	return Scale{Treble: length}
}

// MultiScale returns a fanned-fret Scale spanning treble to bass.
func MultiScale(treble, bass float64) Scale {
	return Scale{Treble: treble, Bass: bass}
}

// Multiscale reports whether the scale varies across strings.
func (s Scale) Multiscale() bool {
	return s.Bass != 0 && s.Bass != s.Treble
}

// Resolve returns the per-string scale lengths for an instrument with n
// strings. String 0 is the treble side, string n-1 the bass side, with
// linear interpolation in between. A single-length scale repeats; a
// multiscale pair on a one-string instrument degenerates to the treble value.
func (s Scale) Resolve(n int) []float64 {
	out := make([]float64, n)
	if !s.Multiscale() || n == 1 {
		for i := range out {
			out[i] = s.Treble
		}
		return out
	}
	span := s.Bass - s.Treble
	for i := range out {
		out[i] = s.Treble + span*float64(i)/float64(n-1)
	}
	return out
}

// UnmarshalYAML accepts either a scalar length or a [treble, bass] pair.
func (s *Scale) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var length float64
		if err := node.Decode(&length); err != nil {
			return fmt.Errorf("parsing scale: %w", err)
		}
		*s = SingleScale(length)
		return nil
	}
	var pair []float64
	if err := node.Decode(&pair); err != nil {
		return fmt.Errorf("parsing scale: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("scale pair must have exactly 2 elements, got %d", len(pair))
	}
	*s = MultiScale(pair[0], pair[1])
	return nil
}

// MarshalYAML emits a scalar for single scales and a flow pair for multiscale.
func (s Scale) MarshalYAML() (interface{}, error) {
	if !s.Multiscale() {
		return s.Treble, nil
	}
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	if err := node.Encode([]float64{s.Treble, s.Bass}); err != nil {
		return nil, err
	}
	return node, nil
}

// Range is an acceptable tension window in pounds-force, inclusive on both
// ends. The engine does not validate Min <= Max; a reversed range simply
// behaves as unsatisfiable.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether t lies inside the range, inclusive.
func (r Range) Contains(t float64) bool {
	return t >= r.Min && t <= r.Max
}

// Mid returns the range midpoint, the recommendation target.
func (r Range) Mid() float64 {
	return (r.Min + r.Max) / 2
}

// UnmarshalYAML accepts a [min, max] pair or a scalar, which is treated as a
// degenerate point range.
func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var v float64
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("parsing target range: %w", err)
		}
		*r = Range{Min: v, Max: v}
		return nil
	}
	var pair []float64
	if err := node.Decode(&pair); err != nil {
		return fmt.Errorf("parsing target range: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("target range must have exactly 2 elements, got %d", len(pair))
	}
	*r = Range{Min: pair[0], Max: pair[1]}
	return nil
}

// MarshalYAML emits the range as a flow [min, max] pair.
func (r Range) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	if err := node.Encode([]float64{r.Min, r.Max}); err != nil {
		return nil, err
	}
	return node, nil
}

// Default target tension ranges, used when an instrument does not set its own.
var (
	DefaultPlainTarget = Range{Min: 13.0, Max: 15.5}
	DefaultWoundTarget = Range{Min: 16.0, Max: 20.0}
)

// Instrument describes one stringed instrument.
type Instrument struct {
	// ID is a stable opaque identifier assigned by the store. Selections
	// are keyed by it, so removing one instrument never renumbers another.
	ID string `yaml:"id,omitempty"`

	// Name is a display label.
	Name string `yaml:"name"`

	// Strings is the string count, conventionally 4 to 12.
	Strings int `yaml:"strings"`

	// Scale is the scale length, single or multiscale.
	Scale Scale `yaml:"scale"`

	// Tuning is the per-string note tokens, treble first (e.g. E4 down to E2).
	Tuning []string `yaml:"tuning"`

	// Classes optionally overrides the per-string class. When absent or
	// not fully populated, the positional default applies: the first three
	// strings plain, the rest wound.
	Classes []StringClass `yaml:"classes,omitempty"`

	// TargetPlain is the acceptable tension window for plain strings.
	TargetPlain Range `yaml:"target_plain"`

	// TargetWound is the acceptable tension window for wound strings.
	TargetWound Range `yaml:"target_wound"`
}

// Target returns the instrument's tension window for the given class.
func (in *Instrument) Target(class StringClass) Range {
	if class == Wound {
		return in.TargetWound
	}
	return in.TargetPlain
}

// Validate checks the structural invariants the engine itself does not
// enforce. The store calls it before persisting and the CLI before evaluating.
func (in *Instrument) Validate() error {
	if in.Name == "" {
		return errors.New("instrument name cannot be empty")
	}
	if in.Strings < 1 {
		return fmt.Errorf("instrument %q: string count must be positive, got %d", in.Name, in.Strings)
	}
	if len(in.Tuning) != in.Strings {
		return fmt.Errorf("instrument %q: tuning has %d notes for %d strings", in.Name, len(in.Tuning), in.Strings)
	}
	if len(in.Classes) != 0 && len(in.Classes) != in.Strings {
		return fmt.Errorf("instrument %q: class override has %d entries for %d strings", in.Name, len(in.Classes), in.Strings)
	}
	if in.Scale.Treble <= 0 || (in.Scale.Multiscale() && in.Scale.Bass <= 0) {
		return fmt.Errorf("instrument %q: scale length must be positive", in.Name)
	}
	if in.TargetPlain.Min > in.TargetPlain.Max {
		return fmt.Errorf("instrument %q: plain target min %.1f exceeds max %.1f", in.Name, in.TargetPlain.Min, in.TargetPlain.Max)
	}
	if in.TargetWound.Min > in.TargetWound.Max {
		return fmt.Errorf("instrument %q: wound target min %.1f exceeds max %.1f", in.Name, in.TargetWound.Min, in.TargetWound.Max)
	}
	return nil
}

// ResolveClasses returns the per-string classes for an instrument with n
// strings. A fully populated override is used verbatim, with no plausibility
// checks; anything else falls back to the positional default.
func ResolveClasses(override []StringClass, n int) []StringClass {
	out := make([]StringClass, n)
	if len(override) == n {
		copy(out, override)
		return out
	}
	for i := range out {
		if i < 3 {
			out[i] = Plain
		} else {
			out[i] = Wound
		}
	}
	return out
}

// Selection is one (gauge, class) assignment for one string position.
// A zero Gauge marks an unassigned slot.
type Selection struct {
	Gauge float64     `yaml:"gauge"`
	Class StringClass `yaml:"class"`
}

// Assigned reports whether the slot holds a gauge.
func (s Selection) Assigned() bool {
	return s.Gauge > 0
}

// SelectionSet maps an instrument ID to its per-string selections.
// The engine only reads it and returns proposed replacements.
type SelectionSet map[string][]Selection

// Clone returns a deep copy. The optimizer works on a copy so the caller's
// set is never mutated in place.
func (ss SelectionSet) Clone() SelectionSet {
	out := make(SelectionSet, len(ss))
	for id, sels := range ss {
		cp := make([]Selection, len(sels))
		copy(cp, sels)
		out[id] = cp
	}
	return out
}

// DistinctGauges returns the number of distinct (gauge, class) pairs in use,
// ignoring unassigned slots.
func (ss SelectionSet) DistinctGauges() int {
	seen := make(map[Selection]struct{})
	for _, sels := range ss {
		for _, s := range sels {
			if s.Assigned() {
				seen[s] = struct{}{}
			}
		}
	}
	return len(seen)
}

// StringContext is the fully resolved evaluation context for one string
// position: scale length, class, frequency, and target window. It is derived
// fresh for every evaluation and never persisted.
type StringContext struct {
	// InstrumentID is the owning instrument's stable identifier.
	InstrumentID string

	// InstrumentName is the owning instrument's display label.
	InstrumentName string

	// Position is the zero-based string position, treble first.
	Position int

	// Note is the tuning token for this position.
	Note string

	// Freq is the resolved frequency in Hz.
	Freq float64

	// Scale is the resolved scale length in inches.
	Scale float64

	// Class is the resolved construction class.
	Class StringClass

	// Target is the acceptable tension window for this string.
	Target Range
}
