// Package catalog holds the gauge to unit-weight reference tables for plain
// and wound strings. A default catalog ships embedded in the binary; an
// alternative can be loaded from a YAML file of the same shape. Catalogs are
// immutable after load and safe for unsynchronized concurrent reads.
package catalog

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	_ "embed"

	"gopkg.in/yaml.v3"

	"github.com/jamesainslie/strung/pkg/strung/types"
)

//go:embed data/string_weights.yaml
var defaultData []byte

// Entry pairs a gauge diameter with its unit weight.
type Entry struct {
	// Gauge is the string diameter in inches.
	Gauge float64

	// UnitWeight is the mass per unit length in the table's native units.
	UnitWeight float64
}

// Catalog is an ordered gauge to unit-weight mapping per string class.
// Entries are kept in ascending gauge order; recommendation tie-breaks
// depend on that order.
type Catalog struct {
	plain []Entry
	wound []Entry

	plainIdx map[float64]float64
	woundIdx map[float64]float64
}

// fileFormat mirrors the YAML layout: gauge keys as strings, weights as values.
type fileFormat struct {
	Plain map[string]float64 `yaml:"plain"`
	Wound map[string]float64 `yaml:"wound"`
}

// Load parses catalog data from YAML bytes.
func Load(data []byte) (*Catalog, error) {
	var raw fileFormat
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if len(raw.Plain) == 0 || len(raw.Wound) == 0 {
		return nil, fmt.Errorf("catalog must define both plain and wound tables")
	}

	c := &Catalog{
		plainIdx: make(map[float64]float64, len(raw.Plain)),
		woundIdx: make(map[float64]float64, len(raw.Wound)),
	}
	var err error
	if c.plain, err = buildEntries(raw.Plain, c.plainIdx); err != nil {
		return nil, fmt.Errorf("plain table: %w", err)
	}
	if c.wound, err = buildEntries(raw.Wound, c.woundIdx); err != nil {
		return nil, fmt.Errorf("wound table: %w", err)
	}
	return c, nil
}

// LoadFile reads and parses a catalog YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return Load(data)
}

// buildEntries converts a raw table to a sorted entry slice and fills the
// lookup index.
func buildEntries(raw map[string]float64, idx map[float64]float64) ([]Entry, error) {
	entries := make([]Entry, 0, len(raw))
	for key, mu := range raw {
		gauge, err := strconv.ParseFloat(key, 64)
		if err != nil {
			return nil, fmt.Errorf("bad gauge key %q: %w", key, err)
		}
		if gauge <= 0 {
			return nil, fmt.Errorf("gauge must be positive, got %q", key)
		}
		if mu <= 0 {
			return nil, fmt.Errorf("unit weight for gauge %q must be positive, got %g", key, mu)
		}
		entries = append(entries, Entry{Gauge: gauge, UnitWeight: mu})
		idx[gauge] = mu
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Gauge < entries[j].Gauge })
	return entries, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog, parsed once per process.
// The embedded data is validated by tests, so a parse failure here means a
// corrupt build and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(defaultData)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Entries returns the catalog entries for a class in ascending gauge order.
// The returned slice is shared and must not be modified.
func (c *Catalog) Entries(class types.StringClass) []Entry {
	if class == types.Wound {
		return c.wound
	}
	return c.plain
}

// Gauges returns the gauge values for a class in ascending order.
func (c *Catalog) Gauges(class types.StringClass) []float64 {
	entries := c.Entries(class)
	out := make([]float64, len(entries))
	for i, e := range entries {
		out[i] = e.Gauge
	}
	return out
}

// UnitWeight returns the unit weight for a gauge of the given class, or 0
// when the gauge is not in the table. The zero fallback is deliberate:
// malformed or legacy gauge values degrade to tension 0, which any plausible
// target range flags as out of range instead of crashing the evaluation.
func (c *Catalog) UnitWeight(class types.StringClass, gauge float64) float64 {
	if class == types.Wound {
		return c.woundIdx[gauge]
	}
	return c.plainIdx[gauge]
}

// Has reports whether a gauge exists in the class's table.
func (c *Catalog) Has(class types.StringClass, gauge float64) bool {
	if class == types.Wound {
		_, ok := c.woundIdx[gauge]
		return ok
	}
	_, ok := c.plainIdx[gauge]
	return ok
}

// FormatGauge renders a gauge the way string packets print them: leading
// zero trimmed and at least three decimal places, e.g. ".010" or ".0095".
func FormatGauge(gauge float64) string {
	s := strconv.FormatFloat(gauge, 'f', -1, 64)
	s = strings.TrimPrefix(s, "0")
	if dot := strings.Index(s, "."); dot >= 0 {
		for len(s)-dot-1 < 3 {
			s += "0"
		}
	}
	return s
}
