// Package store loads and saves instrument definitions and gauge selections
// as YAML files. The file format follows the original hand-edited layout;
// writes go through a temp file and rename so a crash never truncates data.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jamesainslie/strung/pkg/strung/logging"
	"github.com/jamesainslie/strung/pkg/strung/types"
)

var logger = logging.Get("store")

// Store reads and writes the instruments and selections files.
type Store struct {
	// InstrumentsPath is the instrument definitions YAML file.
	InstrumentsPath string

	// SelectionsPath is the saved selections YAML file.
	SelectionsPath string

	// DefaultPlain fills in a missing plain target on load.
	DefaultPlain types.Range

	// DefaultWound fills in a missing wound target on load.
	DefaultWound types.Range
}

// instrumentsFile is the on-disk shape of the instruments file.
type instrumentsFile struct {
	Instruments []types.Instrument `yaml:"instruments"`
}

// selectionsFile is the on-disk shape of the selections file.
type selectionsFile struct {
	Selections types.SelectionSet `yaml:"selections"`
}

// LoadInstruments reads the instruments file. A missing file yields an empty
// list. Instruments without an ID get a fresh one assigned in memory; the ID
// reaches disk on the next save. Every instrument is validated.
func (s *Store) LoadInstruments() ([]types.Instrument, error) {
	data, err := os.ReadFile(s.InstrumentsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading instruments file: %w", err)
	}

	var file instrumentsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing instruments file: %w", err)
	}

	for i := range file.Instruments {
		inst := &file.Instruments[i]
		if inst.ID == "" {
			inst.ID = uuid.NewString()
			logger.Debug("assigned id to instrument", "name", inst.Name, "id", inst.ID)
		}
		if inst.TargetPlain == (types.Range{}) {
			inst.TargetPlain = s.DefaultPlain
		}
		if inst.TargetWound == (types.Range{}) {
			inst.TargetWound = s.DefaultWound
		}
		if err := inst.Validate(); err != nil {
			return nil, fmt.Errorf("instruments file: %w", err)
		}
	}
	return file.Instruments, nil
}

// SaveInstruments writes the instruments file atomically, assigning IDs to
// any instrument still missing one.
func (s *Store) SaveInstruments(instruments []types.Instrument) error {
	for i := range instruments {
		if instruments[i].ID == "" {
			instruments[i].ID = uuid.NewString()
		}
		if err := instruments[i].Validate(); err != nil {
			return err
		}
	}
	return writeYAML(s.InstrumentsPath, instrumentsFile{Instruments: instruments},
		"# Instrument definitions - edited by strung\n")
}

// LoadSelections reads the selections file. A missing file yields an empty
// set, never an error.
func (s *Store) LoadSelections() (types.SelectionSet, error) {
	data, err := os.ReadFile(s.SelectionsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return types.SelectionSet{}, nil
		}
		return nil, fmt.Errorf("reading selections file: %w", err)
	}

	var file selectionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing selections file: %w", err)
	}
	if file.Selections == nil {
		file.Selections = types.SelectionSet{}
	}
	return file.Selections, nil
}

// SaveSelections writes the selections file atomically.
func (s *Store) SaveSelections(selections types.SelectionSet) error {
	return writeYAML(s.SelectionsPath, selectionsFile{Selections: selections},
		"# Gauge selections - written by strung optimize\n")
}

// Prune drops selections for instruments that no longer exist and returns
// the pruned set. Selections survive instrument renames because they are
// keyed by ID, not by position in the file.
func (s *Store) Prune(instruments []types.Instrument, selections types.SelectionSet) types.SelectionSet {
	known := make(map[string]struct{}, len(instruments))
	for _, inst := range instruments {
		known[inst.ID] = struct{}{}
	}
	out := types.SelectionSet{}
	for id, sels := range selections {
		if _, ok := known[id]; ok {
			out[id] = sels
		} else {
			logger.Debug("dropping selections for unknown instrument", "id", id)
		}
	}
	return out
}

// writeYAML marshals v and writes it atomically with a leading comment.
func writeYAML(path string, v interface{}, header string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, append([]byte(header), data...), 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// starterInstruments is written when no instruments file exists yet, so the
// first run of inventory or optimize has something to work with.
const starterInstruments = `# Instrument definitions - edited by strung
instruments:
  - name: Six String
    strings: 6
    scale: 25.5
    tuning: [E4, B3, G3, D3, A2, E2]
    target_plain: [13.0, 15.5]
    target_wound: [16.0, 20.0]
`

// EnsureDefault writes a starter instruments file if none exists.
// Returns nil if the file is already present.
func (s *Store) EnsureDefault() error {
	if _, err := os.Stat(s.InstrumentsPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking instruments file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.InstrumentsPath), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(s.InstrumentsPath, []byte(starterInstruments), 0o644); err != nil {
		return fmt.Errorf("writing starter instruments: %w", err)
	}
	logger.Info("wrote starter instruments file", "path", s.InstrumentsPath)
	return nil
}
