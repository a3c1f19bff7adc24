package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/strung/pkg/strung/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	return &Store{
		InstrumentsPath: filepath.Join(dir, "instruments.yaml"),
		SelectionsPath:  filepath.Join(dir, "selections.yaml"),
		DefaultPlain:    types.DefaultPlainTarget,
		DefaultWound:    types.DefaultWoundTarget,
	}
}

func TestLoadInstruments_Missing(t *testing.T) {
	s := testStore(t)
	instruments, err := s.LoadInstruments()
	require.NoError(t, err)
	assert.Nil(t, instruments)
}

func TestLoadInstruments_AssignsIDsAndTargets(t *testing.T) {
	s := testStore(t)
	content := `
instruments:
  - name: Six String
    strings: 6
    scale: 25.5
    tuning: [E4, B3, G3, D3, A2, E2]
  - id: keep-this-id
    name: Baritone
    strings: 6
    scale: [26.5, 28]
    tuning: [B3, F#3, D3, A2, E2, B1]
    target_plain: [12.0, 14.0]
    target_wound: [15.0, 19.0]
`
	require.NoError(t, os.WriteFile(s.InstrumentsPath, []byte(content), 0o644))

	instruments, err := s.LoadInstruments()
	require.NoError(t, err)
	require.Len(t, instruments, 2)

	first := instruments[0]
	assert.NotEmpty(t, first.ID, "instrument without an ID gets one assigned")
	assert.Equal(t, types.DefaultPlainTarget, first.TargetPlain)
	assert.Equal(t, types.DefaultWoundTarget, first.TargetWound)

	second := instruments[1]
	assert.Equal(t, "keep-this-id", second.ID, "existing IDs are preserved")
	assert.Equal(t, types.Range{Min: 12, Max: 14}, second.TargetPlain)
	assert.True(t, second.Scale.Multiscale())
}

func TestLoadInstruments_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "not yaml",
			content: "{{{",
		},
		{
			name: "tuning count mismatch",
			content: `
instruments:
  - name: Broken
    strings: 6
    scale: 25.5
    tuning: [E4, B3]
`,
		},
		{
			name: "bad class tag",
			content: `
instruments:
  - name: Broken
    strings: 1
    scale: 25.5
    tuning: [E4]
    classes: [nylon]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testStore(t)
			require.NoError(t, os.WriteFile(s.InstrumentsPath, []byte(tt.content), 0o644))

			_, err := s.LoadInstruments()
			assert.Error(t, err)
		})
	}
}

func TestSaveInstruments_RoundTrip(t *testing.T) {
	s := testStore(t)
	instruments := []types.Instrument{
		{
			Name:        "Six String",
			Strings:     6,
			Scale:       types.SingleScale(25.5),
			Tuning:      []string{"E4", "B3", "G3", "D3", "A2", "E2"},
			TargetPlain: types.DefaultPlainTarget,
			TargetWound: types.DefaultWoundTarget,
		},
	}

	require.NoError(t, s.SaveInstruments(instruments))
	assert.NotEmpty(t, instruments[0].ID, "save assigns missing IDs")

	data, err := os.ReadFile(s.InstrumentsPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "#"), "file starts with a header comment")

	loaded, err := s.LoadInstruments()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, instruments[0].ID, loaded[0].ID)
	assert.Equal(t, types.SingleScale(25.5), loaded[0].Scale)
	assert.Equal(t, []string{"E4", "B3", "G3", "D3", "A2", "E2"}, loaded[0].Tuning)
}

func TestSaveInstruments_Invalid(t *testing.T) {
	s := testStore(t)
	err := s.SaveInstruments([]types.Instrument{{Name: ""}})
	assert.Error(t, err)
}

func TestLoadSelections_Missing(t *testing.T) {
	s := testStore(t)
	selections, err := s.LoadSelections()
	require.NoError(t, err)
	require.NotNil(t, selections, "missing file yields an empty set, not nil")
	assert.Empty(t, selections)
}

func TestSaveSelections_RoundTrip(t *testing.T) {
	s := testStore(t)
	selections := types.SelectionSet{
		"inst-1": {
			{Gauge: 0.0095, Class: types.Plain},
			{Gauge: 0.046, Class: types.Wound},
		},
	}

	require.NoError(t, s.SaveSelections(selections))

	loaded, err := s.LoadSelections()
	require.NoError(t, err)
	assert.Equal(t, selections, loaded)

	// No temp file left behind.
	_, err = os.Stat(s.SelectionsPath + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file left behind after save")
}

func TestPrune(t *testing.T) {
	s := testStore(t)
	instruments := []types.Instrument{{ID: "known"}}
	selections := types.SelectionSet{
		"known": {{Gauge: 0.010, Class: types.Plain}},
		"gone":  {{Gauge: 0.046, Class: types.Wound}},
	}

	pruned := s.Prune(instruments, selections)
	assert.Contains(t, pruned, "known")
	assert.NotContains(t, pruned, "gone")
	assert.Len(t, selections, 2, "Prune must not mutate its input")
}

func TestEnsureDefault(t *testing.T) {
	t.Run("writes starter file", func(t *testing.T) {
		s := testStore(t)
		require.NoError(t, s.EnsureDefault())

		instruments, err := s.LoadInstruments()
		require.NoError(t, err, "starter file must load cleanly")
		require.Len(t, instruments, 1)
		assert.Equal(t, 6, instruments[0].Strings)
	})

	t.Run("leaves existing file alone", func(t *testing.T) {
		s := testStore(t)
		custom := "instruments: []\n"
		require.NoError(t, os.WriteFile(s.InstrumentsPath, []byte(custom), 0o644))

		require.NoError(t, s.EnsureDefault())

		data, err := os.ReadFile(s.InstrumentsPath)
		require.NoError(t, err)
		assert.Equal(t, custom, string(data))
	})
}
