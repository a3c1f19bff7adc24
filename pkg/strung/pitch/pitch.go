// Package pitch converts scientific note names to frequencies.
// Tokens look like "E4", "Bb3", or "F#2": a letter, an optional accidental,
// and an octave number. Tuning is twelve-tone equal temperament at A4=440.
package pitch

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// A4 is the reference frequency in Hz.
const A4 = 440.0

// ErrInvalidNote indicates a note token that could not be parsed.
var ErrInvalidNote = errors.New("invalid note")

// noteIndex maps a sharp-normalized pitch class to its semitone offset from A.
var noteIndex = map[string]int{
	"C": -9, "C#": -8, "D": -7, "D#": -6,
	"E": -5, "F": -4, "F#": -3,
	"G": -2, "G#": -1, "A": 0,
	"A#": 1, "B": 2,
}

// flatToSharp normalizes flat spellings to their enharmonic sharp equivalent.
var flatToSharp = map[string]string{
	"Db": "C#", "Eb": "D#", "Gb": "F#", "Ab": "G#", "Bb": "A#",
}

// NoteToFreq converts a note token to a frequency in Hz.
// It returns an error wrapping ErrInvalidNote when the pitch class is not
// recognized or the octave is not an integer. Callers should treat that as a
// bad-input condition to surface, not a fatal one.
func NoteToFreq(note string) (float64, error) {
	name, octave, err := split(note)
	if err != nil {
		return 0, err
	}
	if sharp, ok := flatToSharp[name]; ok {
		name = sharp
	}
	idx, ok := noteIndex[name]
	if !ok {
		return 0, fmt.Errorf("%w: unknown pitch class in %q", ErrInvalidNote, note)
	}
	semitones := idx + (octave-4)*12
	return A4 * math.Exp2(float64(semitones)/12), nil
}

// split separates a token into pitch-class name and octave. The octave is
// everything from the first digit or minus sign onward, so "C-1" parses.
func split(note string) (string, int, error) {
	note = strings.TrimSpace(note)
	cut := -1
	for i, r := range note {
		if unicode.IsDigit(r) || r == '-' {
			cut = i
			break
		}
	}
	if cut <= 0 {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidNote, note)
	}
	octave, err := strconv.Atoi(note[cut:])
	if err != nil {
		return "", 0, fmt.Errorf("%w: bad octave in %q", ErrInvalidNote, note)
	}
	return note[:cut], octave, nil
}
