package output

import "github.com/charmbracelet/lipgloss"

// Color constants using ANSI 256-color palette.
// These provide a consistent color scheme across all formatters.
const (
	// ColorPrimary is used for primary elements like headers (bright blue).
	ColorPrimary = lipgloss.Color("39")

	// ColorSuccess is used for in-range tensions and applied swaps (green).
	ColorSuccess = lipgloss.Color("42")

	// ColorWarning is used for out-of-range tensions and relaxation
	// requirements (orange).
	ColorWarning = lipgloss.Color("214")

	// ColorMuted is used for secondary text like tuning labels (gray).
	ColorMuted = lipgloss.Color("245")

	// ColorWound tints wound-string gauges (green) so the two classes are
	// distinguishable at a glance; plain gauges stay in the default tone.
	ColorWound = lipgloss.Color("35")
)

// Box styles for containing grouped content.
var (
	// HeaderBox is the style for the per-instrument gauge table section.
	HeaderBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1).
			MarginBottom(1)

	// FooterBox is the style for the summary line.
	FooterBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1).
			MarginTop(1)
)

// Text styles for various content types.
var (
	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// LabelStyle is used for field labels.
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// ValueStyle is used for field values.
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	// SuccessStyle is used for in-range markers.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// WarningStyle is used for out-of-range markers.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// MutedStyle is used for less important text.
	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// WoundStyle tints wound-string gauge values.
	WoundStyle = lipgloss.NewStyle().
			Foreground(ColorWound)

	// TableHeaderStyle is used for table column headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorMuted)
)
