package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// PrettyFormatter formats the report with colors and styling using lipgloss.
// It produces a visually appealing output suitable for terminal display.
type PrettyFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PrettyFormatter) Format(w *bytes.Buffer, r *Result) error {
	w.WriteString(HeaderBox.Render(f.formatInstruments(r)))
	w.WriteString("\n")
	w.WriteString(f.formatGroups(r))
	w.WriteString(f.formatFooter(r))
	w.WriteString("\n")
	return nil
}

// formatInstruments builds the per-instrument gauge and tension table.
func (f *PrettyFormatter) formatInstruments(r *Result) string {
	var lines []string
	lines = append(lines, TitleStyle.Render("Gauges by Instrument"))

	nameWidth := 0
	for _, inst := range r.Instruments {
		if len(inst.Name) > nameWidth {
			nameWidth = len(inst.Name)
		}
	}

	for _, inst := range r.Instruments {
		var cells []string
		for _, s := range inst.Strings {
			if !s.Assigned {
				cells = append(cells, MutedStyle.Render("--"))
				continue
			}
			gauge := s.GaugeDisplay
			if s.Class == "wound" {
				gauge = WoundStyle.Render(gauge)
			} else {
				gauge = ValueStyle.Render(gauge)
			}
			if !s.InRange {
				gauge += WarningStyle.Render("!")
			}
			cells = append(cells, gauge)
		}
		name := ValueStyle.Render(padRight(inst.Name, nameWidth))
		tuning := MutedStyle.Render(inst.Tuning)
		lines = append(lines, fmt.Sprintf("%s  %s\n%s  %s",
			name, strings.Join(cells, "  "),
			strings.Repeat(" ", nameWidth), tuning))
	}
	return strings.Join(lines, "\n")
}

// formatGroups builds the gauge inventory table with swap proposals.
func (f *PrettyFormatter) formatGroups(r *Result) string {
	if len(r.Groups) == 0 {
		return MutedStyle.Render("  No gauges selected\n")
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("Gauge Inventory"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		TableHeaderStyle.Render(padRight("GAUGE", 7)),
		TableHeaderStyle.Render(padRight("CLASS", 5)),
		TableHeaderStyle.Render("COUNT"),
		TableHeaderStyle.Render("SWAP OPTION")))

	for _, g := range r.Groups {
		gauge := padRight(g.GaugeDisplay, 7)
		if g.Class == "wound" {
			gauge = WoundStyle.Render(gauge)
		} else {
			gauge = ValueStyle.Render(gauge)
		}
		sb.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
			gauge,
			MutedStyle.Render(padRight(g.Class, 5)),
			ValueStyle.Render(padLeft(fmt.Sprintf("%d", g.Count), 5)),
			f.formatSwap(g)))
	}
	return sb.String()
}

// formatSwap renders the swap column for one group.
func (f *PrettyFormatter) formatSwap(g GroupReport) string {
	if g.NoCandidate {
		return MutedStyle.Render("no candidate")
	}
	if g.Swap == nil {
		return ""
	}

	where := ""
	if g.Instrument != "" {
		where = MutedStyle.Render(fmt.Sprintf(" (%s, %s string)",
			g.Instrument, humanize.Ordinal(g.Position+1)))
	}
	line := fmt.Sprintf("-> %s: %.1f lb (%+.1f)", g.Swap.GaugeDisplay, g.Swap.Tension, g.Swap.Delta)
	if g.Swap.InRange {
		return SuccessStyle.Render(line+" ok") + where
	}
	switch {
	case g.Swap.RequiredMin != nil:
		line += fmt.Sprintf(" needs min %.1f", *g.Swap.RequiredMin)
	case g.Swap.RequiredMax != nil:
		line += fmt.Sprintf(" needs max %.1f", *g.Swap.RequiredMax)
	}
	return WarningStyle.Render(line) + where
}

// formatFooter builds the summary line.
func (f *PrettyFormatter) formatFooter(r *Result) string {
	parts := []string{
		fmt.Sprintf("%s %s", LabelStyle.Render("Strings:"),
			ValueStyle.Render(fmt.Sprintf("%d", r.TotalStrings))),
		fmt.Sprintf("%s %s", LabelStyle.Render("Distinct gauges:"),
			ValueStyle.Render(fmt.Sprintf("%d", r.DistinctGauges))),
		MutedStyle.Render("Use -o plain for unformatted output"),
	}
	return FooterBox.Render(strings.Join(parts, "  "))
}

// padLeft pads a string with spaces on the left to achieve the desired width.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// padRight pads a string with spaces on the right to achieve the desired width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func init() {
	Register("pretty", func() Formatter {
		return &PrettyFormatter{}
	})
}

// Ensure PrettyFormatter implements Formatter.
var _ Formatter = (*PrettyFormatter)(nil)
