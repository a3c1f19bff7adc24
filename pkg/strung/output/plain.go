package output

import (
	"bytes"
	"fmt"

	"github.com/dustin/go-humanize"
)

// PlainFormatter formats the report as unstyled text, suitable for piping.
type PlainFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PlainFormatter) Format(w *bytes.Buffer, r *Result) error {
	for _, inst := range r.Instruments {
		fmt.Fprintf(w, "%s (%s)\n", inst.Name, inst.Tuning)
		for _, s := range inst.Strings {
			if !s.Assigned {
				fmt.Fprintf(w, "  %s string (%s): unassigned\n",
					humanize.Ordinal(s.Position+1), s.Note)
				continue
			}
			mark := "ok"
			if !s.InRange {
				mark = "OUT OF RANGE"
			}
			fmt.Fprintf(w, "  %s string (%s): %s %s, %.1f lb %s\n",
				humanize.Ordinal(s.Position+1), s.Note, s.GaugeDisplay, s.Class, s.Tension, mark)
		}
	}

	fmt.Fprintf(w, "\ngauge inventory (%d strings, %d distinct gauges)\n",
		r.TotalStrings, r.DistinctGauges)
	for _, g := range r.Groups {
		fmt.Fprintf(w, "  %s %s x%d", g.GaugeDisplay, g.Class, g.Count)
		switch {
		case g.NoCandidate:
			fmt.Fprintf(w, "  no candidate")
		case g.Swap != nil:
			fmt.Fprintf(w, "  -> %s: %.1f lb (%+.1f)", g.Swap.GaugeDisplay, g.Swap.Tension, g.Swap.Delta)
			switch {
			case g.Swap.InRange:
				fmt.Fprintf(w, " ok")
			case g.Swap.RequiredMin != nil:
				fmt.Fprintf(w, " needs min %.1f", *g.Swap.RequiredMin)
			case g.Swap.RequiredMax != nil:
				fmt.Fprintf(w, " needs max %.1f", *g.Swap.RequiredMax)
			}
		}
		fmt.Fprintln(w)
	}
	return nil
}

func init() {
	Register("plain", func() Formatter {
		return &PlainFormatter{}
	})
}

// Ensure PlainFormatter implements Formatter.
var _ Formatter = (*PlainFormatter)(nil)
