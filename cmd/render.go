package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/jjtimmons/sdm/internal/sdm"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8a94a6"))

	tierStyles = map[sdm.Tier]lipgloss.Style{
		sdm.Excellent:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4CAF50")),
		sdm.Good:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A")),
		sdm.Acceptable: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFC107")),
		sdm.Poor:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F44336")),
	}

	severityStyles = map[sdm.Severity]lipgloss.Style{
		sdm.Info:     mutedStyle,
		sdm.Caution:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107")),
		sdm.Critical: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F44336")),
	}
)

// renderDesign writes a design for a terminal
func renderDesign(w io.Writer, d *sdm.Design) error {
	var b strings.Builder

	score := "-"
	if d.Score != nil {
		score = fmt.Sprintf("%.1f", *d.Score)
	}
	fmt.Fprintf(&b, "%s %s\n", headingStyle.Render(d.Mutation.String()), mutedStyle.Render(d.ID))
	fmt.Fprintf(&b, "%s  score %s  penalty %.2f  ΔTm %.1f °C  %s\n\n",
		tierStyles[d.Tier].Render(string(d.Tier)), score, d.Penalty, d.TmDiff, d.Strategy)

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tsequence\tstart\tend\tlength\tTm\tGC%")
	for _, row := range []struct {
		name   string
		primer sdm.Primer
	}{{"forward", d.Forward}, {"reverse", d.Reverse}} {
		p := row.primer
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%.1f\t%.1f\n", row.name, p.Sequence, p.Start, p.End, p.Length, p.Tm, p.GC)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(d.Warnings) > 0 {
		b.WriteString("\n" + headingStyle.Render("Warnings") + "\n")
		for _, warn := range d.Warnings {
			fmt.Fprintf(&b, "  %s %s\n", severityStyles[warn.Severity].Render(string(warn.Kind)), warn.Message)
		}
	}

	pr := d.Protocol
	fmt.Fprintf(&b, "\n%s\n", headingStyle.Render(pr.Name))
	tw = tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	steps := func(prefix string, ss []sdm.Step) {
		for _, s := range ss {
			fmt.Fprintf(tw, "  %s%s\t%.1f °C\t%s\n", prefix, s.Name, s.TempC, s.Duration)
		}
	}
	steps("", pr.Initial)
	fmt.Fprintf(tw, "  %d cycles:\t\t\n", pr.Cycles)
	steps("  ", pr.CycleSteps)
	steps("", pr.Final)
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, note := range pr.Notes {
		fmt.Fprintf(&b, "  %s\n", mutedStyle.Render(note))
	}

	if len(d.Alternates) > 0 {
		fmt.Fprintf(&b, "\n%s\n", headingStyle.Render("Alternates"))
		tw = tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		for _, alt := range d.Alternates {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%.2f\n", alt.Strategy, alt.Tier, alt.Forward.Sequence, alt.Reverse.Sequence, alt.Penalty)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
