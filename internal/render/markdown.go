// Package render turns generated content into markdown and renders it for
// the terminal with glamour.
package render

import (
	"fmt"
	"strings"

	"github.com/abelbrown/headstart/internal/content"
)

// PlanMarkdown renders a full growth plan. limit caps the number of steps
// shown; 0 shows all.
func PlanMarkdown(p content.GrowthPlan, limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Today's focus\n\n%s\n\n", p.DailyFocus)

	steps := p.Steps
	if limit > 0 && len(steps) > limit {
		steps = steps[:limit]
	}
	if len(steps) > 0 {
		b.WriteString("### Your 15 minutes\n\n")
		for i, s := range steps {
			fmt.Fprintf(&b, "%d. **%s** (%s)  \n   %s\n", i+1, s.Title, s.Duration, s.Description)
		}
		b.WriteString("\n")
	}

	if c := p.Challenge; c != nil {
		fmt.Fprintf(&b, "### Challenge of the day: %s\n\n%s\n\n> %s\n\n", c.Title, c.Action, c.Benefit)
	}

	if len(p.SuggestedBooks) > 0 {
		b.WriteString("### Suggested books\n\n")
		for _, title := range p.SuggestedBooks {
			fmt.Fprintf(&b, "- %s\n", title)
		}
	}
	return b.String()
}

// SummaryMarkdown renders a book summary.
func SummaryMarkdown(s content.BookSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n*%s*", s.Title, s.Author)
	if s.ReadingTime > 0 {
		fmt.Fprintf(&b, " · %s read", minutes(s.ReadingTime))
	}
	if s.Category != "" {
		fmt.Fprintf(&b, " · %s", s.Category)
	}
	b.WriteString("\n\n")

	if len(s.KeyInsights) > 0 {
		b.WriteString("## Key insights\n\n")
		for i, in := range s.KeyInsights {
			fmt.Fprintf(&b, "%d. %s\n", i+1, in)
		}
		b.WriteString("\n")
	}
	if s.MainTakeaway != "" {
		fmt.Fprintf(&b, "## Main takeaway\n\n> %s\n", s.MainTakeaway)
	}
	return b.String()
}

// FigureMarkdown renders a mentor profile.
func FigureMarkdown(f content.HistoricalFigure) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n*%s* · %s\n\n", f.Name, f.Title, f.Period)
	if f.FamousQuote != "" {
		fmt.Fprintf(&b, "> \"%s\"\n\n", f.FamousQuote)
	}
	if f.Legacy != "" {
		fmt.Fprintf(&b, "## Legacy\n\n%s\n\n", f.Legacy)
	}
	if len(f.CorePrinciples) > 0 {
		b.WriteString("## Core principles\n\n")
		for _, p := range f.CorePrinciples {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}
	return b.String()
}

// CourseMarkdown renders a micro-course with all its modules.
func CourseMarkdown(c content.Course) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.Title)
	if c.TotalDuration != "" {
		fmt.Fprintf(&b, "*%s · %d modules*\n\n", c.TotalDuration, len(c.Modules))
	}
	if c.Objective != "" {
		fmt.Fprintf(&b, "**Objective:** %s\n\n", c.Objective)
	}
	for i, m := range c.Modules {
		fmt.Fprintf(&b, "## %d. %s (%s)\n\n%s\n\n", i+1, m.Title, m.Duration, m.Content)
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// minutes formats a reading time without a trailing ".0".
func minutes(m float64) string {
	if m == float64(int(m)) {
		return fmt.Sprintf("%d min", int(m))
	}
	return fmt.Sprintf("%.1f min", m)
}
