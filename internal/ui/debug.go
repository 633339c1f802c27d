package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/headstart/internal/otel"
)

// debugPanelChrome is the number of terminal lines consumed by DebugPanel's
// border (top + bottom = 2) and vertical padding (top + bottom = 2).
// Must be updated if DebugPanel style changes.
const debugPanelChrome = 4

// DebugPanel frames the activity overlay.
var DebugPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorMuted).
	Padding(1, 2)

// DebugHeaderStyle titles each overlay section.
var DebugHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorAccent)

// debugOverlay renders request stats and recent events.
// Pure function with no side effects. Returns empty string if ring is nil.
func debugOverlay(ring *otel.RingBuffer, width, height int) string {
	if ring == nil {
		return ""
	}

	stats := ring.Stats()

	// --- Stats section (keyed lookups, not map iteration) ---
	var lines []string
	lines = append(lines, DebugHeaderStyle.Render("Session Stats"))
	lines = append(lines, fmt.Sprintf("  Generations: %d started, %d complete, %d errors",
		stats[otel.KindGenStart], stats[otel.KindGenComplete], stats[otel.KindGenError]))
	lines = append(lines, fmt.Sprintf("  Stale:       %d results dropped", stats[otel.KindStale]))
	lines = append(lines, fmt.Sprintf("  Library:     %d saves, %d errors",
		stats[otel.KindSavedChange], stats[otel.KindStoreError]))
	lines = append(lines, fmt.Sprintf("  Audio:       %d played, %d errors",
		stats[otel.KindAudioPlay], stats[otel.KindAudioError]))
	lines = append(lines, fmt.Sprintf("  Buffer:      %d / %d events", ring.Len(), ring.Cap()))
	lines = append(lines, "")

	// --- Recent events section ---
	lines = append(lines, DebugHeaderStyle.Render("Recent Events"))
	lines = append(lines, eventLines(ring.Last(20), time.Now())...)

	// Truncate to fit terminal height (subtract chrome added by DebugPanel border/padding)
	maxHeight := height - debugPanelChrome
	if maxHeight < 1 {
		maxHeight = 1
	}
	if len(lines) > maxHeight {
		lines = lines[:maxHeight]
	}

	panelWidth := 76
	if panelWidth > width-4 {
		panelWidth = width - 4
	}
	if panelWidth < 20 {
		panelWidth = 20
	}

	return DebugPanel.Width(panelWidth).Render(strings.Join(lines, "\n"))
}

// eventLines formats events one per line, aged relative to now.
func eventLines(events []otel.Event, now time.Time) []string {
	lines := make([]string, 0, len(events))
	for _, e := range events {
		line := fmt.Sprintf("  %6s  %-16s", formatAge(now.Sub(e.Time)), string(e.Kind))
		if e.Op != "" {
			line += " " + e.Op
		}
		if e.Seq > 0 {
			line += fmt.Sprintf(" #%d", e.Seq)
		}
		if e.Dur > 0 {
			line += " " + formatAge(e.Dur)
		}
		if e.Msg != "" {
			line += "  " + truncateRunes(e.Msg, 40)
		}
		if e.Err != "" {
			line += "  ERR:" + truncateRunes(e.Err, 30)
		}
		lines = append(lines, line)
	}
	return lines
}

// formatAge formats a duration as a compact human string.
// Handles negative durations from clock skew by clamping to "0ms".
func formatAge(d time.Duration) string {
	if d < 0 {
		return "0ms"
	}
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
}

// truncateRunes shortens s to at most n runes, marking the cut with "…".
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

// debugStatusBar renders the status bar for the debug overlay.
func debugStatusBar(width int) string {
	hint := StatusBarKey.Render("D") + StatusBarText.Render(":close")
	return StatusBar.Width(width).Render("  [ACTIVITY]  " + hint)
}
