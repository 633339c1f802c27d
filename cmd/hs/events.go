package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abelbrown/headstart/internal/config"
)

// eventRecord mirrors otel.Event for JSON decoding, so older logs with
// unknown kinds or fields still read.
type eventRecord struct {
	Time      time.Time      `json:"t"`
	Level     string         `json:"level"`
	Kind      string         `json:"kind"`
	Comp      string         `json:"comp"`
	SessionID string         `json:"session_id"`
	Op        string         `json:"op"`
	Seq       uint64         `json:"seq"`
	Model     string         `json:"model"`
	DurMs     float64        `json:"dur_ms"`
	Count     int            `json:"count"`
	Err       string         `json:"err"`
	Msg       string         `json:"msg"`
	Extra     map[string]any `json:"extra"`
}

// levelRank returns a numeric rank for filtering (higher = more severe).
func levelRank(level string) int {
	switch level {
	case "info":
		return 1
	case "warn":
		return 2
	case "error":
		return 3
	default:
		return 0
	}
}

// eventFilter selects records; empty fields match everything.
type eventFilter struct {
	kind    string // prefix
	level   string // minimum
	comp    string
	op      string
	session string // prefix
}

func (f eventFilter) match(ev eventRecord) bool {
	if f.kind != "" && !strings.HasPrefix(ev.Kind, f.kind) {
		return false
	}
	if f.level != "" && levelRank(ev.Level) < levelRank(f.level) {
		return false
	}
	if f.comp != "" && ev.Comp != f.comp {
		return false
	}
	if f.op != "" && ev.Op != f.op {
		return false
	}
	if f.session != "" && !strings.HasPrefix(ev.SessionID, f.session) {
		return false
	}
	return true
}

// formatEvent renders one record as a single human-readable line.
func formatEvent(ev eventRecord) string {
	ts := ev.Time.Local().Format("15:04:05.000")
	lvl := strings.ToUpper(ev.Level)
	if lvl == "" {
		lvl = "?"
	}

	parts := []string{fmt.Sprintf("%s %-5s [%-10s] %-16s", ts, lvl, ev.Comp, ev.Kind)}

	if ev.Op != "" {
		parts = append(parts, "op="+ev.Op)
	}
	if ev.Seq > 0 {
		parts = append(parts, fmt.Sprintf("#%d", ev.Seq))
	}
	if ev.Model != "" {
		parts = append(parts, "model="+ev.Model)
	}
	if ev.Msg != "" {
		parts = append(parts, "- "+ev.Msg)
	}
	if ev.DurMs > 0 {
		parts = append(parts, fmt.Sprintf("(%.*fms)", durPrecision(ev.DurMs), ev.DurMs))
	}
	if ev.Count > 0 {
		parts = append(parts, fmt.Sprintf("n=%d", ev.Count))
	}
	if ev.Err != "" {
		parts = append(parts, "err="+ev.Err)
	}

	return strings.Join(parts, " ")
}

func eventsCmd(opts *options) *cobra.Command {
	var (
		tail   int
		follow bool
		filter eventFilter
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show the event log written by the TUI and CLI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logPath := config.EventsPath()
			f, err := os.Open(logPath)
			if err != nil {
				return fmt.Errorf("event log not found at %s (run headstart first): %w", logPath, err)
			}
			defer f.Close()

			w := cmd.OutOrStdout()
			show := func(l parsedLine) {
				if opts.jsonOut {
					fmt.Fprintln(w, string(l.raw))
					return
				}
				fmt.Fprintln(w, formatEvent(l.ev))
			}

			for _, l := range readTailLines(f, tail, filter.match) {
				show(l)
			}
			if !follow {
				return nil
			}

			// Follow mode: poll for new lines until interrupted
			ctx := cmd.Context()
			reader := bufio.NewReader(f)
			for {
				line, err := reader.ReadBytes('\n')
				if err != nil {
					if err != io.EOF {
						return err
					}
					select {
					case <-ctx.Done():
						return nil
					case <-time.After(100 * time.Millisecond):
					}
					continue
				}
				if l, ok := parseLine(trimLine(line)); ok && filter.match(l.ev) {
					show(l)
				}
			}
		},
	}

	cmd.Flags().IntVarP(&tail, "tail", "n", 50, "number of recent lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "follow mode (like tail -f)")
	cmd.Flags().StringVar(&filter.kind, "kind", "", "filter by event kind prefix (e.g. 'gen')")
	cmd.Flags().StringVar(&filter.level, "level", "", "minimum level: debug, info, warn, error")
	cmd.Flags().StringVar(&filter.comp, "comp", "", "filter by component name")
	cmd.Flags().StringVar(&filter.op, "op", "", "filter by operation (e.g. 'summary')")
	cmd.Flags().StringVar(&filter.session, "session", "", "filter by session id prefix")
	return cmd
}

type parsedLine struct {
	ev  eventRecord
	raw []byte
}

func parseLine(raw []byte) (parsedLine, bool) {
	if len(raw) == 0 {
		return parsedLine{}, false
	}
	var ev eventRecord
	if json.Unmarshal(raw, &ev) != nil {
		return parsedLine{}, false
	}
	// Copy raw since scanners reuse their buffer
	rawCopy := make([]byte, len(raw))
	copy(rawCopy, raw)
	return parsedLine{ev: ev, raw: rawCopy}, true
}

// readTailLines reads r and returns the last n lines matching the filter.
func readTailLines(r io.Reader, n int, match func(eventRecord) bool) []parsedLine {
	if n <= 0 {
		return nil
	}
	scanner := bufio.NewScanner(r)
	// Allow large lines (some events may have big Extra maps)
	scanner.Buffer(make([]byte, 0, 64*1024), 256*1024)

	ring := make([]parsedLine, 0, n)
	for scanner.Scan() {
		l, ok := parseLine(scanner.Bytes())
		if !ok || !match(l.ev) {
			continue
		}
		if len(ring) < n {
			ring = append(ring, l)
		} else {
			copy(ring, ring[1:])
			ring[n-1] = l
		}
	}
	return ring
}

func trimLine(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}

func durPrecision(ms float64) int {
	if ms >= 100 {
		return 0
	}
	if ms >= 1 {
		return 1
	}
	return 2
}
