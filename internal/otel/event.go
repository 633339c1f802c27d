// Package otel records structured lifecycle events for HeadStart.
//
// Events are typed structs written as JSONL by an asynchronous Logger. An
// optional RingBuffer keeps the most recent events in memory for the
// profile screen's activity list.
package otel

import (
	"encoding/json"
	"time"
)

// Level defines event severity for filtering.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// EventKind identifies the category of an event, "<subsystem>.<action>".
type EventKind string

const (
	// Generation gateway
	KindGenStart    EventKind = "gen.start"
	KindGenComplete EventKind = "gen.complete"
	KindGenError    EventKind = "gen.error"

	// View-state controller
	KindTransition EventKind = "ui.transition"
	KindStale      EventKind = "ui.stale_result"
	KindNavigate   EventKind = "ui.navigate"

	// Saved collection
	KindSavedChange EventKind = "store.saved"
	KindStoreError  EventKind = "store.error"

	// Audio
	KindAudioPlay  EventKind = "audio.play"
	KindAudioError EventKind = "audio.error"

	// Process
	KindStartup  EventKind = "sys.startup"
	KindShutdown EventKind = "sys.shutdown"
)

// Event is one observability record. Kind is required; Time and SessionID
// are filled in by the Logger.
type Event struct {
	Time      time.Time      `json:"t"`
	Level     Level          `json:"level,omitempty"`
	Kind      EventKind      `json:"kind"`
	Comp      string         `json:"comp,omitempty"` // "brain", "controller", "ui", "main"
	SessionID string         `json:"session_id,omitempty"`
	Op        string         `json:"op,omitempty"`  // gateway operation or controller slot
	Seq       uint64         `json:"seq,omitempty"` // request ticket sequence
	Model     string         `json:"model,omitempty"`
	Dur       time.Duration  `json:"-"`
	DurMs     float64        `json:"dur_ms,omitempty"`
	Count     int            `json:"count,omitempty"`
	Err       string         `json:"err,omitempty"`
	Msg       string         `json:"msg,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// MarshalJSON converts Dur to DurMs.
func (e Event) MarshalJSON() ([]byte, error) {
	type alias Event
	a := alias(e)
	if e.Dur > 0 {
		a.DurMs = float64(e.Dur) / float64(time.Millisecond)
	}
	return json.Marshal(a)
}
