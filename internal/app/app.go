// Package app wires configuration, storage, the generation gateway, audio
// and the event log into one Runtime shared by the TUI and the CLI.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abelbrown/headstart/internal/audio"
	"github.com/abelbrown/headstart/internal/brain"
	"github.com/abelbrown/headstart/internal/config"
	"github.com/abelbrown/headstart/internal/logging"
	"github.com/abelbrown/headstart/internal/otel"
	"github.com/abelbrown/headstart/internal/store"
)

// Runtime holds every long-lived dependency. Close releases them.
type Runtime struct {
	Config   *config.Config
	Store    *store.Store
	Saved    *store.SavedBooks
	Gateway  *brain.Gateway
	Player   *audio.Player
	Events   *otel.Logger
	Activity *otel.RingBuffer

	eventsFile *os.File
}

// Open builds a Runtime from cfg. The data directory is created if needed.
func Open(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	if err := os.MkdirAll(config.Dir(), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	rt := &Runtime{Config: cfg, Activity: otel.NewRingBuffer(otel.DefaultRingSize)}

	// Event log is best effort: fall back to memory only
	f, err := os.OpenFile(config.EventsPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logging.Warn("Event log unavailable", "path", config.EventsPath(), "error", err)
		rt.Events = otel.NewNullLogger()
	} else {
		rt.eventsFile = f
		rt.Events = otel.NewLogger(f)
	}
	rt.Events.SetRingBuffer(rt.Activity)

	dbPath := cfg.DatabasePath()
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			rt.Close()
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	st, err := store.Open(dbPath)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	rt.Store = st
	rt.Saved = store.NewSavedBooks(st)

	provider, err := brain.NewGeminiProvider(ctx, cfg.Gemini.APIKey)
	if err != nil {
		rt.Close()
		return nil, err
	}
	if !provider.Available() {
		logging.Warn("No Gemini API key configured; generation disabled")
	}
	rt.Gateway = brain.NewGateway(provider, GatewayConfig(cfg, rt.Events))

	cmdline := PlayerCommand(cfg)
	rt.Player = audio.NewPlayer(func() (audio.Output, error) {
		return audio.DetectCommandOutput(cmdline)
	})

	rt.Events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindStartup, Comp: "main", Msg: dbPath})
	return rt, nil
}

// GatewayConfig maps the file configuration onto the gateway.
func GatewayConfig(cfg *config.Config, events *otel.Logger) brain.GatewayConfig {
	g := cfg.Gemini
	return brain.GatewayConfig{
		Models: brain.Models{
			Plan:    g.PlanModel,
			Summary: g.SummaryModel,
			Figure:  g.FigureModel,
			Course:  g.CourseModel,
			Topic:   g.TopicModel,
			Speech:  g.SpeechModel,
		},
		Voice:             g.Voice,
		Language:          cfg.Language,
		RequestsPerMinute: g.RequestsPerMinute,
		Events:            events,
	}
}

// PlayerCommand returns the configured player command line, or nil to
// autodetect. A known player named without args gets its default args.
func PlayerCommand(cfg *config.Config) []string {
	name := cfg.Audio.Command
	if name == "" {
		return nil
	}
	if len(cfg.Audio.Args) > 0 {
		return append([]string{name}, cfg.Audio.Args...)
	}
	for _, c := range audio.DefaultPlayerCommands {
		if c[0] == name {
			return c
		}
	}
	return []string{name}
}

// Close flushes the event log and closes the database.
func (r *Runtime) Close() {
	if r.Events != nil {
		r.Events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindShutdown, Comp: "main"})
		r.Events.Close()
	}
	if r.eventsFile != nil {
		r.eventsFile.Close()
	}
	if r.Store != nil {
		if err := r.Store.Close(); err != nil {
			logging.Warn("Failed to close database", "error", err)
		}
	}
}
