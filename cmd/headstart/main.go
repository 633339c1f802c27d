package main

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/headstart/internal/app"
	"github.com/abelbrown/headstart/internal/catalog"
	"github.com/abelbrown/headstart/internal/config"
	"github.com/abelbrown/headstart/internal/controller"
	"github.com/abelbrown/headstart/internal/logging"
	"github.com/abelbrown/headstart/internal/otel"
	"github.com/abelbrown/headstart/internal/render"
	"github.com/abelbrown/headstart/internal/ui"
)

func main() {
	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Logs go to a file; the terminal belongs to the TUI
	if err := logging.Init(config.Dir()); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.Close()

	rt, err := app.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer rt.Close()

	saved, err := rt.Saved.Load()
	if err != nil {
		logging.Warn("Saved books unavailable, starting empty", "error", err)
		saved = nil
	}

	gw := rt.Gateway
	events := rt.Events

	// Create UI app with dependency injection
	appCfg := ui.AppConfig{
		Controller: controller.New(saved, rt.Saved, events),
		Catalog:    catalog.Default(),
		Renderer:   render.NewRenderer(cfg.UI.Theme, 80),
		Activity:   rt.Activity,
		HomeSteps:  cfg.UI.HomeSteps,

		GeneratePlan: func(t controller.Ticket, interests []string) tea.Cmd {
			return func() tea.Msg {
				plan, err := gw.GrowthPlan(ctx, interests)
				return ui.PlanGenerated{Ticket: t, Plan: plan, Err: err}
			}
		},
		SummarizeBook: func(t controller.Ticket, title string) tea.Cmd {
			return func() tea.Msg {
				s, err := gw.BookSummary(ctx, title)
				return ui.SummaryGenerated{Ticket: t, Summary: s, Err: err}
			}
		},
		LookupFigure: func(t controller.Ticket, name string) tea.Cmd {
			return func() tea.Msg {
				f, err := gw.HistoricalFigure(ctx, name)
				return ui.FigureGenerated{Ticket: t, Figure: f, Err: err}
			}
		},
		CreateCourse: func(t controller.Ticket, topic string) tea.Cmd {
			return func() tea.Msg {
				c, err := gw.Course(ctx, topic)
				return ui.CourseGenerated{Ticket: t, Course: c, Err: err}
			}
		},
		ExploreTopic: func(t controller.Ticket, topic string) tea.Cmd {
			return func() tea.Msg {
				titles, err := gw.BooksByTopic(ctx, topic)
				return ui.TopicBooksLoaded{Ticket: t, Titles: titles, Err: err}
			}
		},
		// speak: synthesize, then hand the audio to the player
		Speak: func(t controller.Ticket, text string) tea.Cmd {
			return func() tea.Msg {
				payload, err := gw.Speak(ctx, text)
				if err != nil {
					return ui.SpeechPlayed{Ticket: t, Err: err}
				}
				start := time.Now()
				if err := rt.Player.PlayBase64(ctx, payload); err != nil {
					events.Emit(otel.Event{Level: otel.LevelError, Kind: otel.KindAudioError, Comp: "audio", Seq: t.Seq, Err: err.Error()})
					return ui.SpeechPlayed{Ticket: t, Err: err}
				}
				events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindAudioPlay, Comp: "audio", Seq: t.Seq, Dur: time.Since(start)})
				return ui.SpeechPlayed{Ticket: t}
			}
		},
	}

	// Run UI (blocks until quit)
	program := tea.NewProgram(ui.NewApp(appCfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logging.Error("Error running program", "error", err)
	}

	// Cancel in-flight requests before closing the store
	cancel()
}
