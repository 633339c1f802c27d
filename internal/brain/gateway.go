package brain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abelbrown/headstart/internal/content"
	"github.com/abelbrown/headstart/internal/logging"
	"github.com/abelbrown/headstart/internal/otel"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Operation names, used in events and logs.
const (
	OpPlan    = "plan"
	OpSummary = "summary"
	OpFigure  = "figure"
	OpCourse  = "course"
	OpTopic   = "topic"
	OpSpeech  = "speech"
)

// Models selects the model used by each operation.
type Models struct {
	Plan    string
	Summary string
	Figure  string
	Course  string
	Topic   string
	Speech  string
}

// DefaultModels mirrors the production model choices.
func DefaultModels() Models {
	return Models{
		Plan:    "gemini-3-flash-preview",
		Summary: "gemini-3-flash-preview",
		Figure:  "gemini-3-flash-preview",
		Course:  "gemini-3-pro-preview",
		Topic:   "gemini-3-flash-preview",
		Speech:  "gemini-2.5-flash-preview-tts",
	}
}

// GatewayConfig configures a Gateway. Zero fields fall back to defaults.
type GatewayConfig struct {
	Models   Models
	Voice    string // prebuilt voice name for speech
	Language string // response language, e.g. "Spanish"

	// RequestsPerMinute paces calls client-side; 0 means unlimited.
	RequestsPerMinute int

	Events *otel.Logger
}

// Gateway issues one request per operation. No retries, no streaming.
type Gateway struct {
	provider Provider
	models   Models
	voice    string
	language string
	limiter  *rate.Limiter
	events   *otel.Logger

	newID func() string
}

// NewGateway wraps provider with the prompt and schema for each operation.
func NewGateway(provider Provider, cfg GatewayConfig) *Gateway {
	models := DefaultModels()
	fill := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	fill(&models.Plan, cfg.Models.Plan)
	fill(&models.Summary, cfg.Models.Summary)
	fill(&models.Figure, cfg.Models.Figure)
	fill(&models.Course, cfg.Models.Course)
	fill(&models.Topic, cfg.Models.Topic)
	fill(&models.Speech, cfg.Models.Speech)

	voice := cfg.Voice
	if voice == "" {
		voice = "Kore"
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}

	return &Gateway{
		provider: provider,
		models:   models,
		voice:    voice,
		language: cfg.Language,
		limiter:  limiter,
		events:   cfg.Events,
		newID:    uuid.NewString,
	}
}

// Available reports whether the underlying provider can serve requests.
func (g *Gateway) Available() bool {
	return g.provider != nil && g.provider.Available()
}

// GrowthPlan generates a daily plan for the selected interests.
func (g *Gateway) GrowthPlan(ctx context.Context, interests []string) (content.GrowthPlan, error) {
	var plan content.GrowthPlan
	err := g.generate(ctx, OpPlan, JSONRequest{
		Model:  g.models.Plan,
		Prompt: growthPlanPrompt(interests, g.language),
		Schema: growthPlanSchema,
	}, &plan)
	if err != nil {
		return content.GrowthPlan{}, err
	}
	if plan.DailyFocus == "" {
		return content.GrowthPlan{}, g.fail(OpPlan, errors.New("missing dailyFocus"))
	}
	return plan, nil
}

// BookSummary generates a summary of the named book.
func (g *Gateway) BookSummary(ctx context.Context, title string) (content.BookSummary, error) {
	var s content.BookSummary
	err := g.generate(ctx, OpSummary, JSONRequest{
		Model:  g.models.Summary,
		Prompt: bookSummaryPrompt(title, g.language),
		Schema: bookSummarySchema,
	}, &s)
	if err != nil {
		return content.BookSummary{}, err
	}
	if s.Title == "" {
		return content.BookSummary{}, g.fail(OpSummary, errors.New("missing title"))
	}
	if s.ID == "" {
		s.ID = g.newID()
	}
	return s, nil
}

// HistoricalFigure generates a mentor profile for the named person.
func (g *Gateway) HistoricalFigure(ctx context.Context, name string) (content.HistoricalFigure, error) {
	var f content.HistoricalFigure
	err := g.generate(ctx, OpFigure, JSONRequest{
		Model:  g.models.Figure,
		Prompt: historicalFigurePrompt(name, g.language),
		Schema: historicalFigureSchema,
	}, &f)
	if err != nil {
		return content.HistoricalFigure{}, err
	}
	if f.Name == "" {
		return content.HistoricalFigure{}, g.fail(OpFigure, errors.New("missing name"))
	}
	return f, nil
}

// Course generates a micro-course on topic.
func (g *Gateway) Course(ctx context.Context, topic string) (content.Course, error) {
	var c content.Course
	err := g.generate(ctx, OpCourse, JSONRequest{
		Model:  g.models.Course,
		Prompt: coursePrompt(topic, g.language),
		Schema: courseSchema,
	}, &c)
	if err != nil {
		return content.Course{}, err
	}
	if c.Title == "" {
		return content.Course{}, g.fail(OpCourse, errors.New("missing title"))
	}
	if c.ID == "" {
		c.ID = g.newID()
	}
	return c, nil
}

// BooksByTopic lists recommended book titles for topic.
func (g *Gateway) BooksByTopic(ctx context.Context, topic string) ([]string, error) {
	var titles []string
	err := g.generate(ctx, OpTopic, JSONRequest{
		Model:  g.models.Topic,
		Prompt: topicBooksPrompt(topic, g.language),
		Schema: topicBooksSchema,
	}, &titles)
	if err != nil {
		return nil, err
	}
	if titles == nil {
		titles = []string{}
	}
	return titles, nil
}

// Speak synthesizes text and returns base64-encoded 24 kHz mono PCM16.
func (g *Gateway) Speak(ctx context.Context, text string) (string, error) {
	start := g.begin(OpSpeech, g.models.Speech)
	if err := g.ready(ctx); err != nil {
		return "", g.fail(OpSpeech, err)
	}
	payload, err := g.provider.GenerateSpeech(ctx, SpeechRequest{
		Model: g.models.Speech,
		Voice: g.voice,
		Text:  speechPrompt(text),
	})
	if err == nil && payload == "" {
		err = ErrNoAudio
	}
	if err != nil {
		return "", g.fail(OpSpeech, err)
	}
	g.complete(OpSpeech, g.models.Speech, start, len(payload))
	return payload, nil
}

// generate runs one structured request and decodes the JSON text into out.
func (g *Gateway) generate(ctx context.Context, op string, req JSONRequest, out any) error {
	start := g.begin(op, req.Model)
	if err := g.ready(ctx); err != nil {
		return g.fail(op, err)
	}

	text, err := g.provider.GenerateJSON(ctx, req)
	if err != nil {
		return g.fail(op, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return g.fail(op, errors.New("empty response"))
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return g.fail(op, fmt.Errorf("parse response: %w", err))
	}

	g.complete(op, req.Model, start, len(text))
	return nil
}

func (g *Gateway) ready(ctx context.Context) error {
	if !g.Available() {
		return errors.New("provider not configured")
	}
	return g.limiter.Wait(ctx)
}

func (g *Gateway) begin(op, model string) time.Time {
	logging.Debug("Generation request starting", "op", op, "model", model)
	g.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindGenStart, Comp: "brain", Op: op, Model: model})
	return time.Now()
}

func (g *Gateway) complete(op, model string, start time.Time, size int) {
	dur := time.Since(start)
	logging.Info("Generation complete", "op", op, "model", model, "content_length", size, "dur", dur)
	g.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindGenComplete, Comp: "brain", Op: op, Model: model, Dur: dur, Count: size})
}

// fail wraps cause in ErrGeneration and records it.
func (g *Gateway) fail(op string, cause error) error {
	err := fmt.Errorf("%w: %s: %w", ErrGeneration, op, cause)
	logging.Error("Generation failed", "op", op, "error", cause)
	g.events.Emit(otel.Event{Level: otel.LevelError, Kind: otel.KindGenError, Comp: "brain", Op: op, Err: cause.Error()})
	return err
}
