// Package brain is the generation gateway: it turns user intents into prompts,
// sends them to a generative model with a declared output shape, and parses
// the answers into content records.
package brain

import (
	"context"
	"errors"

	"google.golang.org/genai"
)

// ErrGeneration marks every gateway failure. Network errors, malformed JSON
// and missing fields are not distinguished from one another.
var ErrGeneration = errors.New("generation failed")

// ErrNoAudio is returned by Speak when the response carries no audio payload.
var ErrNoAudio = errors.New("no audio in response")

// Provider is a generative model backend.
type Provider interface {
	// Name returns the provider name (e.g., "gemini")
	Name() string

	// Available returns true if the provider is configured and ready
	Available() bool

	// GenerateJSON returns the raw JSON text produced for req.
	GenerateJSON(ctx context.Context, req JSONRequest) (string, error)

	// GenerateSpeech returns the base64-encoded PCM audio produced for req.
	GenerateSpeech(ctx context.Context, req SpeechRequest) (string, error)
}

// JSONRequest asks for structured output matching Schema.
type JSONRequest struct {
	Model  string
	Prompt string
	Schema *genai.Schema
}

// SpeechRequest asks for text to be read aloud.
type SpeechRequest struct {
	Model string
	Voice string
	Text  string
}
