package brain

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/abelbrown/headstart/internal/logging"
	"google.golang.org/genai"
)

// Compile-time interface satisfaction check
var _ Provider = (*GeminiProvider)(nil)

// GeminiProvider implements Provider on the Google Gen AI SDK.
type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider creates a provider for the Gemini API. An empty key
// yields a provider that reports itself unavailable.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	if apiKey == "" {
		return &GeminiProvider{}, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiProvider{client: client}, nil
}

func (g *GeminiProvider) Name() string {
	return "gemini"
}

func (g *GeminiProvider) Available() bool {
	return g.client != nil
}

func (g *GeminiProvider) GenerateJSON(ctx context.Context, req JSONRequest) (string, error) {
	if !g.Available() {
		return "", fmt.Errorf("gemini provider not configured")
	}

	resp, err := g.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
	})
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}

	text := responseText(resp)
	logging.Debug("Gemini JSON response", "model", req.Model, "content_length", len(text))
	return text, nil
}

func (g *GeminiProvider) GenerateSpeech(ctx context.Context, req SpeechRequest) (string, error) {
	if !g.Available() {
		return "", fmt.Errorf("gemini provider not configured")
	}

	resp, err := g.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Text), &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityAudio)},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: req.Voice},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("gemini speech request: %w", err)
	}
	return responseAudio(resp)
}

// responseText concatenates the non-thought text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		b.WriteString(p.Text)
	}
	return b.String()
}

// responseAudio extracts the first inline data part of the first candidate
// and returns it base64-encoded.
func responseAudio(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrNoAudio
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0] == nil || parts[0].InlineData == nil || len(parts[0].InlineData.Data) == 0 {
		return "", ErrNoAudio
	}
	return base64.StdEncoding.EncodeToString(parts[0].InlineData.Data), nil
}
