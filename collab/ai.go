// ABOUTME: AI text generation behind the credit-metered workspace actions
// ABOUTME: Simulated generator plus a Gemini generator with Google Search grounding
package collab

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"
)

// Source is a web page a grounded completion cites.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

type Completion struct {
	Text    string   `json:"text"`
	Sources []Source `json:"sources,omitempty"`
}

// AITextGenerator turns a prompt into text.
type AITextGenerator interface {
	Generate(ctx context.Context, prompt string) (Completion, error)
}

// SimulatedGenerator replays Replies in order, then echoes the prompt.
type SimulatedGenerator struct {
	Latency Latency
	Replies []string

	mu    sync.Mutex
	calls int
}

func NewSimulatedGenerator() *SimulatedGenerator {
	return &SimulatedGenerator{Latency: Between(500*time.Millisecond, 1500*time.Millisecond)}
}

func (s *SimulatedGenerator) Generate(ctx context.Context, prompt string) (Completion, error) {
	if err := wait(ctx, s.Latency); err != nil {
		return Completion{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls <= len(s.Replies) {
		return Completion{Text: s.Replies[s.calls-1]}, nil
	}
	return Completion{Text: "Here is a draft based on: " + strings.TrimSpace(prompt)}, nil
}

// Calls reports how many prompts the generator has answered.
func (s *SimulatedGenerator) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// GeminiGenerator calls the Gemini API with search grounding enabled.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini api key", ErrMissingCredential)
	}
	if model == "" {
		return nil, errors.New("gemini model is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (Completion, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	})
	if err != nil {
		return Completion{}, fmt.Errorf("gemini generate: %w", err)
	}
	return completionFromResponse(resp), nil
}

func completionFromResponse(resp *genai.GenerateContentResponse) Completion {
	out := Completion{Text: resp.Text()}
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return out
	}

	seen := make(map[string]bool)
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" || seen[chunk.Web.URI] {
			continue
		}
		seen[chunk.Web.URI] = true
		out.Sources = append(out.Sources, Source{URI: chunk.Web.URI, Title: chunk.Web.Title})
	}
	return out
}
