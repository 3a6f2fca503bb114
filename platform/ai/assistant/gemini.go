package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"propertychat_backend/platform/config"

	"google.golang.org/genai"
)

// GeminiClient talks to the Gemini API directly when no bespoke assistant
// endpoint is deployed. It renders the same request contract into a system
// instruction plus conversation history.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini-backed assistant provider.
func NewGeminiClient(ctx context.Context, cfg config.AssistantConfig) (*GeminiClient, error) {
	if cfg.GetGeminiAPIKey() == "" {
		return nil, fmt.Errorf("gemini api key not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GetGeminiAPIKey(),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  cfg.GetGeminiModel(),
	}, nil
}

// Chat sends one turn to Gemini with the property context baked into the
// system instruction.
func (c *GeminiClient) Chat(ctx context.Context, req Request) (Response, error) {
	contents := make([]*genai.Content, 0, len(req.PreviousMessages)+1)
	for _, m := range req.PreviousMessages {
		role := genai.RoleUser
		if m.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: req.Message}},
	})

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: c.systemPrompt(req)}},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return Response{}, fmt.Errorf("gemini request failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return Response{}, fmt.Errorf("gemini returned an empty message")
	}

	return Response{Message: text}, nil
}

func (c *GeminiClient) systemPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("You are a friendly real-estate assistant helping a visitor evaluate a single property listing.\n")
	if req.UserName != "" {
		b.WriteString("The visitor's name is " + req.UserName + ".\n")
	}
	if req.Language == "hi" {
		b.WriteString("Reply in Hindi.\n")
	} else {
		b.WriteString("Reply in English.\n")
	}
	if req.OneQuestionAtTime {
		b.WriteString("Ask at most one question per reply.\n")
	}
	b.WriteString("When the visitor asks to see the listing, include the phrase \"show property details\" in your reply.\n")
	b.WriteString("When the visitor is ready to proceed, say you need their details, including the phrase \"need your details\".\n")

	if req.Property != nil {
		if data, err := json.Marshal(req.Property); err == nil {
			b.WriteString("Property listing data:\n")
			b.Write(data)
			b.WriteString("\n")
		}
	}

	return b.String()
}

var _ Client = (*GeminiClient)(nil)
