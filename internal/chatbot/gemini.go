package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// Gemini's conversation roles.
const (
	roleUser  = "user"
	roleModel = "model"
)

type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(
	ctx context.Context,
	system string,
	history []Turn,
	message string,
) (string, error) {

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, t := range history {
		role := roleUser
		if t.Role == models.ChatRoleAssistant {
			role = roleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: t.Content}},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  roleUser,
		Parts: []*genai.Part{{Text: message}},
	})

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		Temperature:       genai.Ptr(float32(0.4)),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no content generated")
	}

	var b strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}

	reply := strings.TrimSpace(b.String())
	if reply == "" {
		return "", errors.New("empty response from model")
	}
	return reply, nil
}

var _ Generator = (*GeminiGenerator)(nil)
