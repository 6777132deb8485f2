package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/altynbek8/ServiceApp/internal/model"
)

// Client is the language-model surface the app depends on. Search uses
// ExtractIntent; review summaries use Generate.
type Client interface {
	ExtractIntent(ctx context.Context, query string) (*model.SearchIntent, error)
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

const intentSystemPrompt = `Ты — поисковый ассистент маркетплейса услуг и площадок.
Разбери запрос пользователя и выдай структурированный фильтр поиска.
category — профессия или тип площадки одним-двумя словами.
city — город, если назван. maxPrice — потолок цены, если назван.
query_tags — до пяти коротких тегов для текстового поиска.`

type GeminiClient struct {
	client  *genai.Client
	modelID string
}

func NewGeminiClient(ctx context.Context, apiKey, modelID string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key is required")
	}
	if modelID == "" {
		modelID = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiClient{client: client, modelID: modelID}, nil
}

// ExtractIntent asks the model for a structured filter. The JSON
// response schema keeps the output machine-parseable; a schema miss
// still surfaces as an unmarshal error the caller treats as fallback.
func (c *GeminiClient) ExtractIntent(ctx context.Context, query string) (*model.SearchIntent, error) {
	m := c.client.GenerativeModel(c.modelID)
	m.SetTemperature(0)
	m.SystemInstruction = genai.NewUserContent(genai.Text(intentSystemPrompt))
	m.ResponseMIMEType = "application/json"
	m.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"category": {Type: genai.TypeString},
			"city":     {Type: genai.TypeString},
			"maxPrice": {Type: genai.TypeNumber},
			"intent": {
				Type: genai.TypeString,
				Enum: []string{
					string(model.IntentSearchSpecialist),
					string(model.IntentSearchVenue),
					string(model.IntentGeneralQuestion),
				},
			},
			"query_tags": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"intent"},
	}

	resp, err := m.GenerateContent(ctx, genai.Text(query))
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}

	raw := collectText(resp)
	if raw == "" {
		return nil, errors.New("gemini returned empty content")
	}

	var intent model.SearchIntent
	if err := json.Unmarshal([]byte(raw), &intent); err != nil {
		return nil, fmt.Errorf("failed to parse intent %q: %w", raw, err)
	}
	return &intent, nil
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	m := c.client.GenerativeModel(c.modelID)
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	text := collectText(resp)
	if text == "" {
		return "", errors.New("gemini returned empty content")
	}
	return text, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func collectText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String())
}
