package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/CauaPrates/organiza-ai-app/internal/application/adapter"
)

const defaultGeminiModel = "gemini-2.5-flash-lite"

// GeminiService implements adapter.CategorySuggester using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

var _ adapter.CategorySuggester = (*GeminiService)(nil)

// NewGeminiService creates a new Gemini service instance. An empty model uses the default.
func NewGeminiService(apiKey, modelName string) *GeminiService {
	if modelName == "" {
		modelName = defaultGeminiModel
	}
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the Gemini service is properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// Suggest asks Gemini to pick one of categories for the description.
func (s *GeminiService) Suggest(ctx context.Context, description string, categories []string) (string, error) {
	if !s.IsAvailable() {
		return "", fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.1)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildSuggestionPrompt(description, categories)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}
	return parseSuggestion(text)
}

func buildSuggestionPrompt(description string, categories []string) string {
	var sb strings.Builder

	sb.WriteString("Voce categoriza transacoes financeiras pessoais. ")
	sb.WriteString("Escolha exatamente uma categoria da lista para a descricao abaixo.\n\n")
	sb.WriteString("Categorias:\n")
	for _, c := range categories {
		sb.WriteString("- ")
		sb.WriteString(c)
		sb.WriteString("\n")
	}
	sb.WriteString("\nDescricao: ")
	sb.WriteString(description)
	sb.WriteString("\n\nResponda somente com JSON no formato {\"category\": \"<categoria>\"}. ")
	sb.WriteString("Use uma string vazia se nenhuma categoria servir.")

	return sb.String()
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok && text != "" {
			return string(text), nil
		}
	}
	return "", fmt.Errorf("no text content in response")
}

type geminiSuggestion struct {
	Category string `json:"category"`
}

// parseSuggestion extracts the category, tolerating markdown code fences.
func parseSuggestion(text string) (string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var suggestion geminiSuggestion
	if err := json.Unmarshal([]byte(text), &suggestion); err != nil {
		return "", fmt.Errorf("failed to parse JSON response: %w, content: %s", err, text)
	}
	return strings.TrimSpace(suggestion.Category), nil
}
