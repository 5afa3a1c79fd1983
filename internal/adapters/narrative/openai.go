package narrative

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const defaultSystemPrompt = `You are a seasoned on-chain trading analyst writing one-liner report cards.
Write in second person, be specific about the numbers you are given, and never exceed 60 words.
No emojis, no financial advice disclaimers.`

// OpenAIConfig configures the OpenAI-backed narrative generator.
type OpenAIConfig struct {
	// Required: OpenAI API key (falls back to OPENAI_API_KEY).
	APIKey string

	// Optional: model (defaults to gpt-4o-mini).
	Model string

	// Optional: system prompt (defaults to the analyst persona).
	SystemPrompt string

	// Optional: temperature 0.0-2.0 (defaults to 0.7).
	Temperature float32

	// Optional: max tokens per response (defaults to 160).
	MaxTokens int
}

// OpenAIGenerator implements domain.NarrativeProvider on the OpenAI chat
// completions API.
type OpenAIGenerator struct {
	client       *openai.Client
	model        string
	systemPrompt string
	temperature  float32
	maxTokens    int
}

// NewOpenAIGenerator creates a generator, or an error when no API key is
// available anywhere.
func NewOpenAIGenerator(config *OpenAIConfig) (*OpenAIGenerator, error) {
	if config == nil {
		config = &OpenAIConfig{}
	}

	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("APIKey is required (or set OPENAI_API_KEY environment variable)")
		}
	}

	model := config.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	systemPrompt := config.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt
	}

	temperature := config.Temperature
	if temperature == 0 {
		temperature = 0.7
	}

	maxTokens := config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 160
	}

	return &OpenAIGenerator{
		client:       openai.NewClient(apiKey),
		model:        model,
		systemPrompt: systemPrompt,
		temperature:  temperature,
		maxTokens:    maxTokens,
	}, nil
}

// Generate produces the analytical note for one prompt payload.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: g.systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("openai returned an empty message")
	}

	return text, nil
}
