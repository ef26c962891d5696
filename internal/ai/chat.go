package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// DefaultOpenRouterModel is used when no OpenRouter model is configured.
const DefaultOpenRouterModel = "google/gemini-2.0-flash-lite-001"

// defaultTitle is the X-Title sent to OpenRouter without a configured one.
const defaultTitle = "Client AI Marketing Dashboard"

// chatDefaults are the endpoints and models of the providers that speak the
// OpenAI chat completions format.
var chatDefaults = map[string]struct{ baseURL, model string }{
	ProviderOpenRouter: {"https://openrouter.ai/api/v1", DefaultOpenRouterModel},
	ProviderOpenAI:     {"https://api.openai.com/v1", "gpt-4o-mini"},
	ProviderMistral:    {"https://api.mistral.ai/v1", "mistral-small-latest"},
}

// chatProvider implements Provider over POST {base}/chat/completions. Every
// request asks for a JSON object answer.
type chatProvider struct {
	name   string
	config ProviderConfig
	client *http.Client
	header http.Header
}

// newChatProvider builds a chat completions provider for name, which must be
// a key of chatDefaults. OpenRouter additionally gets its attribution
// headers.
func newChatProvider(name string, cfg ProviderConfig) *chatProvider {
	def := chatDefaults[name]
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.baseURL
	}
	if cfg.Model == "" {
		cfg.Model = def.model
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+cfg.APIKey)
	if name == ProviderOpenRouter {
		if cfg.Title == "" {
			cfg.Title = defaultTitle
		}
		header.Set("X-Title", cfg.Title)
		if cfg.Referer != "" {
			header.Set("HTTP-Referer", cfg.Referer)
		}
	}

	return &chatProvider{
		name:   name,
		config: cfg,
		client: newHTTPClient(),
		header: header,
	}
}

func (p *chatProvider) Name() string { return p.name }

// Generate returns the content of the first choice.
func (p *chatProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	body := chatRequest{
		Model: p.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		ResponseFormat: &chatResponseFormat{Type: "json_object"},
	}

	var result chatResponse
	url := strings.TrimSuffix(p.config.BaseURL, "/") + "/chat/completions"
	if err := postJSON(ctx, p.client, p.name, url, p.header, body, &result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices returned", p.name)
	}
	return result.Choices[0].Message.Content, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string              `json:"model"`
	Messages       []chatMessage       `json:"messages"`
	ResponseFormat *chatResponseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}
