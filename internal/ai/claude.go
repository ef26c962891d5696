// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

const (
	claudeBaseURL  = "https://api.anthropic.com"
	claudeModel    = "claude-sonnet-4-6"
	claudeVersion  = "2023-06-01"
	claudeMaxToken = 4096
)

// claudePrefill opens the assistant turn so the answer continues a JSON
// object. The Messages API has no response_format switch.
const claudePrefill = "{"

var errClaudeNoText = errors.New("claude: no text content in response")

// claudeProvider talks to the Anthropic Messages API (POST /v1/messages).
type claudeProvider struct {
	model  string
	url    string
	client *http.Client
	header http.Header
}

func newClaude(cfg ProviderConfig) *claudeProvider {
	base := cfg.BaseURL
	if base == "" {
		base = claudeBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = claudeModel
	}

	header := http.Header{}
	header.Set("x-api-key", cfg.APIKey)
	header.Set("anthropic-version", claudeVersion)

	return &claudeProvider{
		model:  model,
		url:    strings.TrimSuffix(base, "/") + "/v1/messages",
		client: newHTTPClient(),
		header: header,
	}
}

func (p *claudeProvider) Name() string { return ProviderClaude }

// Generate returns the prefilled JSON object built from the first text block.
func (p *claudeProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	body := claudeRequest{
		Model:     p.model,
		MaxTokens: claudeMaxToken,
		System:    systemPrompt,
		Messages: []claudeMessage{
			{Role: "user", Content: userPrompt},
			{Role: "assistant", Content: claudePrefill},
		},
	}

	var result claudeResponse
	if err := postJSON(ctx, p.client, ProviderClaude, p.url, p.header, body, &result); err != nil {
		return "", err
	}

	for _, block := range result.Content {
		if block.Type != "text" {
			continue
		}
		text := strings.TrimSpace(block.Text)
		if strings.HasPrefix(text, claudePrefill) {
			return text, nil
		}
		return claudePrefill + text, nil
	}
	return "", errClaudeNoText
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	System    string          `json:"system,omitempty"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type claudeResponse struct {
	Content    []claudeContentBlock `json:"content"`
	StopReason string               `json:"stop_reason"`
}
