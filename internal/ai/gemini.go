// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com"
	geminiModel   = "gemini-2.0-flash-lite"
)

// geminiProvider talks to the Gemini REST API
// (POST /v1beta/models/{model}:generateContent) in JSON response mode.
type geminiProvider struct {
	url    string
	client *http.Client
	header http.Header
}

func newGemini(cfg ProviderConfig) *geminiProvider {
	base := cfg.BaseURL
	if base == "" {
		base = geminiBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = geminiModel
	}

	header := http.Header{}
	header.Set("x-goog-api-key", cfg.APIKey)

	return &geminiProvider{
		url:    fmt.Sprintf("%s/v1beta/models/%s:generateContent", strings.TrimSuffix(base, "/"), model),
		client: newHTTPClient(),
		header: header,
	}
}

func (p *geminiProvider) Name() string { return ProviderGemini }

// Generate joins the text parts of the first candidate. A prompt refused by
// the safety filters is reported as a 422 APIError.
func (p *geminiProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	body := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: userPrompt}}},
		},
		GenerationConfig: &geminiGenerationConfig{ResponseMimeType: "application/json"},
	}

	var result geminiResponse
	if err := postJSON(ctx, p.client, ProviderGemini, p.url, p.header, body, &result); err != nil {
		return "", err
	}

	if reason := result.PromptFeedback.BlockReason; reason != "" {
		return "", &APIError{
			Provider:   ProviderGemini,
			StatusCode: http.StatusUnprocessableEntity,
			Message:    "prompt blocked: " + reason,
		}
	}
	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("gemini: no candidates returned")
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini: empty candidate (finish reason %q)", result.Candidates[0].FinishReason)
	}
	return sb.String(), nil
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"system_instruction,omitempty"`
	Contents          []geminiContent         `json:"contents"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

type geminiFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

type geminiResponse struct {
	Candidates     []geminiCandidate `json:"candidates"`
	PromptFeedback geminiFeedback    `json:"promptFeedback"`
}
