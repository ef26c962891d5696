// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"marketdash/internal/generator"
	"marketdash/internal/models"
)

// --- Generation endpoints ---
//
// Each endpoint accepts a small JSON request, calls the generator with the
// request context and returns an unsaved draft. Nothing is persisted here:
// the client saves a draft through POST /api/assets.

type topicRequest struct {
	Topic        string                `json:"topic"`
	Purpose      models.EmailPurpose   `json:"purpose,omitempty"`
	Platform     models.SocialPlatform `json:"platform,omitempty"`
	ResourceType models.LeadMagnetType `json:"resourceType,omitempty"`
}

type repurposeRequest struct {
	Content  string              `json:"content"`
	Channels []generator.Channel `json:"channels"`
}

type imagePromptRequest struct {
	Idea  string `json:"idea"`
	Style string `json:"style"`
}

type imagePromptResponse struct {
	Prompt string `json:"prompt"`
}

// GenerateSEO drafts an SEO article.
func (a *API) GenerateSEO(w http.ResponseWriter, r *http.Request) {
	in, ok := a.topic(w, r)
	if !ok {
		return
	}
	defer a.state.BeginGenerating()()

	asset, err := a.generator.SEO(r.Context(), in.Topic)
	a.respondDraft(w, r, "generate seo article", asset, err)
}

// GenerateEmail drafts a campaign email for the requested purpose.
func (a *API) GenerateEmail(w http.ResponseWriter, r *http.Request) {
	in, ok := a.topic(w, r)
	if !ok {
		return
	}
	if in.Purpose == "" {
		in.Purpose = models.EmailPurposeNewsletter
	}
	defer a.state.BeginGenerating()()

	asset, err := a.generator.Email(r.Context(), in.Topic, in.Purpose)
	a.respondDraft(w, r, "generate email", asset, err)
}

// GenerateSocial drafts a post for one platform.
func (a *API) GenerateSocial(w http.ResponseWriter, r *http.Request) {
	in, ok := a.topic(w, r)
	if !ok {
		return
	}
	defer a.state.BeginGenerating()()

	asset, err := a.generator.Social(r.Context(), in.Topic, in.Platform)
	a.respondDraft(w, r, "generate social post", asset, err)
}

// GenerateLeadMagnet drafts a downloadable resource.
func (a *API) GenerateLeadMagnet(w http.ResponseWriter, r *http.Request) {
	in, ok := a.topic(w, r)
	if !ok {
		return
	}
	if in.ResourceType == "" {
		in.ResourceType = models.LeadMagnetGuide
	}
	defer a.state.BeginGenerating()()

	asset, err := a.generator.LeadMagnet(r.Context(), in.Topic, in.ResourceType)
	a.respondDraft(w, r, "generate lead magnet", asset, err)
}

// GenerateRepurpose turns one piece of content into drafts for several
// channels with a single model call.
func (a *API) GenerateRepurpose(w http.ResponseWriter, r *http.Request) {
	var in repurposeRequest
	if err := decode(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateSource(in.Content); msg != "" {
		writeError(w, r, http.StatusUnprocessableEntity, msg)
		return
	}
	defer a.state.BeginGenerating()()

	drafts, err := a.generator.Repurpose(r.Context(), in.Content, in.Channels)
	if err != nil {
		fail(w, r, "repurpose content", err)
		return
	}
	slog.Info("content repurposed", "channels", len(drafts))
	writeJSON(w, r, http.StatusOK, drafts)
}

// GenerateImagePrompt expands a short idea into a detailed image prompt.
func (a *API) GenerateImagePrompt(w http.ResponseWriter, r *http.Request) {
	var in imagePromptRequest
	if err := decode(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateTopic(in.Idea); msg != "" {
		writeError(w, r, http.StatusUnprocessableEntity, msg)
		return
	}
	if msg := validateStyle(in.Style); msg != "" {
		writeError(w, r, http.StatusUnprocessableEntity, msg)
		return
	}
	defer a.state.BeginGenerating()()

	prompt, err := a.generator.ImagePrompt(r.Context(), in.Idea, in.Style)
	if err != nil {
		fail(w, r, "generate image prompt", err)
		return
	}
	writeJSON(w, r, http.StatusOK, imagePromptResponse{Prompt: prompt})
}

// GenerateImage renders an image with the OpenAI key from the application
// context and returns an image draft.
func (a *API) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var in generator.ImageInput
	if err := decode(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateTopic(in.Prompt); msg != "" {
		writeError(w, r, http.StatusUnprocessableEntity, msg)
		return
	}
	if msg := validateStyle(in.Style); msg != "" {
		writeError(w, r, http.StatusUnprocessableEntity, msg)
		return
	}
	defer a.state.BeginGenerating()()

	asset, err := a.generator.Image(r.Context(), a.imageKey(), in)
	a.respondDraft(w, r, "generate image", asset, err)
}

// imageKey prefers the key entered by the user over the configured one.
func (a *API) imageKey() string {
	if key := a.state.OpenAIAPIKey(); key != "" {
		return key
	}
	return a.openAIKey
}

// topic decodes and validates a single-topic generation request.
func (a *API) topic(w http.ResponseWriter, r *http.Request) (topicRequest, bool) {
	var in topicRequest
	if err := decode(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return in, false
	}
	if msg := validateTopic(in.Topic); msg != "" {
		writeError(w, r, http.StatusUnprocessableEntity, msg)
		return in, false
	}
	return in, true
}

func (a *API) respondDraft(w http.ResponseWriter, r *http.Request, op string, asset *models.Asset, err error) {
	if err != nil {
		fail(w, r, op, err)
		return
	}
	slog.Info("draft generated", "type", asset.Type(), "id", asset.ID)
	writeJSON(w, r, http.StatusOK, asset)
}
