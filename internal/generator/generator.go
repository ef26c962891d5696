// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package generator turns a topic and the business settings into draft
// marketing assets. It builds the prompts, calls the content and image
// clients, parses their JSON answers and normalises Markdown into HTML.
// Nothing is persisted here: callers save a draft explicitly.
package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketdash/internal/ai"
	"marketdash/internal/models"
)

var (
	// ErrSettingsMissing is returned when no business settings are saved.
	ErrSettingsMissing = errors.New("business settings not found, complete the settings first")

	// ErrMalformedResponse is returned when the model's answer cannot be
	// parsed into the requested asset.
	ErrMalformedResponse = errors.New("malformed generation response")

	// ErrInvalidInput is returned for an empty topic or an unknown option.
	ErrInvalidInput = errors.New("invalid generation input")
)

// ContentClient generates text from a system and a user prompt.
type ContentClient interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ImageClient generates one image with the caller's API key.
type ImageClient interface {
	Generate(ctx context.Context, apiKey string, req ai.ImageRequest) (*ai.ImageResult, error)
}

// SettingsSource returns the business settings, or nil when none exist.
type SettingsSource interface {
	Get(ctx context.Context) (*models.BusinessSettings, error)
}

// ImageMirror copies a generated image to durable storage.
type ImageMirror interface {
	Mirror(ctx context.Context, sourceURL, key string) (string, error)
}

// Service generates draft assets.
type Service struct {
	settings SettingsSource
	content  ContentClient
	images   ImageClient
	mirror   ImageMirror
	now      func() time.Time
}

// New creates a generator service. images may be nil when image
// generation is not offered.
func New(settings SettingsSource, content ContentClient, images ImageClient) *Service {
	return &Service{
		settings: settings,
		content:  content,
		images:   images,
		now:      time.Now,
	}
}

// WithMirror enables copying generated images to m.
func (s *Service) WithMirror(m ImageMirror) *Service {
	s.mirror = m
	return s
}

// SEO generates an SEO article about topic.
func (s *Service) SEO(ctx context.Context, topic string) (*models.Asset, error) {
	topic, err := requireTopic(topic)
	if err != nil {
		return nil, err
	}
	article := &models.SEOArticle{}
	if err := s.generate(ctx, seoPrompt(), "Generate an SEO article about: "+topic, article); err != nil {
		return nil, err
	}
	return s.draft(article)
}

// Email generates a campaign email with the given purpose.
func (s *Service) Email(ctx context.Context, topic string, purpose models.EmailPurpose) (*models.Asset, error) {
	topic, err := requireTopic(topic)
	if err != nil {
		return nil, err
	}
	if !purpose.Valid() {
		return nil, fmt.Errorf("%w: unknown email purpose %q", ErrInvalidInput, purpose)
	}
	email := &models.EmailCampaign{}
	user := fmt.Sprintf("Generate a %s email about: %s", purpose, topic)
	if err := s.generate(ctx, emailPrompt(purpose), user, email); err != nil {
		return nil, err
	}
	email.Purpose = purpose
	return s.draft(email)
}

// Social generates a post for one platform.
func (s *Service) Social(ctx context.Context, topic string, platform models.SocialPlatform) (*models.Asset, error) {
	topic, err := requireTopic(topic)
	if err != nil {
		return nil, err
	}
	if !platform.Valid() {
		return nil, fmt.Errorf("%w: unknown platform %q", ErrInvalidInput, platform)
	}
	post := &models.SocialPost{}
	user := fmt.Sprintf("Generate a %s post about: %s", platform, topic)
	if err := s.generate(ctx, socialPrompt(platform), user, post); err != nil {
		return nil, err
	}
	post.Platform = platform
	post.Hashtags = cleanHashtags(post.Hashtags)
	return s.draft(post)
}

// LeadMagnet generates a downloadable resource of the given type.
func (s *Service) LeadMagnet(ctx context.Context, topic string, resourceType models.LeadMagnetType) (*models.Asset, error) {
	topic, err := requireTopic(topic)
	if err != nil {
		return nil, err
	}
	if !resourceType.Valid() {
		return nil, fmt.Errorf("%w: unknown resource type %q", ErrInvalidInput, resourceType)
	}
	lm := &models.LeadMagnet{}
	user := fmt.Sprintf("Generate a %s about: %s", resourceType, topic)
	if err := s.generate(ctx, leadMagnetPrompt(resourceType), user, lm); err != nil {
		return nil, err
	}
	lm.ResourceType = resourceType
	return s.draft(lm)
}

// ImagePrompt expands a short image idea into a detailed prompt for the
// image model.
func (s *Service) ImagePrompt(ctx context.Context, idea, style string) (string, error) {
	idea, err := requireTopic(idea)
	if err != nil {
		return "", err
	}
	user := "Generate a detailed image prompt for: " + idea
	if style = strings.TrimSpace(style); style != "" {
		user += "\nPreferred style: " + style
	}

	var out struct {
		DetailedPrompt string `json:"detailedPrompt"`
	}
	if err := s.generate(ctx, imagePromptPrompt(), user, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.DetailedPrompt) == "" {
		return "", fmt.Errorf("%w: empty detailedPrompt", ErrMalformedResponse)
	}
	return strings.TrimSpace(out.DetailedPrompt), nil
}

// generate loads the settings, calls the content client and decodes its
// answer into dst.
func (s *Service) generate(ctx context.Context, system systemPrompt, user string, dst any) error {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if settings == nil {
		return ErrSettingsMissing
	}

	raw, err := s.content.Generate(ctx, system(settings), user)
	if err != nil {
		return err
	}
	return decodeResponse(raw, dst)
}

// draft normalises the payload and wraps it into an unsaved draft asset.
func (s *Service) draft(data models.AssetData) (*models.Asset, error) {
	if err := normalize(data); err != nil {
		return nil, err
	}
	a := models.NewAsset(data, s.now())
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return a, nil
}

func requireTopic(topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", fmt.Errorf("%w: topic is required", ErrInvalidInput)
	}
	return topic, nil
}

// cleanHashtags trims whitespace and leading '#' characters and drops
// empty entries.
func cleanHashtags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimLeft(strings.TrimSpace(t), "#")
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
