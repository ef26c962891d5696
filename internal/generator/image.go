// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"marketdash/internal/ai"
	"marketdash/internal/models"
	"marketdash/internal/storage"
)

// defaultImageTitle is used when the caller gives no title.
const defaultImageTitle = "Generated Image"

// ImageInput describes an image to generate.
type ImageInput struct {
	Title    string                `json:"title"`
	Prompt   string                `json:"prompt"`
	Style    string                `json:"style"`
	Size     ai.ImageSize          `json:"size"`
	Quality  ai.ImageQuality       `json:"quality"`
	Platform models.SocialPlatform `json:"platform"`
}

// Image generates an image with the caller's image API key and returns an
// image draft carrying the cost and model. When a mirror is configured the
// draft points at the mirrored copy; a failed mirror keeps the upstream URL.
func (s *Service) Image(ctx context.Context, apiKey string, in ImageInput) (*models.Asset, error) {
	if s.images == nil {
		return nil, errors.New("image generation is not configured")
	}
	prompt := strings.TrimSpace(in.Prompt)
	if prompt == "" {
		return nil, fmt.Errorf("%w: prompt is required", ErrInvalidInput)
	}
	if in.Platform != "" && !in.Platform.Valid() {
		return nil, fmt.Errorf("%w: unknown platform %q", ErrInvalidInput, in.Platform)
	}
	if in.Size != "" && !in.Size.Valid() {
		return nil, fmt.Errorf("%w: unknown image size %q", ErrInvalidInput, in.Size)
	}
	if in.Quality != "" && !in.Quality.Valid() {
		return nil, fmt.Errorf("%w: unknown image quality %q", ErrInvalidInput, in.Quality)
	}

	style := strings.TrimSpace(in.Style)
	result, err := s.images.Generate(ctx, apiKey, ai.ImageRequest{
		Prompt:  prompt,
		Style:   style,
		Size:    in.Size,
		Quality: in.Quality,
	})
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = defaultImageTitle
	}
	img := &models.ImageAsset{
		Title:    title,
		Prompt:   prompt,
		ImageURL: result.URL,
		Platform: in.Platform,
		Style:    style,
		Cost:     result.Cost,
		Model:    result.Model,
	}
	a, err := s.draft(img)
	if err != nil {
		return nil, err
	}

	if s.mirror != nil {
		url, err := s.mirror.Mirror(ctx, result.URL, storage.ImageKey(a.ID, a.CreatedAt))
		if err != nil {
			slog.Warn("image mirror failed, keeping upstream url", "asset_id", a.ID, "error", err)
		} else {
			img.ImageURL = url
		}
	}
	return a, nil
}
