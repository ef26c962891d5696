// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultImageModel is the model used for image generation.
const DefaultImageModel = "dall-e-3"

// providerImage labels image API errors.
const providerImage = "openai-image"

// ImageSize is the aspect of a generated image.
type ImageSize string

const (
	ImageSquare    ImageSize = "square"
	ImageLandscape ImageSize = "landscape"
	ImagePortrait  ImageSize = "portrait"
)

// Dimensions returns the pixel size sent to the API.
func (s ImageSize) Dimensions() string {
	switch s {
	case ImageLandscape:
		return "1792x1024"
	case ImagePortrait:
		return "1024x1792"
	}
	return "1024x1024"
}

// Valid reports whether s is a known size.
func (s ImageSize) Valid() bool {
	return s == ImageSquare || s == ImageLandscape || s == ImagePortrait
}

// ImageQuality is the rendering quality of a generated image.
type ImageQuality string

const (
	QualityStandard ImageQuality = "standard"
	QualityHD       ImageQuality = "hd"
)

// Valid reports whether q is a known quality.
func (q ImageQuality) Valid() bool {
	return q == QualityStandard || q == QualityHD
}

// ImageCost returns the fixed price of one image of the given size and
// quality.
func ImageCost(size ImageSize, quality ImageQuality) float64 {
	if size == ImageLandscape || size == ImagePortrait {
		if quality == QualityHD {
			return 0.120
		}
		return 0.080
	}
	if quality == QualityHD {
		return 0.080
	}
	return 0.040
}

// ImageRequest describes one image to generate. Empty Size and Quality
// default to square and standard.
type ImageRequest struct {
	Prompt  string
	Style   string
	Size    ImageSize
	Quality ImageQuality
}

// ImageResult is a generated image and its cost.
type ImageResult struct {
	URL    string
	Prompt string
	Cost   float64
	Model  string
}

// ImageClient generates images through the OpenAI images API. The key is
// passed per call because users enter it at runtime.
type ImageClient struct {
	model   string
	baseURL string
}

// NewImageClient creates an image client. Empty arguments select the
// public API and DefaultImageModel.
func NewImageClient(baseURL, model string) *ImageClient {
	if model == "" {
		model = DefaultImageModel
	}
	return &ImageClient{model: model, baseURL: baseURL}
}

// Model returns the image model name.
func (c *ImageClient) Model() string { return c.model }

// Generate creates one image. A missing key fails with a 401 APIError
// without calling the API; upstream failures are returned as APIError with
// the upstream status. The call is made once, without retries.
func (c *ImageClient) Generate(ctx context.Context, apiKey string, req ImageRequest) (*ImageResult, error) {
	if apiKey == "" {
		return nil, &APIError{Provider: providerImage, StatusCode: http.StatusUnauthorized, Message: "OpenAI API key is required"}
	}
	if req.Size == "" {
		req.Size = ImageSquare
	}
	if req.Quality == "" {
		req.Quality = QualityStandard
	}
	if !req.Size.Valid() {
		return nil, fmt.Errorf("ai: unknown image size %q", req.Size)
	}
	if !req.Quality.Valid() {
		return nil, fmt.Errorf("ai: unknown image quality %q", req.Quality)
	}

	prompt := req.Prompt
	if req.Style != "" {
		prompt = fmt.Sprintf("%s. Style: %s", req.Prompt, req.Style)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if c.baseURL != "" {
		opts = append(opts, option.WithBaseURL(c.baseURL))
	}
	client := openai.NewClient(opts...)

	resp, err := client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openai.ImageModel(c.model),
		N:              openai.Int(1),
		Size:           openai.ImageGenerateParamsSize(req.Size.Dimensions()),
		Quality:        openai.ImageGenerateParamsQuality(req.Quality),
		ResponseFormat: openai.ImageGenerateParamsResponseFormat("url"),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			msg := apiErr.Message
			if msg == "" {
				msg = http.StatusText(apiErr.StatusCode)
			}
			return nil, &APIError{Provider: providerImage, StatusCode: apiErr.StatusCode, Message: msg}
		}
		return nil, fmt.Errorf("openai image: %w", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return nil, &APIError{Provider: providerImage, StatusCode: http.StatusInternalServerError, Message: "No image generated"}
	}

	return &ImageResult{
		URL:    resp.Data[0].URL,
		Prompt: prompt,
		Cost:   ImageCost(req.Size, req.Quality),
		Model:  c.model,
	}, nil
}
