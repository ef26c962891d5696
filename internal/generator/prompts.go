// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"fmt"
	"strings"

	"marketdash/internal/models"
)

// systemPrompt builds a system prompt from the business settings.
type systemPrompt func(*models.BusinessSettings) string

// businessContext renders the brand profile shared by every prompt.
func businessContext(s *models.BusinessSettings) string {
	var b strings.Builder
	b.WriteString("Business information:\n")
	fmt.Fprintf(&b, "- Business name: %s\n", s.BusinessName)
	fmt.Fprintf(&b, "- Tone of voice: %s\n", s.Tone)
	fmt.Fprintf(&b, "- Ideal customer profile: %s\n", s.ICP)
	fmt.Fprintf(&b, "- Keywords: %s\n", strings.Join(s.Keywords, ", "))
	fmt.Fprintf(&b, "- Writing guidelines (Dos): %s\n", strings.Join(s.BrandGuidelines.Dos, ", "))
	fmt.Fprintf(&b, "- Writing guidelines (Don'ts): %s\n", strings.Join(s.BrandGuidelines.Donts, ", "))
	return b.String()
}

func seoPrompt() systemPrompt {
	return func(s *models.BusinessSettings) string {
		return `You are an expert SEO content writer. Write an SEO-optimized article on the topic you are given,
tailored to the business below.

` + businessContext(s) + `
Answer with a single JSON object in exactly this shape:
{
  "title": "SEO-optimized title that contains the main keywords",
  "tags": ["keyword1", "keyword2", "keyword3"],
  "content": "The full article as HTML using h2, h3, p, ul and li tags",
  "wordCount": 650,
  "imagePrompt": "A detailed prompt for a hero image that complements the article"
}

The article should be 500-800 words, structured with headings, and use the keywords naturally.
The imagePrompt should describe a professional image that works as the article's hero image.`
	}
}

func emailPrompt(purpose models.EmailPurpose) systemPrompt {
	return func(s *models.BusinessSettings) string {
		return `You are an expert email copywriter. Write an engaging email for the topic and purpose you are given,
tailored to the business below.

` + businessContext(s) + `
Answer with a single JSON object in exactly this shape:
{
  "subject": "Attention-grabbing subject line",
  "previewLine": "Short preview text shown by email clients",
  "bodyHtml": "The full email body as HTML using h2, p, ul, li and a tags",
  "purpose": "` + string(purpose) + `"
}

Keep the email concise and aligned with its purpose, and end with a clear call to action.
Use simple, clean HTML.`
	}
}

func socialPrompt(platform models.SocialPlatform) systemPrompt {
	return func(s *models.BusinessSettings) string {
		p := string(platform)
		return `You are an expert social media copywriter. Write an engaging ` + p + ` post on the topic you are given,
tailored to the business below.

` + businessContext(s) + `
Answer with a single JSON object in exactly this shape:
{
  "copy": "The text of the post",
  "hashtags": ["hashtag1", "hashtag2", "hashtag3"],
  "imagePrompt": "A detailed prompt for an image to accompany the post",
  "platform": "` + p + `"
}

Follow the platform's conventions:
- instagram: visual, emoji-friendly, up to 2200 characters, 3-5 targeted hashtags
- linkedin: professional, 1300-1700 characters, industry insight, 0-3 hashtags
- facebook: conversational, question-led, 1-2 paragraphs, few hashtags
- twitter: short and punchy, under 280 characters, 1-2 hashtags

The imagePrompt should describe a professional image suited to ` + p + `.`
	}
}

func leadMagnetPrompt(resourceType models.LeadMagnetType) systemPrompt {
	return func(s *models.BusinessSettings) string {
		return `You are an expert lead magnet creator. Produce a valuable resource of the requested type on the topic
you are given, tailored to the business below.

` + businessContext(s) + `
Answer with a single JSON object in exactly this shape:
{
  "title": "Attention-grabbing title",
  "outline": ["Section 1", "Section 2", "Section 3"],
  "deliverableHtml": "The full resource as HTML using h2, h3, p, ul, li and table tags",
  "promptForCoder": "A detailed brief for a developer building an interactive version, if useful",
  "resourceType": "` + string(resourceType) + `"
}

Match the resource type:
- guide: a step-by-step tutorial with explanations and examples
- checklist: items with checkboxes, grouped by category
- template: a reusable framework with placeholders
- calculatorPrompt: a precise specification for an interactive calculator`
	}
}

func imagePromptPrompt() systemPrompt {
	return func(s *models.BusinessSettings) string {
		return `You are a prompt engineer who writes detailed prompts for AI image generation. Expand the image idea
you are given into a prompt that produces a professional result.

Business context:
- Business name: ` + s.BusinessName + `
- Brand tone: ` + s.Tone + `
- Target audience: ` + s.ICP + `
- Brand keywords: ` + strings.Join(s.Keywords, ", ") + `

Answer with a single JSON object in exactly this shape:
{
  "detailedPrompt": "The detailed image prompt"
}

Describe composition, lighting, perspective, colors, textures, mood and camera details.
Be vivid but concise, and stay consistent with the business context where it is relevant.`
	}
}

func repurposePrompt(channels []Channel) systemPrompt {
	return func(s *models.BusinessSettings) string {
		var fields []string
		for _, c := range channels {
			fields = append(fields, "  "+c.schema())
		}
		return `You are a content repurposing specialist. Turn the long-form content you are given into snippets
optimized for each requested channel.

` + businessContext(s) + `
Answer with a single JSON object in exactly this shape:
{
` + strings.Join(fields, ",\n") + `
}

Channel guidelines:
- email: professional, clear value proposition, actionable, 150-300 words
- linkedin: thought leadership with an engaging angle, 100-200 words
- instagram: visual storytelling, 100-150 words plus 5-10 relevant hashtags
- facebook: conversational, ends with a question, 100-200 words
- twitter: punchy, under 280 characters, one key insight or question

Keep the core message while adapting tone, length and style to each channel.`
	}
}
