// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"fmt"
	"strings"

	"marketdash/internal/markdown"
	"marketdash/internal/models"
)

// normalize converts Markdown in the HTML fields of a payload into HTML and
// tidies the plain-text fields.
func normalize(d models.AssetData) error {
	return models.Visit[error](d, normalizer{})
}

type normalizer struct{}

func (normalizer) VisitSEO(d *models.SEOArticle) error {
	content, err := toHTML("content", d.Content)
	if err != nil {
		return err
	}
	d.Title = strings.TrimSpace(d.Title)
	d.Content = content
	d.Tags = trimAll(d.Tags)
	if d.WordCount <= 0 {
		d.WordCount = markdown.WordCount(content)
	}
	return nil
}

func (normalizer) VisitEmail(d *models.EmailCampaign) error {
	body, err := toHTML("bodyHtml", d.BodyHTML)
	if err != nil {
		return err
	}
	d.Subject = strings.TrimSpace(d.Subject)
	d.PreviewLine = strings.TrimSpace(d.PreviewLine)
	d.BodyHTML = body
	return nil
}

func (normalizer) VisitSocial(d *models.SocialPost) error {
	d.Copy = strings.TrimSpace(d.Copy)
	d.ImagePrompt = strings.TrimSpace(d.ImagePrompt)
	return nil
}

func (normalizer) VisitLeadMagnet(d *models.LeadMagnet) error {
	deliverable, err := toHTML("deliverableHtml", d.DeliverableHTML)
	if err != nil {
		return err
	}
	d.Title = strings.TrimSpace(d.Title)
	d.Outline = trimAll(d.Outline)
	d.DeliverableHTML = deliverable
	d.PromptForCoder = strings.TrimSpace(d.PromptForCoder)
	return nil
}

func (normalizer) VisitImage(d *models.ImageAsset) error {
	d.Title = strings.TrimSpace(d.Title)
	d.Prompt = strings.TrimSpace(d.Prompt)
	return nil
}

func toHTML(field, s string) (string, error) {
	out, err := markdown.Normalize(s)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrMalformedResponse, field, err)
	}
	return out, nil
}

// trimAll trims every entry and drops the empty ones. The result is never
// nil.
func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
