// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"marketdash/internal/models"
)

// Channel is a destination for repurposed content.
type Channel string

const (
	ChannelEmail     Channel = "email"
	ChannelLinkedIn  Channel = "linkedin"
	ChannelInstagram Channel = "instagram"
	ChannelFacebook  Channel = "facebook"
	ChannelTwitter   Channel = "twitter"
)

// Channels lists every channel in display order.
var Channels = []Channel{ChannelEmail, ChannelLinkedIn, ChannelInstagram, ChannelFacebook, ChannelTwitter}

// Valid reports whether c is a known channel.
func (c Channel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelLinkedIn, ChannelInstagram, ChannelFacebook, ChannelTwitter:
		return true
	}
	return false
}

// schema returns the JSON member the model should produce for c.
func (c Channel) schema() string {
	switch c {
	case ChannelEmail:
		return `"email": "Professional email with a strong hook and a clear value proposition"`
	case ChannelLinkedIn:
		return `"linkedin": "Professional LinkedIn post with industry insight"`
	case ChannelInstagram:
		return `"instagram": {"copy": "Instagram caption with a storytelling angle", "hashtags": ["hashtag1", "hashtag2"]}`
	case ChannelFacebook:
		return `"facebook": "Conversational Facebook post that invites discussion"`
	case ChannelTwitter:
		return `"twitter": "Twitter/X post under 280 characters with a strong hook"`
	}
	return ""
}

// Repurpose rewrites source for each channel in one call and returns a
// draft per channel, in the order the channels were given. Duplicate
// channels are ignored.
func (s *Service) Repurpose(ctx context.Context, source string, channels []Channel) ([]*models.Asset, error) {
	source, err := requireTopic(source)
	if err != nil {
		return nil, err
	}
	channels, err = uniqueChannels(channels)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(channels))
	for i, c := range channels {
		names[i] = string(c)
	}
	user := fmt.Sprintf("Repurpose this content for %s: %s", strings.Join(names, ", "), source)

	var out map[string]json.RawMessage
	if err := s.generate(ctx, repurposePrompt(channels), user, &out); err != nil {
		return nil, err
	}

	assets := make([]*models.Asset, 0, len(channels))
	for _, c := range channels {
		raw, ok := out[string(c)]
		if !ok {
			return nil, fmt.Errorf("%w: missing %s snippet", ErrMalformedResponse, c)
		}
		data, err := snippet(c, raw, source)
		if err != nil {
			return nil, err
		}
		a, err := s.draft(data)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, nil
}

// snippet builds the asset payload for one channel's part of the answer.
func snippet(c Channel, raw json.RawMessage, source string) (models.AssetData, error) {
	if c == ChannelInstagram {
		var ig struct {
			Copy     string   `json:"copy"`
			Hashtags []string `json:"hashtags"`
		}
		if err := json.Unmarshal(raw, &ig); err != nil {
			return nil, fmt.Errorf("%w: instagram snippet: %v", ErrMalformedResponse, err)
		}
		return &models.SocialPost{
			Copy:        ig.Copy,
			Hashtags:    cleanHashtags(ig.Hashtags),
			ImagePrompt: "Engaging Instagram post image related to: " + truncate(source, 100),
			Platform:    models.PlatformInstagram,
		}, nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return nil, fmt.Errorf("%w: %s snippet: %v", ErrMalformedResponse, c, err)
	}
	text = strings.TrimSpace(text)

	if c == ChannelEmail {
		return &models.EmailCampaign{
			Subject:     "Repurposed: " + truncate(source, 50) + "...",
			PreviewLine: truncate(text, 100) + "...",
			BodyHTML:    paragraphs(text),
			Purpose:     models.EmailPurposeNewsletter,
		}, nil
	}

	return &models.SocialPost{
		Copy:        text,
		Hashtags:    []string{},
		ImagePrompt: fmt.Sprintf("Professional %s post image related to: %s", c, truncate(source, 100)),
		Platform:    models.SocialPlatform(c),
	}, nil
}

func uniqueChannels(channels []Channel) ([]Channel, error) {
	seen := make(map[Channel]bool, len(channels))
	out := make([]Channel, 0, len(channels))
	for _, c := range channels {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: unknown channel %q", ErrInvalidInput, c)
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: select at least one channel", ErrInvalidInput)
	}
	return out, nil
}

// paragraphs wraps each non-blank line of plain text in a <p> element.
func paragraphs(text string) string {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			b.WriteString("<p>")
			b.WriteString(html.EscapeString(line))
			b.WriteString("</p>")
		}
	}
	return b.String()
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
