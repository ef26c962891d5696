package handlers

import (
	"strings"
	"unicode/utf8"

	"marketdash/internal/models"
)

// Validation limits for settings and generation inputs.
const (
	maxNameLen       = 200
	maxLogoLen       = 2_000
	maxToneLen       = 500
	maxICPLen        = 5_000
	maxListItems     = 50
	maxListItemLen   = 300
	maxTopicLen      = 2_000
	maxSourceLen     = 20_000
	maxImageStyleLen = 200
)

// validateSettings checks the business settings form and returns the first
// error found.
func validateSettings(s *models.BusinessSettings) string {
	if strings.TrimSpace(s.BusinessName) == "" {
		return "Business name is required."
	}
	if utf8.RuneCountInString(s.BusinessName) > maxNameLen {
		return "Business name is too long (max 200 characters)."
	}
	if utf8.RuneCountInString(s.Name) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}
	if utf8.RuneCountInString(s.Logo) > maxLogoLen {
		return "Logo URL is too long (max 2,000 characters)."
	}
	if utf8.RuneCountInString(s.Tone) > maxToneLen {
		return "Tone is too long (max 500 characters)."
	}
	if utf8.RuneCountInString(s.ICP) > maxICPLen {
		return "Ideal customer profile is too long (max 5,000 characters)."
	}
	if msg := validateList("Keywords", s.Keywords); msg != "" {
		return msg
	}
	if msg := validateList("Brand dos", s.BrandGuidelines.Dos); msg != "" {
		return msg
	}
	return validateList("Brand don'ts", s.BrandGuidelines.Donts)
}

func validateList(label string, items []string) string {
	if len(items) > maxListItems {
		return label + " has too many entries (max 50)."
	}
	for _, item := range items {
		if utf8.RuneCountInString(item) > maxListItemLen {
			return label + " entries are too long (max 300 characters)."
		}
	}
	return ""
}

// validateTopic checks the free-text input of a generation request.
func validateTopic(topic string) string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "Please describe what you'd like to write about."
	}
	if utf8.RuneCountInString(topic) > maxTopicLen {
		return "Topic is too long (max 2,000 characters)."
	}
	return ""
}

// validateSource checks the content submitted for repurposing.
func validateSource(content string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return "Please paste the content you'd like to repurpose."
	}
	if utf8.RuneCountInString(content) > maxSourceLen {
		return "Content is too long (max 20,000 characters)."
	}
	return ""
}

// validateStyle checks the optional style hint of image requests.
func validateStyle(style string) string {
	if utf8.RuneCountInString(style) > maxImageStyleLen {
		return "Style is too long (max 200 characters)."
	}
	return ""
}
