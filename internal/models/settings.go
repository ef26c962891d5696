// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"
)

// BrandGuidelines holds ordered writing rules passed to every prompt.
type BrandGuidelines struct {
	Dos   []string `json:"dos"`
	Donts []string `json:"donts"`
}

// BusinessSettings is the single brand profile. There is at most one per
// installation; saving replaces it in place.
type BusinessSettings struct {
	BusinessName    string          `json:"businessName"`
	Name            string          `json:"name"`
	Logo            string          `json:"logo,omitempty"`
	Tone            string          `json:"tone"`
	ICP             string          `json:"icp"`
	BrandGuidelines BrandGuidelines `json:"brandGuidelines"`
	Keywords        []string        `json:"keywords"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// IsComplete reports whether the fields every generator prompt relies on
// are filled in.
func (s *BusinessSettings) IsComplete() bool {
	return strings.TrimSpace(s.BusinessName) != "" &&
		strings.TrimSpace(s.Tone) != "" &&
		strings.TrimSpace(s.ICP) != ""
}
