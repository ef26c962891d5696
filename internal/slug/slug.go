// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns asset titles into file-name-safe slugs for export
// paths.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength caps slugs so export file names stay portable.
const MaxLength = 80

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, hyphen or whitespace.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// separators matches runs of whitespace and hyphens.
	separators = regexp.MustCompile(`[\s-]+`)
)

// foldAccents decomposes characters and drops the combining marks, so
// "Café" becomes "Cafe".
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Generate creates a slug from the given string.
// Example: "Café Guide: 2026 Edition!" → "cafe-guide-2026-edition"
func Generate(s string) string {
	result := strings.ToLower(foldAccents(strings.TrimSpace(s)))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = separators.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	if len(result) > MaxLength {
		result = result[:MaxLength]
		if i := strings.LastIndexByte(result, '-'); i > MaxLength/2 {
			result = result[:i]
		}
		result = strings.Trim(result, "-")
	}
	return result
}

// OrDefault returns Generate(s), or fallback when s has no usable characters.
func OrDefault(s, fallback string) string {
	if out := Generate(s); out != "" {
		return out
	}
	return fallback
}
