// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown normalises LLM output into HTML using goldmark. Models
// asked for HTML often answer in Markdown, or in a mix of both; raw HTML is
// passed through unchanged so either form renders.
package markdown

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// md is the configured goldmark instance, reused across calls.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,         // tables, strikethrough, autolinks, task lists
		extension.Typographer, // smart quotes and dashes
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		gmhtml.WithUnsafe(),
	),
)

var (
	htmlTag    = regexp.MustCompile(`(?s)<[^>]*>`)
	blockStart = regexp.MustCompile(`(?i)^<(p|h[1-6]|div|ul|ol|table|section|article|blockquote|pre|html|body)[\s>]`)
)

// ToHTML converts Markdown source into HTML. Raw HTML embedded in the
// Markdown is passed through unchanged.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Normalize returns s as HTML. Text that already starts with a block-level
// HTML element is returned trimmed but otherwise untouched; anything else is
// rendered as Markdown.
func Normalize(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || blockStart.MatchString(s) {
		return s, nil
	}
	out, err := ToHTML(s)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// PlainText strips tags from an HTML fragment and unescapes entities.
func PlainText(fragment string) string {
	text := htmlTag.ReplaceAllString(fragment, " ")
	return strings.Join(strings.Fields(html.UnescapeString(text)), " ")
}

// WordCount counts whitespace-separated words in the visible text of an
// HTML fragment.
func WordCount(fragment string) int {
	return len(strings.Fields(PlainText(fragment)))
}
