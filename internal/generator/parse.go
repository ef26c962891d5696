// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"encoding/json"
	"fmt"
	"strings"
)

// stripFences removes a Markdown code fence wrapped around the answer:
// ```json ... ``` or ``` ... ```.
func stripFences(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```") {
		// Drop the opening fence line, including any language tag.
		if nl := strings.Index(response, "\n"); nl != -1 {
			response = response[nl+1:]
		} else {
			response = strings.TrimPrefix(response, "```")
		}
		if idx := strings.LastIndex(response, "```"); idx != -1 {
			response = response[:idx]
		}
	}

	return strings.TrimSpace(response)
}

// extractObject returns the outermost JSON object in s, skipping any prose
// the model put around it.
func extractObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end < start {
		return "", false
	}
	return s[start : end+1], true
}

// decodeResponse parses the model's answer into dst. Keys dst does not
// declare are ignored; models often add extras such as metaDescription.
func decodeResponse(raw string, dst any) error {
	body, ok := extractObject(stripFences(raw))
	if !ok {
		return fmt.Errorf("%w: no JSON object in response", ErrMalformedResponse)
	}

	if err := json.Unmarshal([]byte(body), dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
