// File: internal/llmutil/parser.go

// Package llmutil salvages structured payloads from language-model output.
// Even with a declared JSON mime type, responders occasionally wrap the
// payload in markdown fences or conversational text; callers still apply
// strict decoding to whatever is recovered.
package llmutil

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Backticks are written as \x60 because Go raw strings cannot contain them.
var fencedRegex = regexp.MustCompile("(?s)\x60\x60\x60(?:json)?\\s*(.*?)\\s*\x60\x60\x60")

// ParseJSONResponse decodes a model response into T, tolerating markdown
// fences and surrounding prose around the JSON body.
func ParseJSONResponse[T any](response string) (*T, error) {
	body := ExtractJSON(response)

	var result T
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model JSON response: %w (extracted: %s)", err, truncate(body, 300))
	}
	return &result, nil
}

// ExtractJSON returns the most plausible JSON object or array inside a model
// response: the content of a markdown fence when present, otherwise the
// outermost brace- or bracket-delimited span, otherwise the trimmed input.
func ExtractJSON(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```") {
		if m := fencedRegex.FindStringSubmatch(response); len(m) > 1 {
			response = strings.TrimSpace(m[1])
		}
	}
	if strings.HasPrefix(response, "{") || strings.HasPrefix(response, "[") {
		return response
	}

	for _, pair := range [][2]string{{"{", "}"}, {"[", "]"}} {
		first := strings.Index(response, pair[0])
		last := strings.LastIndex(response, pair[1])
		if first != -1 && last > first {
			return response[first : last+1]
		}
	}
	return response
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
