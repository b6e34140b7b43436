package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ParseContent normalises stored tutorial content into TutorialContent.
//
// Content is accepted as a JSON object, as a JSON string holding an object
// (double-encoded), or as a bare array of steps. null and empty input yield
// empty content. The lists of the result are never nil.
func ParseContent(raw []byte) (TutorialContent, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return NormalizeContent(nil, nil, nil), nil
	}

	switch raw[0] {
	case '"':
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return TutorialContent{}, fmt.Errorf("failed to decode content string: %w", err)
		}
		inner = strings.TrimSpace(inner)
		if inner == "" || inner[0] == '"' {
			return TutorialContent{}, fmt.Errorf("content string does not hold a JSON document")
		}
		return ParseContent([]byte(inner))
	case '[':
		var steps []string
		if err := json.Unmarshal(raw, &steps); err != nil {
			return TutorialContent{}, fmt.Errorf("failed to decode content steps: %w", err)
		}
		return NormalizeContent(nil, steps, nil), nil
	case '{':
		var c TutorialContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return TutorialContent{}, fmt.Errorf("failed to decode content object: %w", err)
		}
		return NormalizeContent(c.Materials, c.Steps, c.Tips), nil
	default:
		return TutorialContent{}, fmt.Errorf("unsupported content shape")
	}
}

// NormalizeContent builds content from form lists, trimming entries and
// dropping blank ones.
func NormalizeContent(materials, steps, tips []string) TutorialContent {
	return TutorialContent{
		Materials: compact(materials),
		Steps:     compact(steps),
		Tips:      compact(tips),
	}
}

// compact trims entries and drops blank ones.
func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
