package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrNoStructuredContent = errors.New("no JSON found in response")
	ErrMalformedContent    = errors.New("malformed JSON in response")
)

var fencedBlock = regexp.MustCompile("```(?:json)?\\s*\\n?([\\s\\S]*?)\\n?```")

// ExtractJSON pulls the JSON payload out of a model reply. A fenced code
// block wins if present; otherwise leading prose before the first '[' or
// '{' is dropped.
func ExtractJSON(text string) (json.RawMessage, error) {
	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "[") && !strings.HasPrefix(text, "{") {
		idx := strings.IndexAny(text, "[{")
		if idx < 0 {
			return nil, ErrNoStructuredContent
		}
		text = text[idx:]
	}

	raw := json.RawMessage(text)
	if !json.Valid(raw) {
		var probe any
		err := json.Unmarshal(raw, &probe)
		return nil, fmt.Errorf("%w: %v", ErrMalformedContent, err)
	}

	return raw, nil
}

// DecodeJSON extracts the JSON payload from text and unmarshals it into v.
func DecodeJSON(text string, v any) error {
	raw, err := ExtractJSON(text)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedContent, err)
	}

	return nil
}
