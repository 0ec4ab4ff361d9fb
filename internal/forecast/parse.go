package forecast

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AlexanderModestov/baby-sleep-pred/internal"
)

// ErrNoJSONObject means the response text contained no brace-delimited object.
var ErrNoJSONObject = errors.New("no JSON object found in response text")

// ExtractJSONObject returns the first top-level {...} object found in text.
// Braces inside JSON string literals do not count toward nesting.
func ExtractJSONObject(text string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i, r := range text {
		if start >= 0 && inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start >= 0 {
				depth--
				if depth == 0 {
					return text[start : i+1], nil
				}
			}
		case '"':
			if start >= 0 {
				inString = true
			}
		}
	}
	return "", ErrNoJSONObject
}

// ParsePrediction extracts and unmarshals the embedded prediction object.
// Field values are not validated beyond JSON well-formedness.
func ParsePrediction(text string) (internal.Prediction, error) {
	var pred internal.Prediction
	raw, err := ExtractJSONObject(text)
	if err != nil {
		return pred, err
	}
	if err := json.Unmarshal([]byte(raw), &pred); err != nil {
		return pred, fmt.Errorf("failed to parse prediction JSON: %w", err)
	}
	return pred, nil
}
