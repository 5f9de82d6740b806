package step

import "fmt"

// ExtractJSONObject returns the first balanced top-level JSON object in text.
// Models often wrap the requested JSON in prose, so we scan for the first '{'
// and match braces, skipping brace characters inside string literals.
func ExtractJSONObject(text string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range text {
		if start == -1 {
			if r == '{' {
				start = i
				depth = 1
			}
			continue
		}

		if inString {
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
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	if start == -1 {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return "", fmt.Errorf("unbalanced JSON object in response")
}
