// Package jsonx extracts JSON objects from free-form LLM responses. Models
// wrap their JSON in prose, markdown fences, or thinking text; both
// completion stages parse through this package instead of trusting the raw
// response to be valid JSON.
package jsonx

import "strings"

// ExtractObject returns the widest plausible JSON object in text: the
// substring from the first '{' to the last '}'. Returns "" when no object
// delimiters are present. This is deliberately loose; callers fall back to
// Candidates when the wide slice does not parse.
func ExtractObject(text string) string {
	start := strings.Index(text, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(text, "}")
	if end <= start {
		return ""
	}
	return text[start : end+1]
}

// Candidates scans text for balanced top-level JSON object candidates.
// It tracks brace depth with string and escape awareness so braces inside
// string values do not break the boundaries.
//
// Iterating bytes is safe for the ASCII delimiters involved: UTF-8
// guarantees ASCII bytes never occur inside a multi-byte sequence.
func Candidates(text string) []string {
	var candidates []string
	depth := 0
	start := -1
	inString := false
	escape := false

	for i := 0; i < len(text); i++ {
		b := text[i]

		if escape {
			escape = false
			continue
		}

		if inString {
			if b == '\\' {
				escape = true
			} else if b == '"' {
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			inString = true
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start != -1 {
					candidates = append(candidates, text[start:i+1])
					start = -1
				}
			}
		}
	}
	return candidates
}
