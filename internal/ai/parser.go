package ai

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
)

// Pre-compiled patterns; compiling per parse is an order of magnitude
// slower.
var (
	// Code fences with an optional language tag, newlines optional since
	// models sometimes omit them.
	fenceRegex = regexp.MustCompile("(?s)`{3}(?:json)?\\s*\\n?([\\s\\S]*?)\\n?`{3}")

	trailingCommaRegex = regexp.MustCompile(`,(\s*[}\]])`)
	lineCommentRegex   = regexp.MustCompile(`(?m)//.*$`)

	// Greedy so nested structures are captured whole.
	objectRegex = regexp.MustCompile(`(?s)\{[\s\S]*\}`)
	arrayRegex  = regexp.MustCompile(`(?s)\[[\s\S]*\]`)
)

// ParseResponse parses a model response into T, tolerating the usual LLM
// formatting quirks. Strategy sequence:
//
//  1. direct JSON parse
//  2. strip markdown code fences and retry
//  3. drop trailing commas and // comments and retry
//  4. extract the first JSON object or array from mixed prose and retry
//
// If every strategy fails the result is a MalformedResponseError carrying
// the raw text, so nothing derived from a half-parsed response is ever
// committed.
func ParseResponse[T any](op, text string) (T, error) {
	var zero T

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return zero, &MalformedResponseError{Op: op, Reason: "empty response", Raw: text}
	}

	if v, err := tryParse[T](trimmed); err == nil {
		return v, nil
	}

	slog.Debug("direct JSON parse failed, trying cleanup strategies",
		"op", op, "preview", preview(trimmed, 100))

	unfenced := stripFences(trimmed)
	if unfenced != trimmed {
		if v, err := tryParse[T](unfenced); err == nil {
			return v, nil
		}
	}

	cleaned := cleanupJSON(unfenced)
	if v, err := tryParse[T](cleaned); err == nil {
		return v, nil
	}

	if extracted := extractJSON(cleaned); extracted != "" {
		if v, err := tryParse[T](extracted); err == nil {
			return v, nil
		}
	}

	return zero, &MalformedResponseError{Op: op, Reason: "no parsing strategy succeeded", Raw: text}
}

func tryParse[T any](text string) (T, error) {
	var v T
	err := json.Unmarshal([]byte(text), &v)
	return v, err
}

// stripFences removes markdown code fences wherever they appear.
func stripFences(text string) string {
	cleaned := fenceRegex.ReplaceAllString(text, "$1")
	if strings.HasPrefix(cleaned, "`") && strings.HasSuffix(cleaned, "`") {
		cleaned = strings.Trim(cleaned, "`")
	}
	return strings.TrimSpace(cleaned)
}

// cleanupJSON fixes trailing commas and // comments. Single quotes are left
// alone: rewriting them would corrupt valid JSON containing apostrophes.
func cleanupJSON(text string) string {
	cleaned := trailingCommaRegex.ReplaceAllString(text, "$1")
	cleaned = lineCommentRegex.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// extractJSON pulls a JSON object or array out of surrounding prose.
// Whichever opener appears first decides the type, so an array is never
// mis-extracted as its first element.
func extractJSON(text string) string {
	objIdx := strings.IndexByte(text, '{')
	arrIdx := strings.IndexByte(text, '[')
	switch {
	case arrIdx >= 0 && (objIdx < 0 || arrIdx < objIdx):
		return arrayRegex.FindString(text)
	case objIdx >= 0:
		return objectRegex.FindString(text)
	}
	return ""
}

func preview(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
