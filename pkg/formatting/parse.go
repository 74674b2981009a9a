package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrParseFailed is returned when content cannot be parsed as JSON,
// either directly or after the bounded repair pass.
var ErrParseFailed = errors.New("failed to parse response")

var (
	jsonBlockRegex     = regexp.MustCompile(`(?s)` + "```" + `(?:json)?\s*\n?(.*?)\n?` + "```")
	trailingCommaRegex = regexp.MustCompile(`,\s*([}\]])`)
)

// Parse attempts to unmarshal content as JSON into T. If direct parsing
// fails, it applies one repair pass: extract JSON from a markdown code
// fence or from the outermost braces of prose-wrapped output, and strip
// trailing commas. Returns ErrParseFailed if every attempt fails.
func Parse[T any](content string) (T, error) {
	var result T
	content = strings.TrimSpace(content)

	if err := json.Unmarshal([]byte(content), &result); err == nil {
		return result, nil
	}

	for _, candidate := range repairCandidates(content) {
		if err := json.Unmarshal([]byte(candidate), &result); err == nil {
			return result, nil
		}
	}

	return result, fmt.Errorf("%w: %s", ErrParseFailed, excerpt(content))
}

func repairCandidates(content string) []string {
	var candidates []string

	if matches := jsonBlockRegex.FindStringSubmatch(content); len(matches) >= 2 {
		candidates = append(candidates, strings.TrimSpace(matches[1]))
	}

	if inner := braceSpan(content); inner != "" {
		candidates = append(candidates, inner)
	}

	for _, c := range candidates {
		if stripped := trailingCommaRegex.ReplaceAllString(c, "$1"); stripped != c {
			candidates = append(candidates, stripped)
		}
	}

	if stripped := trailingCommaRegex.ReplaceAllString(content, "$1"); stripped != content {
		candidates = append(candidates, stripped)
	}

	return candidates
}

// braceSpan returns the substring from the first { to the last },
// covering model output that wraps JSON in prose.
func braceSpan(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return content[start : end+1]
}

// excerpt bounds the raw content carried in parse errors so failures
// stay reproducible without retaining entire responses.
func excerpt(content string) string {
	const limit = 240
	if len(content) <= limit {
		return content
	}
	return content[:limit] + "..."
}
