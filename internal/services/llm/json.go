package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/ternarybob/cognicart/internal/interfaces"
)

// Models often wrap JSON output in markdown code fences despite being
// told not to. The regex strips a single leading/trailing fence pair.
var jsonFenceRegex = regexp.MustCompile("(?s)^\\s*```(?:json|JSON)?\\s*\\n?(.*?)\\n?\\s*```\\s*$")

// CleanJSONResponse strips markdown fences and surrounding whitespace
// from a raw model response.
func CleanJSONResponse(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if m := jsonFenceRegex.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1])
	}
	return trimmed
}

// DecodeJSONResponse decodes a model response into out. It first tries
// the cleaned text as-is, then falls back to the outermost brace-delimited
// block for responses with prose around the JSON.
func DecodeJSONResponse(raw string, out any) error {
	cleaned := CleanJSONResponse(raw)
	if cleaned == "" {
		return fmt.Errorf("empty response")
	}

	if err := json.Unmarshal([]byte(cleaned), out); err == nil {
		return nil
	}

	start := strings.IndexAny(cleaned, "{[")
	if start < 0 {
		return fmt.Errorf("no JSON found in response")
	}
	var end int
	if cleaned[start] == '{' {
		end = strings.LastIndex(cleaned, "}")
	} else {
		end = strings.LastIndex(cleaned, "]")
	}
	if end <= start {
		return fmt.Errorf("no JSON found in response")
	}
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), out); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return nil
}

// CompleteJSON runs a completion and decodes the response into out.
// Callers validate the decoded values before trusting them.
func CompleteJSON(ctx context.Context, svc interfaces.CompletionService, system, prompt string, out any) error {
	raw, err := svc.Complete(ctx, system, prompt)
	if err != nil {
		return err
	}
	return DecodeJSONResponse(raw, out)
}
