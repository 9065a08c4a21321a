package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Errors returned when the model response cannot be turned into a result.
var (
	ErrNoJSON      = errors.New("response did not include JSON")
	ErrInvalidJSON = errors.New("failed to parse analysis response")
)

// AnalysisResult is the normalized outcome of a food-label analysis.
// Every field is populated; absent or mistyped fields in the raw response
// degrade to safe defaults instead of failing the whole analysis.
type AnalysisResult struct {
	Ingredients      []string `json:"ingredients" bson:"ingredients"`
	HarmfulAdditives []string `json:"harmful_additives" bson:"harmful_additives"`
	HealthRating     int      `json:"health_rating" bson:"health_rating"`
	Summary          string   `json:"summary" bson:"summary"`
	ConfidenceScore  int      `json:"confidence_score" bson:"confidence_score"`
	ToxicAlert       bool     `json:"toxic_alert" bson:"toxic_alert"`
}

var fencedJSON = regexp.MustCompile("(?is)```(?:json)?\\s*(.*?)\\s*```")

// ExtractJSON pulls the JSON candidate out of a raw model response. A fenced
// code block wins; otherwise the substring between the first '{' and the
// last '}' is used. ErrNoJSON when neither is present.
func ExtractJSON(content string) (string, error) {
	if m := fencedJSON.FindStringSubmatch(content); m != nil && m[1] != "" {
		return m[1], nil
	}

	first := strings.Index(content, "{")
	last := strings.LastIndex(content, "}")
	if first != -1 && last > first {
		return content[first : last+1], nil
	}

	return "", ErrNoJSON
}

// ParseAnalysisResult extracts and normalizes an AnalysisResult from the raw
// text returned by the model. The model is not schema-guaranteed, so every
// field is coerced individually; only a missing or unparseable JSON object
// is an error.
func ParseAnalysisResult(content string) (*AnalysisResult, error) {
	candidate, err := ExtractJSON(content)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	return &AnalysisResult{
		Ingredients:      stringSlice(raw["ingredients"]),
		HarmfulAdditives: stringSlice(raw["harmfulAdditives"]),
		HealthRating:     clampedInt(raw["healthRating"], 1, 1, 10),
		Summary:          stringValue(raw["summary"]),
		ConfidenceScore:  clampedInt(raw["confidenceScore"], 0, 0, 100),
		ToxicAlert:       truthy(raw["toxicAlert"]),
	}, nil
}

// stringSlice stringifies each element when v is an array, else returns an
// empty (non-nil) slice.
func stringSlice(v any) []string {
	out := make([]string, 0)
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		out = append(out, fmt.Sprint(item))
	}
	return out
}

// stringValue stringifies v when it is truthy, else returns "".
func stringValue(v any) string {
	if !truthy(v) {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// clampedInt numeric-coerces v, rounds to the nearest integer and clamps to
// [min, max]. Non-finite values fall back to def.
func clampedInt(v any, def, min, max int) int {
	f, ok := numericValue(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	n := int(math.Round(f))
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

func numericValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// truthy mirrors JavaScript truthiness for decoded JSON values.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	default:
		// objects and arrays
		return true
	}
}
