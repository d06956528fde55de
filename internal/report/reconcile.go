package report

import (
	"encoding/json"
	"math"
	"regexp"
	"slices"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/spigell/interview-feedback/internal/profile"
	"go.uber.org/zap"
)

const (
	defaultOverallLevel   = "Medior"
	defaultOverallComment = "See interview notes for details."
)

var (
	fencedJSONRe = regexp.MustCompile("```(?:json)?\\s*(\\{[\\s\\S]*?\\})\\s*```")
	bareJSONRe   = regexp.MustCompile(`\{[\s\S]*\}`)
)

// Reconcile maps raw model output onto the canonical report shape defined by
// the profile. Every area declared by the profile appears exactly once, in
// profile order; missing, malformed or out-of-range values degrade to the
// placeholder instead of failing. The result is deterministic given its
// inputs and the function never returns an error.
func Reconcile(raw string, prof *profile.FeedbackProfile, candidateName string, logger *zap.Logger) *FeedbackReport {
	if logger == nil {
		logger = zap.NewNop()
	}

	payload := parsePayload(ExtractJSON(raw), logger)

	rep := &FeedbackReport{
		CandidateName:      stringOr(payload["candidate_name"], candidateName),
		TechnicalScores:    reconcileSection("technical", prof.Technical, payload["technical_scores"], logger),
		NonTechnicalScores: reconcileSection("non-technical", prof.NonTechnical, payload["non_technical_scores"], logger),
		OverallLevel:       reconcileLevel(payload["overall_level"], prof.OverallLevels),
		OverallComment:     stringOr(payload["overall_comment"], defaultOverallComment),
	}

	if len(prof.PersonalAssessment) > 0 {
		rep.PersonalAssessmentScores = reconcileSection(
			"personal assessment", prof.PersonalAssessment, payload["personal_assessment_scores"], logger)
	}

	return rep
}

// ExtractJSON locates a JSON object inside free-form model output. Preference
// order: a fenced code block (with or without a json tag), then the first
// greedy brace-delimited span, then the text itself. Best-effort lexical scan
// only; it never fails.
func ExtractJSON(text string) string {
	text = strings.TrimSpace(text)

	if m := fencedJSONRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}

	if m := bareJSONRe.FindString(text); m != "" {
		return m
	}

	return text
}

// parsePayload parses the extracted span, attempting a repair pass on broken
// JSON before degrading to an empty payload.
func parsePayload(text string, logger *zap.Logger) map[string]any {
	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(text)
		if repairErr != nil || json.Unmarshal([]byte(repaired), &value) != nil {
			logger.Warn("model response is not valid json, using empty payload",
				zap.NamedError("parse_error", err),
			)
			return map[string]any{}
		}
		logger.Debug("model response repaired before parsing")
	}

	payload, ok := value.(map[string]any)
	if !ok {
		logger.Warn("model response is not a json object, using empty payload")
		return map[string]any{}
	}

	return payload
}

func reconcileSection(section string, areas []string, raw any, logger *zap.Logger) []*AreaScore {
	entries, _ := raw.([]any)

	scores := make([]*AreaScore, 0, len(areas))
	for _, area := range areas {
		entry := findEntry(entries, area)
		if entry == nil {
			logger.Warn("area missing from model response, using N/A",
				zap.String("section", section),
				zap.String("area", area),
			)
			scores = append(scores, &AreaScore{Name: area, Comment: PlaceholderComment})
			continue
		}

		scores = append(scores, &AreaScore{
			Name:    area,
			Score:   parseScore(entry["score"]),
			Comment: parseComment(entry["comment"]),
		})
	}

	return scores
}

// findEntry returns the first raw entry whose name matches the canonical
// area name. Extra, duplicate and misnamed entries are ignored.
func findEntry(entries []any, area string) map[string]any {
	want := normalizeAreaName(area)
	for _, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			continue
		}
		name, _ := entry["name"].(string)
		if normalizeAreaName(name) == want {
			return entry
		}
	}
	return nil
}

// normalizeAreaName prepares an area name for comparison: lowercased,
// trimmed, with the a.k.a abbreviation collapsed to aka.
func normalizeAreaName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "a.k.a.", "aka")
	name = strings.ReplaceAll(name, "a.k.a", "aka")
	return strings.TrimSpace(name)
}

// parseScore accepts only integral JSON numbers within [1,5]; anything else
// is unset.
func parseScore(v any) *int {
	n, ok := v.(float64)
	if !ok || n != math.Trunc(n) {
		return nil
	}

	score := int(n)
	if score < 1 || score > 5 {
		return nil
	}

	return &score
}

func parseComment(v any) string {
	if comment, ok := v.(string); ok && strings.TrimSpace(comment) != "" {
		return comment
	}
	return PlaceholderComment
}

func reconcileLevel(v any, levels []string) string {
	fallback := defaultOverallLevel
	if len(levels) > 0 {
		fallback = levels[0]
	}

	level, ok := v.(string)
	if !ok || !slices.Contains(levels, level) {
		return fallback
	}

	return level
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fallback
}
