package report

import (
	"fmt"
	"strconv"
	"strings"
)

// PlaceholderComment is substituted whenever an area has no usable comment.
const PlaceholderComment = "Not evaluated/not enough data"

// AreaScore holds the evaluation of a single assessment area. A nil Score
// means the area was not evaluated.
type AreaScore struct {
	Name    string `json:"name"`
	Score   *int   `json:"score"`
	Comment string `json:"comment"`
}

// DisplayScore returns the score as a string, or N/A when unset.
func (a *AreaScore) DisplayScore() string {
	if a.Score == nil {
		return "N/A"
	}
	return strconv.Itoa(*a.Score)
}

// Clone returns an independent copy of the area score.
func (a *AreaScore) Clone() *AreaScore {
	c := &AreaScore{Name: a.Name, Comment: a.Comment}
	if a.Score != nil {
		v := *a.Score
		c.Score = &v
	}
	return c
}

// FeedbackReport is the canonical report shape. The three score lists mirror
// the profile's area lists exactly, in profile order.
type FeedbackReport struct {
	CandidateName            string       `json:"candidate_name"`
	TechnicalScores          []*AreaScore `json:"technical_scores"`
	NonTechnicalScores       []*AreaScore `json:"non_technical_scores"`
	PersonalAssessmentScores []*AreaScore `json:"personal_assessment_scores,omitempty"`
	OverallLevel             string       `json:"overall_level"`
	OverallComment           string       `json:"overall_comment"`
	AIEvaluation             string       `json:"ai_evaluation,omitempty"`
}

// FormatForDisplay renders the report for the terminal, shown before the
// interactive review.
func (r *FeedbackReport) FormatForDisplay() string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n=== Feedback for %s ===\n\n", r.CandidateName)

	writeSection := func(title string, scores []*AreaScore) {
		fmt.Fprintf(&b, "%s:\n", title)
		for _, s := range scores {
			fmt.Fprintf(&b, "  %s: %s - %s\n", s.Name, s.DisplayScore(), s.Comment)
		}
	}

	writeSection("Technical", r.TechnicalScores)
	b.WriteString("\n")
	writeSection("Non-technical", r.NonTechnicalScores)
	if len(r.PersonalAssessmentScores) > 0 {
		b.WriteString("\n")
		writeSection("Personal Assessment", r.PersonalAssessmentScores)
	}

	b.WriteString("\nOverall:\n")
	fmt.Fprintf(&b, "  Level: %s\n", r.OverallLevel)
	fmt.Fprintf(&b, "  Comment: %s\n", r.OverallComment)

	if r.AIEvaluation != "" {
		b.WriteString("\nAI Evaluation:\n")
		for _, line := range strings.Split(r.AIEvaluation, "\n") {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}

	return b.String()
}

// FormatForEvaluation renders the report as plain text for the
// meta-evaluation prompt.
func (r *FeedbackReport) FormatForEvaluation() string {
	lines := []string{
		fmt.Sprintf("Candidate: %s", r.CandidateName),
		fmt.Sprintf("Overall level: %s", r.OverallLevel),
		fmt.Sprintf("Overall comment: %s", r.OverallComment),
		"",
		"Technical scores:",
	}

	for _, s := range r.TechnicalScores {
		lines = append(lines, fmt.Sprintf("  - %s: %s - %s", s.Name, s.DisplayScore(), s.Comment))
	}

	lines = append(lines, "", "Non-technical scores:")
	for _, s := range r.NonTechnicalScores {
		lines = append(lines, fmt.Sprintf("  - %s: %s - %s", s.Name, s.DisplayScore(), s.Comment))
	}

	if len(r.PersonalAssessmentScores) > 0 {
		lines = append(lines, "", "Personal assessment scores:")
		for _, s := range r.PersonalAssessmentScores {
			lines = append(lines, fmt.Sprintf("  - %s: %s - %s", s.Name, s.DisplayScore(), s.Comment))
		}
	}

	return strings.Join(lines, "\n")
}
