package gemini

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/spigell/interview-feedback/internal/logger"
	"github.com/spigell/interview-feedback/internal/profile"
	"github.com/spigell/interview-feedback/internal/report"
	"go.uber.org/zap"
)

//go:embed system_prompt.md
var systemPromptTemplate string

//go:embed evaluation_prompt.md
var evaluationPromptTemplate string

const (
	evaluationSystemPrompt = "You are an expert interviewer coach."

	defaultMaxLogLength = 500
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, user string) (string, error)
	GenerateJSON(ctx context.Context, system, user string) (string, error)
	Model() string
}

// Analyst builds prompts from the profile, invokes the model and reconciles
// its raw output into a canonical report.
type Analyst struct {
	generator contentGenerator
	profile   *profile.FeedbackProfile
	logger    *zap.Logger
	maxLogLen int
}

func NewAnalyst(generator contentGenerator, prof *profile.FeedbackProfile, logger *zap.Logger) *Analyst {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Analyst{
		generator: generator,
		profile:   prof,
		logger:    logger,
		maxLogLen: defaultMaxLogLength,
	}
}

// Analyze scores the interview notes against the configured profile.
func (a *Analyst) Analyze(ctx context.Context, notes, candidateName string) (*report.FeedbackReport, error) {
	system := a.buildSystemPrompt()
	user := a.buildUserPrompt(notes, candidateName)

	a.logger.Debug("llm analyze request",
		zap.String("model", a.generator.Model()),
		zap.Int("prompt_length", utf8.RuneCountInString(user)),
		zap.String("prompt_preview", logger.TruncateForLog(user, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateJSON(ctx, system, user)
	if err != nil {
		return nil, fmt.Errorf("analyzing interview notes: %w", err)
	}

	a.logger.Debug("llm analyze response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, a.maxLogLen)),
	)

	return report.Reconcile(raw, a.profile, candidateName, a.logger), nil
}

// Evaluate produces the meta-evaluation of the feedback. Remote failures are
// logged and swallowed into an empty result.
func (a *Analyst) Evaluate(ctx context.Context, rep *report.FeedbackReport, notes string) string {
	user := fmt.Sprintf(`Interview notes:
---
%s
---

Structured assessment derived from the notes:
---
%s
---

%s`, notes, rep.FormatForEvaluation(), strings.TrimSpace(evaluationPromptTemplate))

	a.logger.Debug("llm evaluation request",
		zap.String("model", a.generator.Model()),
		zap.Int("prompt_length", utf8.RuneCountInString(user)),
	)

	output, err := a.generator.GenerateContent(ctx, evaluationSystemPrompt, user)
	if err != nil {
		a.logger.Warn("ai evaluation failed, leaving it empty", zap.Error(err))
		return ""
	}

	a.logger.Debug("llm evaluation response",
		zap.String("response_preview", logger.TruncateForLog(output, a.maxLogLen)),
	)

	return strings.TrimSpace(output)
}

func (a *Analyst) buildSystemPrompt() string {
	personalBlock := ""
	if len(a.profile.PersonalAssessment) > 0 {
		personalBlock = fmt.Sprintf("\nPersonal assessment areas:\n%s\n", bulletList(a.profile.PersonalAssessment))
	}

	prompt := strings.ReplaceAll(systemPromptTemplate, "{{TECHNICAL_AREAS}}", bulletList(a.profile.Technical))
	prompt = strings.ReplaceAll(prompt, "{{NON_TECHNICAL_AREAS}}", bulletList(a.profile.NonTechnical))
	prompt = strings.ReplaceAll(prompt, "{{PERSONAL_ASSESSMENT_BLOCK}}", personalBlock)
	prompt = strings.ReplaceAll(prompt, "{{OVERALL_LEVELS}}", strings.Join(a.profile.OverallLevels, ", "))

	return prompt
}

func (a *Analyst) buildUserPrompt(notes, candidateName string) string {
	var skeleton strings.Builder

	skeleton.WriteString("{\n")
	fmt.Fprintf(&skeleton, "  %q: %q,\n", "candidate_name", candidateName)
	skeleton.WriteString(`  "technical_scores": [
    {"name": "<area name>", "score": <1-5 or null>, "comment": "<brief explanation>"}
  ],
  "non_technical_scores": [
    {"name": "<area name>", "score": <1-5 or null>, "comment": "<brief explanation>"}
  ],
`)
	if len(a.profile.PersonalAssessment) > 0 {
		skeleton.WriteString(`  "personal_assessment_scores": [
    {"name": "<area name>", "score": <1-5 or null>, "comment": "<brief explanation>"}
  ],
`)
	}
	fmt.Fprintf(&skeleton, "  \"overall_level\": \"<%s>\",\n", strings.Join(a.profile.OverallLevels, "|"))
	skeleton.WriteString(`  "overall_comment": "<2-4 sentence overall assessment>"
}`)

	return fmt.Sprintf(`Candidate: %s

Interview notes:
---
%s
---

Analyze these notes and return a JSON object with this exact structure:
%s

Use score: null and comment: %q when there is insufficient evidence. Include all %d technical areas and all %d non-technical areas in the exact order listed in the system prompt.`,
		candidateName, notes, skeleton.String(), report.PlaceholderComment,
		len(a.profile.Technical), len(a.profile.NonTechnical))
}

func bulletList(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}
