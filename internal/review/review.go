package review

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spigell/interview-feedback/internal/profile"
	"github.com/spigell/interview-feedback/internal/report"
	"go.uber.org/zap"
)

// Instructions is printed once before the review loop starts.
const Instructions = "Review the scores above. For each area, enter a new score (1-5), " +
	"'n' for N/A, or Enter to keep. Type 'q' to skip remaining and generate the PDF.\n"

// prompter abstracts the terminal prompts so the loop is testable.
type prompter interface {
	Input(label, initial string) (string, error)
	Select(label string, items []string, cursor int) (string, error)
}

type terminalPrompter struct{}

func (terminalPrompter) Input(label, initial string) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   initial,
		AllowEdit: true,
	}
	return prompt.Run()
}

func (terminalPrompter) Select(label string, items []string, cursor int) (string, error) {
	sel := promptui.Select{
		Label:     label,
		Items:     items,
		CursorPos: cursor,
	}
	_, value, err := sel.Run()
	return value, err
}

// Reviewer walks the operator through every area score in profile order,
// then the overall level and comment. It produces a new report value and
// never mutates the one it was given.
type Reviewer struct {
	prompter prompter
	profile  *profile.FeedbackProfile
	logger   *zap.Logger
}

func New(prof *profile.FeedbackProfile, logger *zap.Logger) *Reviewer {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Reviewer{
		prompter: terminalPrompter{},
		profile:  prof,
		logger:   logger,
	}
}

// Run reviews the report section by section. Aborting a section copies its
// remaining entries and all later sections through unchanged.
func (r *Reviewer) Run(rep *report.FeedbackReport) *report.FeedbackReport {
	updated := &report.FeedbackReport{
		CandidateName: rep.CandidateName,
		AIEvaluation:  rep.AIEvaluation,
	}

	var active bool
	updated.TechnicalScores, active = r.reviewSection(rep.TechnicalScores, true)
	updated.NonTechnicalScores, active = r.reviewSection(rep.NonTechnicalScores, active)
	updated.PersonalAssessmentScores, _ = r.reviewSection(rep.PersonalAssessmentScores, active)

	updated.OverallLevel = r.reviewLevel(rep.OverallLevel)
	updated.OverallComment = r.reviewComment(rep.OverallComment)

	return updated
}

func (r *Reviewer) reviewSection(scores []*report.AreaScore, active bool) ([]*report.AreaScore, bool) {
	if len(scores) == 0 {
		return nil, active
	}

	updated := make([]*report.AreaScore, 0, len(scores))

	for idx, score := range scores {
		if !active {
			updated = append(updated, score.Clone())
			continue
		}

		for {
			input, err := r.prompter.Input(fmt.Sprintf("%s [%s]", score.Name, score.DisplayScore()), "")
			if err != nil {
				r.logger.Debug("review prompt aborted", zap.Error(err))
				input = "q"
			}

			input = strings.ToLower(strings.TrimSpace(input))

			if input == "q" {
				for _, rest := range scores[idx:] {
					updated = append(updated, rest.Clone())
				}
				return updated, false
			}

			if input == "" {
				updated = append(updated, score.Clone())
				break
			}

			if input == "n" {
				updated = append(updated, &report.AreaScore{
					Name:    score.Name,
					Comment: report.PlaceholderComment,
				})
				break
			}

			newScore, convErr := strconv.Atoi(input)
			if convErr != nil || newScore < 1 || newScore > 5 {
				fmt.Println("Enter 1-5, 'n' for N/A, Enter to keep, or 'q' to finish.")
				continue
			}

			comment, err := r.prompter.Input("Comment", score.Comment)
			if err != nil || strings.TrimSpace(comment) == "" {
				comment = score.Comment
			}

			updated = append(updated, &report.AreaScore{
				Name:    score.Name,
				Score:   &newScore,
				Comment: comment,
			})
			break
		}
	}

	return updated, active
}

func (r *Reviewer) reviewLevel(current string) string {
	levels := r.profile.OverallLevels
	if len(levels) == 0 {
		return current
	}

	cursor := slices.Index(levels, current)
	if cursor < 0 {
		cursor = 0
	}

	choice, err := r.prompter.Select("Overall level", levels, cursor)
	if err != nil || !slices.Contains(levels, choice) {
		return current
	}

	return choice
}

func (r *Reviewer) reviewComment(current string) string {
	comment, err := r.prompter.Input("Overall comment", current)
	if err != nil || strings.TrimSpace(comment) == "" {
		return current
	}

	return comment
}
