package ai

import (
	"context"

	"github.com/spigell/interview-feedback/internal/report"
)

// Analyst turns raw interview notes into a structured feedback report and
// optionally produces a meta-evaluation of the feedback itself.
type Analyst interface {
	// Analyze scores the notes against the configured profile. The returned
	// report is always complete and in profile order.
	Analyze(ctx context.Context, notes, candidateName string) (*report.FeedbackReport, error)

	// Evaluate produces free-text coaching commentary on the feedback.
	// Failures are swallowed; the result is empty when unavailable.
	Evaluate(ctx context.Context, rep *report.FeedbackReport, notes string) string
}
