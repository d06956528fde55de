package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spigell/interview-feedback/internal/profile"
	"github.com/spigell/interview-feedback/internal/report"
	"go.uber.org/zap"
)

type stubGenerator struct {
	response   string
	err        error
	lastSystem string
	lastUser   string
	jsonCalls  int
	plainCalls int
}

func (s *stubGenerator) GenerateContent(_ context.Context, system, user string) (string, error) {
	s.plainCalls++
	s.lastSystem = system
	s.lastUser = user
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) GenerateJSON(_ context.Context, system, user string) (string, error) {
	s.jsonCalls++
	s.lastSystem = system
	s.lastUser = user
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

func testProfile() *profile.FeedbackProfile {
	return &profile.FeedbackProfile{
		Technical:          []string{"C# Basic", "Security"},
		NonTechnical:       []string{"Communication"},
		PersonalAssessment: []string{"Culture fit"},
		OverallLevels:      []string{"Junior", "Medior", "Senior", "Lead"},
	}
}

func TestAnalyzeBuildsPromptsFromProfile(t *testing.T) {
	stub := &stubGenerator{response: `{"overall_level": "Senior"}`}
	analyst := NewAnalyst(stub, testProfile(), zap.NewNop())

	rep, err := analyst.Analyze(context.Background(), "Great with Go.", "Jane Doe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, area := range []string{"C# Basic", "Security", "Communication", "Culture fit"} {
		if !strings.Contains(stub.lastSystem, "- "+area) {
			t.Fatalf("system prompt missing area %q:\n%s", area, stub.lastSystem)
		}
	}

	if !strings.Contains(stub.lastSystem, "Junior, Medior, Senior, Lead") {
		t.Fatalf("system prompt missing overall levels:\n%s", stub.lastSystem)
	}

	if !strings.Contains(stub.lastUser, "Great with Go.") {
		t.Fatalf("user prompt missing the notes:\n%s", stub.lastUser)
	}
	if !strings.Contains(stub.lastUser, `"candidate_name": "Jane Doe"`) {
		t.Fatalf("user prompt missing the candidate skeleton:\n%s", stub.lastUser)
	}
	if !strings.Contains(stub.lastUser, `"personal_assessment_scores"`) {
		t.Fatalf("user prompt skeleton missing personal assessment section:\n%s", stub.lastUser)
	}

	if stub.jsonCalls != 1 {
		t.Fatalf("expected one structured call, got %d", stub.jsonCalls)
	}

	if rep.OverallLevel != "Senior" {
		t.Fatalf("unexpected overall level: %q", rep.OverallLevel)
	}
}

func TestAnalyzeSkipsPersonalAssessmentSkeletonWhenUndeclared(t *testing.T) {
	prof := testProfile()
	prof.PersonalAssessment = nil

	stub := &stubGenerator{response: `{}`}
	analyst := NewAnalyst(stub, prof, zap.NewNop())

	if _, err := analyst.Analyze(context.Background(), "notes", "X"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(stub.lastUser, `"personal_assessment_scores"`) {
		t.Fatalf("skeleton should not mention personal assessment:\n%s", stub.lastUser)
	}
}

func TestAnalyzeReconcilesFencedResponse(t *testing.T) {
	stub := &stubGenerator{
		response: "```json\n{\"technical_scores\": [{\"name\": \"c# basic\", \"score\": 4, \"comment\": \"Solid.\"}]}\n```",
	}
	analyst := NewAnalyst(stub, testProfile(), zap.NewNop())

	rep, err := analyst.Analyze(context.Background(), "notes", "Jane")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rep.TechnicalScores[0].Score == nil || *rep.TechnicalScores[0].Score != 4 {
		t.Fatalf("unexpected technical score: %+v", rep.TechnicalScores[0])
	}
	if rep.TechnicalScores[1].Comment != report.PlaceholderComment {
		t.Fatalf("expected placeholder for missing area, got %+v", rep.TechnicalScores[1])
	}
}

func TestAnalyzePropagatesGeneratorError(t *testing.T) {
	stub := &stubGenerator{err: errors.New("boom")}
	analyst := NewAnalyst(stub, testProfile(), zap.NewNop())

	if _, err := analyst.Analyze(context.Background(), "notes", "X"); err == nil {
		t.Fatal("expected error from generator")
	}
}

func TestEvaluateSwallowsFailure(t *testing.T) {
	stub := &stubGenerator{err: errors.New("quota exceeded")}
	analyst := NewAnalyst(stub, testProfile(), zap.NewNop())

	rep := report.Reconcile("{}", testProfile(), "Jane", zap.NewNop())

	if got := analyst.Evaluate(context.Background(), rep, "notes"); got != "" {
		t.Fatalf("expected empty evaluation on failure, got %q", got)
	}
}

func TestEvaluateEmbedsReportAndNotes(t *testing.T) {
	stub := &stubGenerator{response: "  Thorough feedback overall.  "}
	analyst := NewAnalyst(stub, testProfile(), zap.NewNop())

	rep := report.Reconcile(`{"overall_level": "Lead", "overall_comment": "Hire."}`, testProfile(), "Jane", zap.NewNop())

	got := analyst.Evaluate(context.Background(), rep, "my raw notes")
	if got != "Thorough feedback overall." {
		t.Fatalf("unexpected evaluation: %q", got)
	}

	if !strings.Contains(stub.lastUser, "my raw notes") {
		t.Fatalf("evaluation prompt missing the notes:\n%s", stub.lastUser)
	}
	if !strings.Contains(stub.lastUser, "Overall level: Lead") {
		t.Fatalf("evaluation prompt missing the report text:\n%s", stub.lastUser)
	}
	if stub.plainCalls != 1 || stub.jsonCalls != 0 {
		t.Fatalf("expected one plain call, got plain=%d json=%d", stub.plainCalls, stub.jsonCalls)
	}
}
