package profile

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"
)

func writeProfileFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "feedback-config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing profile file: %v", err)
	}

	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	prof := Load(filepath.Join(t.TempDir(), "nope.yaml"), zap.NewNop())

	if !reflect.DeepEqual(prof, Default()) {
		t.Fatalf("expected built-in defaults, got %+v", prof)
	}
	if len(prof.PersonalAssessment) != 0 {
		t.Fatalf("defaults must not declare personal assessment areas")
	}
}

func TestLoadFullProfile(t *testing.T) {
	path := writeProfileFile(t, `
technical:
  - Go Basics
  - Concurrency
non_technical:
  - Communication
personal_assessment:
  - Culture fit
overall_levels:
  - Intern
  - Staff
`)

	prof := Load(path, zap.NewNop())

	if !reflect.DeepEqual(prof.Technical, []string{"Go Basics", "Concurrency"}) {
		t.Fatalf("unexpected technical areas: %v", prof.Technical)
	}
	if !reflect.DeepEqual(prof.NonTechnical, []string{"Communication"}) {
		t.Fatalf("unexpected non-technical areas: %v", prof.NonTechnical)
	}
	if !reflect.DeepEqual(prof.PersonalAssessment, []string{"Culture fit"}) {
		t.Fatalf("unexpected personal assessment areas: %v", prof.PersonalAssessment)
	}
	if !reflect.DeepEqual(prof.OverallLevels, []string{"Intern", "Staff"}) {
		t.Fatalf("unexpected overall levels: %v", prof.OverallLevels)
	}
}

func TestLoadPartialProfileKeepsOtherDefaults(t *testing.T) {
	path := writeProfileFile(t, `
technical:
  - Go Basics
`)

	prof := Load(path, zap.NewNop())

	if !reflect.DeepEqual(prof.Technical, []string{"Go Basics"}) {
		t.Fatalf("unexpected technical areas: %v", prof.Technical)
	}
	if !reflect.DeepEqual(prof.NonTechnical, DefaultNonTechnicalAreas) {
		t.Fatalf("expected default non-technical areas, got %v", prof.NonTechnical)
	}
	if !reflect.DeepEqual(prof.OverallLevels, DefaultOverallLevels) {
		t.Fatalf("expected default overall levels, got %v", prof.OverallLevels)
	}
}

func TestLoadInvalidSyntaxFallsBackToDefaults(t *testing.T) {
	path := writeProfileFile(t, "technical: [unclosed\n  - what")

	prof := Load(path, zap.NewNop())

	if !reflect.DeepEqual(prof, Default()) {
		t.Fatalf("expected built-in defaults, got %+v", prof)
	}
}

func TestLoadWrongShapeFallsBackToDefaults(t *testing.T) {
	path := writeProfileFile(t, `
technical:
  nested:
    - not a list of strings
`)

	prof := Load(path, zap.NewNop())

	if !reflect.DeepEqual(prof.Technical, DefaultTechnicalAreas) {
		t.Fatalf("expected default technical areas, got %v", prof.Technical)
	}
}

func TestLoadEmptyOverallLevelsRestoresDefaults(t *testing.T) {
	path := writeProfileFile(t, `
overall_levels: []
`)

	prof := Load(path, zap.NewNop())

	if !reflect.DeepEqual(prof.OverallLevels, DefaultOverallLevels) {
		t.Fatalf("expected default overall levels, got %v", prof.OverallLevels)
	}
}
