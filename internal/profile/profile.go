package profile

import (
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// DefaultFile is looked up in the current directory when no profile path is given.
const DefaultFile = "feedback-config.yaml"

// Built-in assessment areas, used when no profile file is configured.
var (
	DefaultTechnicalAreas = []string{
		"C# Basic",
		"C# Intermediate",
		"C# Advanced",
		"DBs relational",
		"DBs no sql",
		"Security",
		"Cloud",
		"Personal projects",
		"Last work project",
		"DevOps",
		"Web development",
		"Web SPA - Angular",
	}

	DefaultNonTechnicalAreas = []string{
		"Potential & Motivation a.k.a Drive",
		"Communication",
		"Self impression",
	}

	DefaultOverallLevels = []string{"Junior", "Medior", "Senior", "Lead"}
)

// FeedbackProfile defines the assessment areas and the valid overall levels
// for a report. It is loaded once at startup and read-only afterwards.
type FeedbackProfile struct {
	Technical          []string `mapstructure:"technical"`
	NonTechnical       []string `mapstructure:"non_technical"`
	PersonalAssessment []string `mapstructure:"personal_assessment"`
	OverallLevels      []string `mapstructure:"overall_levels"`
}

// Default returns the built-in profile. There are no personal assessment
// areas unless a profile file declares them.
func Default() *FeedbackProfile {
	return &FeedbackProfile{
		Technical:     DefaultTechnicalAreas,
		NonTechnical:  DefaultNonTechnicalAreas,
		OverallLevels: DefaultOverallLevels,
	}
}

// Load reads a feedback profile from the given YAML file. An empty path means
// feedback-config.yaml in the current directory. A missing, unparseable or
// non-mapping file falls back to the built-in defaults; a present key
// overrides only its own default.
func Load(path string, logger *zap.Logger) *FeedbackProfile {
	if logger == nil {
		logger = zap.NewNop()
	}

	if path == "" {
		path = DefaultFile
	}

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		logger.Debug("profile file not usable, using built-in defaults",
			zap.String("path", path),
			zap.Error(err),
		)
		return Default()
	}

	prof := Default()
	if err := mapstructure.Decode(v.AllSettings(), prof); err != nil {
		logger.Debug("profile file has unexpected shape, using built-in defaults",
			zap.String("path", path),
			zap.Error(err),
		)
		return Default()
	}

	// The reconciler needs at least one level to fall back on.
	if len(prof.OverallLevels) == 0 {
		prof.OverallLevels = DefaultOverallLevels
	}

	logger.Debug("loaded feedback profile",
		zap.String("path", path),
		zap.Int("technical", len(prof.Technical)),
		zap.Int("non_technical", len(prof.NonTechnical)),
		zap.Int("personal_assessment", len(prof.PersonalAssessment)),
	)

	return prof
}
