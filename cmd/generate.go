package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spigell/interview-feedback/internal/ai"
	"github.com/spigell/interview-feedback/internal/ai/gemini"
	"github.com/spigell/interview-feedback/internal/logger"
	"github.com/spigell/interview-feedback/internal/pdf"
	"github.com/spigell/interview-feedback/internal/profile"
	"github.com/spigell/interview-feedback/internal/review"
	"github.com/spigell/interview-feedback/internal/secrets"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultOutputFolder = "output"

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a feedback report from interview notes",
	Run: func(cmd *cobra.Command, _ []string) {
		generate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("input", "i", "", "path to the interview notes file (txt or md)")
	generateCmd.Flags().StringP("candidate", "c", "", "name of the candidate")
	generateCmd.Flags().StringP("output", "o", "", "output pdf path (overrides --output-folder when set)")
	generateCmd.Flags().String("output-folder", defaultOutputFolder, "folder for generated pdfs when --output is not set")
	generateCmd.Flags().BoolP("review", "r", false, "review and adjust scores interactively before generating the pdf")
	generateCmd.Flags().String("profile", "", "path to the feedback profile file (default is feedback-config.yaml in the current directory)")

	generateCmd.MarkFlagRequired("input")
	generateCmd.MarkFlagRequired("candidate")
}

// generate is the main command for the cli.
func generate(cmd *cobra.Command) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	input := cmd.Flag("input").Value.String()
	candidate := cmd.Flag("candidate").Value.String()

	notes, err := os.ReadFile(input)
	if err != nil {
		zlog.Fatal("reading interview notes", zap.String("path", input), zap.Error(err))
	}

	prof := loadProfile(cmd.Flag("profile").Value.String(), zlog)

	apiKey, err := resolveAPIKey(config)
	if err != nil {
		zlog.Fatal("loading llm api key", zap.Error(err))
	}

	if apiKey == "" && config.BaseURL == "" {
		zlog.Fatal("no llm credentials configured",
			zap.String("hint", "set GEMINI_API_KEY (or GEMINI_API_KEY_FILE), or LLM_BASE_URL for a self-hosted endpoint"),
		)
	}

	generator, err := gemini.NewGenerator(ctx, gemini.Config{
		APIKey:      apiKey,
		BaseURL:     config.BaseURL,
		Model:       config.Model,
		Temperature: config.Temperature,
	}, zlog)
	if err != nil {
		zlog.Fatal("creating llm client", zap.Error(err))
	}

	var analyst ai.Analyst = gemini.NewAnalyst(generator, prof, logger.WithCommonFields(zlog, "gemini", generator.Model()))

	zlog.Info("analyzing interview notes",
		zap.String("candidate", candidate),
		zap.String("model", generator.Model()),
	)

	rep, err := analyst.Analyze(ctx, string(notes), candidate)
	if err != nil {
		zlog.Fatal("analyzing interview notes", zap.Error(err))
	}

	rep.AIEvaluation = analyst.Evaluate(ctx, rep, string(notes))

	if interactive, _ := cmd.Flags().GetBool("review"); interactive {
		fmt.Print(rep.FormatForDisplay())
		fmt.Print(review.Instructions)
		rep = review.New(prof, zlog).Run(rep)
	}

	outPath := cmd.Flag("output").Value.String()
	if outPath == "" {
		folder := cmd.Flag("output-folder").Value.String()
		if err := os.MkdirAll(folder, 0o755); err != nil {
			zlog.Fatal("creating output folder", zap.String("folder", folder), zap.Error(err))
		}

		name := fmt.Sprintf("feedback-%s-%s.pdf",
			strings.ReplaceAll(candidate, " ", "-"),
			time.Now().Format("20060102-1504"),
		)
		outPath = filepath.Join(folder, name)
	}

	if err := pdf.Render(rep, outPath); err != nil {
		zlog.Fatal("rendering pdf", zap.Error(err))
	}

	zlog.Info("report saved", zap.String("path", outPath))
	fmt.Printf("Report saved to %s\n", outPath)
}

// loadProfile resolves the feedback profile. A profile path given explicitly
// must exist; the default path may be absent.
func loadProfile(path string, zlog *zap.Logger) *profile.FeedbackProfile {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			zlog.Fatal("profile file is not readable", zap.String("path", path), zap.Error(err))
		}
	}

	return profile.Load(path, zlog)
}

func resolveAPIKey(config *Config) (string, error) {
	if config == nil || (config.APIKey == "" && config.APIKeyFile == "") {
		return "", nil
	}

	return secrets.Resolve("llm api key", config.APIKey, config.APIKeyFile)
}
