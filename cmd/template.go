package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/spigell/interview-feedback/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Show the configured assessment areas and the scoring rubric",
	Run: func(cmd *cobra.Command, _ []string) {
		template(cmd)
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)

	templateCmd.Flags().String("profile", "", "path to the feedback profile file (default is feedback-config.yaml in the current directory)")
}

// template prints the configured areas. It performs no remote call.
func template(cmd *cobra.Command) {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	prof := loadProfile(cmd.Flag("profile").Value.String(), zlog)

	fmt.Println("Interview Feedback Template - Assessment Areas")
	fmt.Println()
	fmt.Println("Scoring: 1 = worst, 5 = best")
	fmt.Println()
	fmt.Println("Technical:")
	for _, area := range prof.Technical {
		fmt.Printf("  - %s\n", area)
	}
	fmt.Println()
	fmt.Println("Non-technical:")
	for _, area := range prof.NonTechnical {
		fmt.Printf("  - %s\n", area)
	}
	if len(prof.PersonalAssessment) > 0 {
		fmt.Println()
		fmt.Println("Personal Assessment:")
		for _, area := range prof.PersonalAssessment {
			fmt.Printf("  - %s\n", area)
		}
	}
	fmt.Printf("\nOverall: Level (%s) + comment\n", strings.Join(prof.OverallLevels, "/"))
}
