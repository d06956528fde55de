package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "interview-feedback"

	defaultTemperature = 0.3
)

// Config holds the remote model settings, resolved once from the optional
// config file and the environment.
type Config struct {
	BaseURL     string  `mapstructure:"base-url"`
	APIKey      string  `mapstructure:"api-key"`
	APIKeyFile  string  `mapstructure:"api-key-file"`
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "interview-feedback turns free-text interview notes into a scored feedback report rendered as a PDF",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envBindings := map[string]string{
		"base-url":     "LLM_BASE_URL",
		"api-key":      "GEMINI_API_KEY",
		"api-key-file": "GEMINI_API_KEY_FILE",
		"model":        "LLM_MODEL",
		"temperature":  "LLM_TEMPERATURE",
	}
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetDefault("temperature", defaultTemperature)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file with llm settings (optional)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// The config file is optional; the environment alone is enough.
	if cfgFile == "" {
		return
	}

	viper.SetConfigFile(cfgFile)

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
