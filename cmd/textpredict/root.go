package main

import (
	"fmt"
	"os"

	"TextPredict/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "textpredict",
	Short: "Text Prediction API - HTTP text continuation service",
	Long: `textpredict serves a single prediction endpoint: POST /predict takes a
prompt and returns the model's continuation of it.

The model provider (openai, ark or echo) and everything else is read from
a TOML config file. API keys may also be supplied through the environment
or a .env file in the working directory.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath, "Path to the TOML config file")
}
