// Package main is the entry point for the pokesearch command line tool
package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokesearch/internal/config"
)

var (
	// Global flags, applied over the environment when set
	envFile     string
	baseURL     string
	httpTimeout time.Duration
	retries     int
	concurrency int
	redisAddr   string
	logLevel    string
	logFile     string
	jsonOutput  bool

	cfg *config.Config

	// errReported fails the command after its message was already printed
	errReported = stderrors.New("reported")
)

var rootCmd = &cobra.Command{
	Use:   "pokesearch",
	Short: "Look up Pokemon from the PokeAPI",
	Long: `pokesearch fetches a Pokemon by name or number and shows its stats, description,
evolution line, type matchups and first level-up moves.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if err != errReported {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&envFile, "env-file", "", "Load settings from this .env file (default .env)")
	flags.StringVar(&baseURL, "base-url", "", "PokeAPI base URL")
	flags.DurationVar(&httpTimeout, "timeout", 0, "Per-request HTTP timeout")
	flags.IntVar(&retries, "retries", 0, "Attempts per upstream call, 1 disables retrying")
	flags.IntVar(&concurrency, "concurrency", 0, "Maximum parallel sprite and type fetches")
	flags.StringVar(&redisAddr, "redis-addr", "", "Store the suggestion roster in Redis at this address")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")
	flags.BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(interactiveCmd)
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}

	loaded, err := config.Load(files...)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		loaded.API.BaseURL = baseURL
	}
	if flags.Changed("timeout") {
		loaded.API.HTTPTimeout = httpTimeout
	}
	if flags.Changed("retries") {
		loaded.API.RetryAttempts = retries
	}
	if flags.Changed("concurrency") {
		loaded.Lookup.MaxConcurrency = concurrency
	}
	if flags.Changed("redis-addr") {
		loaded.Redis.Addr = redisAddr
	}
	if flags.Changed("log-level") {
		loaded.Logging.Level = logLevel
	}
	if flags.Changed("log-file") {
		loaded.Logging.File = logFile
	}

	if err := loaded.Validate(); err != nil {
		return err
	}

	cfg = loaded
	return nil
}
