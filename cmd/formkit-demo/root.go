package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit"
)

var rootCmd = &cobra.Command{
	Use:   "formkit-demo",
	Short: "formkit-demo exercises formkit on a signup form",
	Long: `formkit-demo builds a signup form with formkit, fills it from flags,
and submits it. Settings come from FORMKIT_* environment variables and an
optional .env file; flags override them.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("lang", "", "message language (overrides FORMKIT_LANG)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (overrides FORMKIT_LOG_LEVEL)")
}

// loadConfig reads the environment and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (formkit.Config, error) {
	cfg, err := formkit.LoadConfig()
	if err != nil {
		return formkit.Config{}, err
	}
	if lang, _ := cmd.Flags().GetString("lang"); lang != "" {
		cfg.Lang = lang
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	return cfg, cfg.Validate()
}
