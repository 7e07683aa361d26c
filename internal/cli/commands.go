// Package cli provides the command-line interface for coverchat.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"coverchat/internal/api"
	"coverchat/internal/auth"
	"coverchat/internal/chatbot"
	"coverchat/internal/config"
	"coverchat/internal/logging"
	"coverchat/internal/session"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "coverchat",
		Short: "coverchat - terminal client for the insurance chatbot service",
		Long: `coverchat is an interactive terminal frontend for a health-insurance
chatbot service. It offers an individual Q&A consultation and a guided
business plan discovery that ends in plan recommendations.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				cfg.Debug = true
			}
			return runInteractive(cfg)
		},
	}

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(cfg))

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	return rootCmd
}

// runInteractive wires the client stack together and starts the menu loop.
func runInteractive(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	level := cfg.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	log := logging.New(level, cfg.LogFormat)
	defer log.Sync()

	client := api.New(cfg.BackendURL, cfg.TokenAudience, auth.GoogleTokenSource{}, log)
	bot := chatbot.New(client, session.New(), log)
	app := NewApp(bot, log)

	return app.Run(context.Background())
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("coverchat v1.0.0")
			fmt.Println("Terminal client for the insurance chatbot service")
		},
	}
}

// newConfigCmd creates the config command
func newConfigCmd(cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Run: func(cmd *cobra.Command, args []string) {
			data, _ := json.MarshalIndent(cfg, "", "  ")
			fmt.Println(string(data))
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			fmt.Println("Configuration is valid.")
			return nil
		},
	})

	return configCmd
}
