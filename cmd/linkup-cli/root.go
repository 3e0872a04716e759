package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/raezil/linkup-go/internal/config"
	"github.com/raezil/linkup-go/internal/logger"
	linkup "github.com/raezil/linkup-go/linkup"
)

// app carries what every subcommand needs once the root pre-run is done.
type app struct {
	client  *linkup.Client
	logger  zerolog.Logger
	format  string
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var baseURL, ua string

	root := &cobra.Command{
		Use:   "linkup",
		Short: "linkup CLI (unofficial)",
		Long: `linkup CLI (unofficial)

Env:
  LINKUP_API_KEY   Your Linkup API key (a .env file is read when present)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if baseURL != "" {
				cfg.BaseURL = baseURL
			}
			if ua != "" {
				cfg.UserAgent = ua
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			switch a.format {
			case formatJSON, formatYAML:
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", a.format)
			}

			a.logger = logger.New(cfg.LogLevel, cfg.LogFormat)
			a.client = linkup.NewClient(cfg.APIKey, cfg.ClientOptions(a.logger)...)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&baseURL, "base", "", "override base URL (for testing)")
	flags.StringVar(&ua, "ua", "", "custom user-agent")
	flags.StringVar(&a.format, "format", formatJSON, "output format: json|yaml")
	flags.DurationVar(&a.timeout, "timeout", 30*time.Second, "overall request timeout")

	root.AddCommand(
		newSearchCmd(a),
		newFetchCmd(a),
		newBalanceCmd(a),
	)
	return root
}
