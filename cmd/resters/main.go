package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/studiowebux/resters/internal/analytics"
	"github.com/studiowebux/resters/internal/cli"
	"github.com/studiowebux/resters/internal/config"
	"github.com/studiowebux/resters/internal/history"
	"github.com/studiowebux/resters/internal/logging"
	"github.com/studiowebux/resters/internal/session"
	"github.com/studiowebux/resters/internal/tui"
	"github.com/studiowebux/resters/internal/types"
)

var (
	version = "0.1.0"
)

// Loaded once in PersistentPreRunE
var (
	appConfig *config.Config
	appLog    zerolog.Logger
	logCloser io.Closer
)

func main() {
	err := rootCmd.Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "resters",
	Short: "resters - interactive JSON fetcher",
	Long: `resters fetches a URL with GET or POST and shows the JSON response
pretty-printed and syntax highlighted.

Run without arguments to start the TUI, or use 'fetch' for a single request.

Examples:
  resters                                   # Start interactive TUI
  resters fetch jsonplaceholder.typicode.com/users/1
  resters fetch example.com/api -X POST -o json
  resters fetch example.com/users -q '[0].name'
  resters history -n 20                     # Recent fetches
  resters history clear
  resters stats -o json                     # Per-endpoint stats`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		if flagLogLevel != "" {
			cfg.Logging.Level = flagLogLevel
		}

		log, closer, err := logging.Setup(cfg.Logging)
		if err != nil {
			return err
		}

		appConfig = cfg
		appLog = log
		logCloser = closer
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(appConfig, appLog)
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Fetch a URL once and print the result",
	Long: `Fetch a URL once and print the result.

In text mode the status goes to stderr and the highlighted body to stdout.
json and yaml print a report with the method, url, status, body and the
per-byte style markers. A body that is not JSON or a failed connection
exits with status 1.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// An empty method falls back to fetch.method from the config
		var method types.Method
		if flagMethod != "" {
			m, err := types.ParseMethod(flagMethod)
			if err != nil {
				return err
			}
			method = m
		}
		if cmd.Flags().Changed("query") {
			appConfig.Fetch.Query = flagQuery
		}

		opts := cli.FetchOptions{
			Config:       appConfig,
			Logger:       appLog,
			Method:       method,
			URL:          args[0],
			OutputFormat: flagOutput,
			Session:      session.NewManager(config.SessionFile),
		}
		if err := opts.Session.Load(); err != nil {
			return err
		}

		if appConfig.History.Enabled {
			mgr, err := history.NewManager(config.DatabasePath)
			if err != nil {
				appLog.Error().Err(err).Msg("history disabled")
			} else {
				defer mgr.Close()
				opts.History = mgr
			}
		}

		return cli.Fetch(opts)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent fetches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := history.NewManager(config.DatabasePath)
		if err != nil {
			return err
		}
		defer mgr.Close()

		return cli.ListHistory(cli.HistoryOptions{
			History:      mgr,
			Limit:        flagHistoryLimit,
			OutputFormat: flagOutput,
		})
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded fetches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := history.NewManager(config.DatabasePath)
		if err != nil {
			return err
		}
		defer mgr.Close()

		if err := mgr.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-endpoint stats from the fetch history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := analytics.NewManager(config.DatabasePath)
		if err != nil {
			return err
		}
		defer mgr.Close()

		return cli.ListStats(cli.StatsOptions{
			Analytics:    mgr,
			OutputFormat: flagOutput,
		})
	},
}

// Flags
var (
	flagConfig       string
	flagLogLevel     string
	flagMethod       string
	flagOutput       string
	flagQuery        string
	flagHistoryLimit int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default ~/.resters/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug/info/warn/error)")

	fetchCmd.Flags().StringVarP(&flagMethod, "method", "X", "", "HTTP method (GET/POST, default fetch.method)")
	fetchCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text/json/yaml)")
	fetchCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath query applied to the JSON body")

	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Number of entries to show (0 for all)")
	historyCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text/json/yaml)")

	statsCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text/json/yaml)")

	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
}
