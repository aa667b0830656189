// Command paperradar is the terminal dashboard for a paper-ranking service.
//
// Usage:
//
//	paperradar                  Open the dashboard
//	paperradar users            List registered chats
//	paperradar papers           Print one page of a chat's ranked papers
//	paperradar journals         Print a chat's journal recommendations
//	paperradar snapshot         Fetch config, first page and journals at once
//	paperradar seen             Show the local seen ledger for a chat
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
)

// rootCmd opens the dashboard when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "paperradar",
	Short: "Terminal dashboard for ranked research papers",
	Long: `paperradar browses the papers a ranking service has scored for a chat,
with history paging, live refresh, sorting, feedback and journal
recommendations.`,
	Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDashboard,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file path (default is $HOME/.paperradar/config.json)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "api", "", "API base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().Int64Var(&flagChat, "chat", 0, "open this chat directly instead of the picker")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
