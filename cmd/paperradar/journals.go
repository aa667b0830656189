package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpreyes/paperradar/internal/feed"
)

var (
	journalsChat  int64
	journalsLimit int
)

var journalsCmd = &cobra.Command{
	Use:   "journals",
	Short: "Print a chat's journal recommendations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, err := setupCLI()
		if err != nil {
			return err
		}
		chat, err := resolveChat(cfg, journalsChat)
		if err != nil {
			return err
		}
		if journalsLimit > 0 {
			cfg.JournalsLimit = journalsLimit
			cfg.Normalize()
		}

		resp, err := client.Journals(context.Background(), chat, cfg.JournalsLimit)
		if err != nil {
			return fmt.Errorf("fetch journals: %w", err)
		}
		printJournals(resp)
		return nil
	},
}

func init() {
	journalsCmd.Flags().Int64Var(&journalsChat, "chat", 0, "chat id (default from config)")
	journalsCmd.Flags().IntVarP(&journalsLimit, "limit", "n", 0, "number of journals, at most 30 (default from config)")
	rootCmd.AddCommand(journalsCmd)
}

func printJournals(resp feed.JournalsResponse) {
	if len(resp.Items) == 0 {
		fmt.Println("No journals yet.")
		return
	}
	for _, j := range resp.Items {
		title := j.Journal.Title
		if title == "" {
			title = j.JournalID
		}
		fmt.Printf("%2d. %s  score %.3f  sim %.3f  %s\n",
			j.Rank, pad(title, 50), j.Score, j.Similarity, clip(j.Journal.Publisher, 30))
		if j.Analysis.FitSummary != "" {
			fmt.Printf("    %s\n", clip(j.Analysis.FitSummary, 100))
		}
		if len(j.Journal.Subjects) > 0 {
			fmt.Printf("    subjects: %s\n", clip(strings.Join(j.Journal.Subjects, ", "), 90))
		}
	}
	fmt.Printf("\n%d of %d catalog journals", len(resp.Items), resp.CatalogSize)
	if resp.GeneratedAt != "" {
		fmt.Printf(", generated %s", resp.GeneratedAt)
	}
	fmt.Println()
}
