package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jpreyes/paperradar/internal/coord"
)

var (
	seenChat    int64
	seenProfile string
	seenLimit   int
)

var seenCmd = &cobra.Command{
	Use:   "seen",
	Short: "Show the local seen ledger for a chat",
	Long: `List the papers most recently shown for a chat, with how often each was
shown and when it first appeared. The ledger is local to this machine.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, err := setupCLI()
		if err != nil {
			return err
		}
		chat, err := resolveChat(cfg, seenChat)
		if err != nil {
			return err
		}
		st, err := openLedger(cfg)
		if err != nil {
			return fmt.Errorf("open seen ledger: %w", err)
		}
		defer st.Close()

		subj := coord.Subject{ChatID: chat, Profile: seenProfile}
		if seenProfile == "" {
			subj = resolveSubject(context.Background(), client, chat)
		}
		subject := subj.Key()
		count, err := st.SeenCount(subject)
		if err != nil {
			return err
		}
		rows, err := st.Recent(subject, seenLimit)
		if err != nil {
			return err
		}

		fmt.Printf("%s papers seen for %s\n\n", humanize.Comma(int64(count)), subject)
		for _, r := range rows {
			title := r.Title
			if title == "" {
				title = r.Identity
			}
			fmt.Printf("%.3f  %s  %s  first %s, last %s\n",
				r.Score, pad(title, 60), pad(fmt.Sprintf("%dx", r.Shown), 5),
				humanize.Time(r.FirstSeen), humanize.Time(r.LastSeen))
		}
		return nil
	},
}

func init() {
	seenCmd.Flags().Int64Var(&seenChat, "chat", 0, "chat id (default from config)")
	seenCmd.Flags().StringVar(&seenProfile, "profile", "", "profile the papers were seen under (default: the active profile)")
	seenCmd.Flags().IntVarP(&seenLimit, "limit", "n", 20, "number of rows")
	rootCmd.AddCommand(seenCmd)
}
