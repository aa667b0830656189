package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jpreyes/paperradar/internal/api"
	"github.com/jpreyes/paperradar/internal/feed"
)

var snapshotChat int64

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Fetch config, first page and journals at once",
	Long: `Fetch a chat's configuration, its first history page and its journal
recommendations concurrently and print a summary. Any failure aborts the
other requests.`,
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().Int64Var(&snapshotChat, "chat", 0, "chat id (default from config)")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, client, err := setupCLI()
	if err != nil {
		return err
	}
	chat, err := resolveChat(cfg, snapshotChat)
	if err != nil {
		return err
	}

	var (
		userCfg  api.UserConfig
		papers   feed.Response
		journals feed.JournalsResponse
	)
	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() (err error) {
		userCfg, err = client.Config(ctx, chat)
		return err
	})
	g.Go(func() (err error) {
		papers, err = client.Papers(ctx, chat, api.PapersQuery{Limit: cfg.PageSize, Mode: feed.History})
		return err
	})
	g.Go(func() (err error) {
		journals, err = client.Journals(ctx, chat, cfg.JournalsLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("snapshot of chat %d: %w", chat, err)
	}

	st, _ := feed.ApplyHistory(feed.State{}, papers, feed.Page{Size: cfg.PageSize}, false)

	fmt.Printf("Chat %d, profile %s (%s)\n", userCfg.ChatID, userCfg.ActiveProfile, strings.Join(userCfg.Profiles, ", "))
	fmt.Printf("Feedback: %s likes, %s dislikes\n",
		humanize.Comma(int64(userCfg.LikesTotal)), humanize.Comma(int64(userCfg.DislikesTotal)))
	fmt.Printf("Papers: %s ranked, first page holds %d\n", humanize.Comma(int64(st.TotalCount)), len(st.Items))
	for i, e := range feed.Sort(st.Items, cfg.Sort()) {
		if i == 5 {
			break
		}
		fmt.Printf("  %.3f  %s\n", e.Score, clip(strings.Join(strings.Fields(e.Item.Title), " "), 80))
	}
	fmt.Printf("Journals: %d recommended from a catalog of %s\n", len(journals.Items), humanize.Comma(int64(journals.CatalogSize)))
	return nil
}
