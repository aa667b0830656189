package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jpreyes/paperradar/internal/coord"
	"github.com/jpreyes/paperradar/internal/feed"
	"github.com/jpreyes/paperradar/internal/logging"
)

var (
	papersChat  int64
	papersPage  int
	papersLimit int
	papersMode  string
	papersSort  string
	papersDir   string
)

var papersCmd = &cobra.Command{
	Use:   "papers",
	Short: "Print one page of a chat's ranked papers",
	Long: `Fetch a page of history (or the live snapshot with --mode live) and print it
sorted locally. Pages past the end are moved back to the last page.`,
	RunE: runPapers,
}

func init() {
	papersCmd.Flags().Int64Var(&papersChat, "chat", 0, "chat id (default from config)")
	papersCmd.Flags().IntVarP(&papersPage, "page", "p", 1, "page number, starting at 1")
	papersCmd.Flags().IntVarP(&papersLimit, "limit", "n", 0, "page size (default from config)")
	papersCmd.Flags().StringVarP(&papersMode, "mode", "m", string(feed.History), "history or live")
	papersCmd.Flags().StringVar(&papersSort, "sort", "", "sort key: "+sortKeyList())
	papersCmd.Flags().StringVar(&papersDir, "dir", "", "sort direction: asc or desc")
	rootCmd.AddCommand(papersCmd)
}

func runPapers(cmd *cobra.Command, args []string) error {
	cfg, client, err := setupCLI()
	if err != nil {
		return err
	}
	chat, err := resolveChat(cfg, papersChat)
	if err != nil {
		return err
	}
	mode, err := feed.ParseMode(papersMode)
	if err != nil {
		return err
	}

	spec := cfg.Sort()
	if papersSort != "" {
		key, ok := feed.ParseSortKey(papersSort)
		if !ok {
			return fmt.Errorf("unknown sort key %q (want one of %s)", papersSort, sortKeyList())
		}
		spec.Key = key
	}
	if papersDir != "" {
		spec.Direction = feed.ParseDirection(papersDir)
	}

	var ledger coord.Ledger
	if st, err := openLedger(cfg); err != nil {
		logging.Warn("seen ledger unavailable", "err", err)
	} else {
		defer st.Close()
		ledger = st
	}

	size := cfg.PageSize
	if papersLimit != 0 {
		size = feed.ClampPageSizeInt(papersLimit, size)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sess := coord.NewSession(ctx, client, ledger, coord.SessionConfig{
		PageSize:      size,
		Sort:          spec,
		JournalsLimit: cfg.JournalsLimit,
	})
	defer sess.Close()

	// Selecting the subject starts a first-page fetch; the request below
	// supersedes it, so only the requested page is ever applied.
	first := sess.SelectSubject(resolveSubject(ctx, client, chat))
	var next tea.Cmd
	if mode == feed.Live {
		next = sess.LoadPapers(feed.Live)
	} else {
		next = sess.GoToPage(papersPage - 1)
	}
	settle(sess, first)
	settle(sess, next)

	st := sess.Papers()
	if st.LastError != "" {
		return fmt.Errorf("fetch papers: %s", st.LastError)
	}
	printPapers(sess)
	return nil
}

func printPapers(sess *coord.Session) {
	st := sess.Papers()
	entries := sess.Visible()
	if len(entries) == 0 {
		fmt.Println("No papers.")
		return
	}

	for _, e := range entries {
		mark := " "
		if sess.IsFresh(e) {
			mark = "•"
		}
		fmt.Printf("%s %.3f  %s  %s  %s\n",
			mark, e.Score,
			pad(e.Bullets.Tag, 8),
			pad(strings.Join(strings.Fields(e.Item.Title), " "), 70),
			clip(e.Item.Venue, 20))
	}

	spec := sess.SortSpec()
	if sess.Mode() == feed.Live {
		fmt.Printf("\nLive snapshot: %d papers, sorted by %s %s\n", len(entries), spec.Key, spec.Direction)
		return
	}
	p := sess.Pagination()
	start, end := sess.ShownRange()
	fmt.Printf("\nShowing %d-%d of %d, page %d of %d, sorted by %s %s\n",
		start, end, st.TotalCount, p.Index+1, p.PageCount, spec.Key, spec.Direction)
}

func sortKeyList() string {
	keys := make([]string, len(feed.SortKeys))
	for i, k := range feed.SortKeys {
		keys[i] = string(k)
	}
	return strings.Join(keys, ", ")
}
