package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jpreyes/paperradar/internal/config"
	"github.com/jpreyes/paperradar/internal/coord"
	"github.com/jpreyes/paperradar/internal/logging"
	"github.com/jpreyes/paperradar/internal/ui"
)

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := logging.Init(cfg.DataPath(), cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
		logging.SetOutput(os.Stderr, "error")
	}
	defer logging.Close()

	client := newClient(cfg)
	logging.Info("api client ready", "base_url", client.BaseURL())

	// The ledger only adds "new" markers, so the dashboard runs without it.
	var ledger coord.Ledger
	st, err := openLedger(cfg)
	if err != nil {
		logging.Warn("seen ledger unavailable", "err", err)
	} else {
		defer st.Close()
		ledger = st
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := coord.NewSession(ctx, client, ledger, coord.SessionConfig{
		PageSize:      cfg.PageSize,
		Sort:          cfg.Sort(),
		JournalsLimit: cfg.JournalsLimit,
	})
	defer sess.Close()

	var subject coord.Subject
	if chat, err := resolveChat(cfg, flagChat); err == nil {
		subject = resolveSubject(ctx, client, chat)
	}

	app := ui.NewApp(ui.AppConfig{
		Session: sess,
		LoadUsers: func() tea.Cmd {
			return func() tea.Msg {
				users, err := client.Users(ctx)
				return ui.UsersLoaded{Users: users, Err: err}
			}
		},
		Subject: subject,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())

	var poller *coord.Poller
	if cfg.LivePoll() > 0 {
		poller = coord.NewPoller(cfg.LivePoll())
		poller.Start(ctx, p)
		logging.Info("live polling enabled", "interval", poller.Interval())
	}

	_, runErr := p.Run()
	cancel()
	if poller != nil {
		poller.Wait()
	}
	if runErr != nil {
		logging.Error("dashboard exited", "err", runErr)
		return fmt.Errorf("dashboard: %w", runErr)
	}

	if err := savePreferences(sess); err != nil {
		logging.Warn("could not save preferences", "err", err)
	}
	logging.Info("paperradar stopped")
	return nil
}

// savePreferences writes the final page size and sort back to the config
// file. The file is reloaded so environment overrides are not persisted.
func savePreferences(sess *coord.Session) error {
	path := configPath()
	onDisk, err := config.Load(path)
	if err != nil {
		return err
	}
	onDisk.PageSize = sess.Page().Size
	onDisk.SetSort(sess.SortSpec())
	return onDisk.Save(path)
}
