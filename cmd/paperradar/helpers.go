package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/jpreyes/paperradar/internal/api"
	"github.com/jpreyes/paperradar/internal/config"
	"github.com/jpreyes/paperradar/internal/coord"
	"github.com/jpreyes/paperradar/internal/logging"
	"github.com/jpreyes/paperradar/internal/store"
)

var (
	flagConfig  string
	flagBaseURL string
	flagVerbose bool
	flagChat    int64
)

// configPath returns --config or the default location.
func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.ConfigPath()
}

// loadConfig reads the config file, overlays the environment and flags and
// normalizes the result.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if flagBaseURL != "" {
		cfg.APIBaseURL = flagBaseURL
	}
	if flagVerbose {
		cfg.LogLevel = "debug"
	}
	cfg.Normalize()
	return cfg, nil
}

// setupCLI loads config and points logging at stderr. Subcommands only log
// warnings unless --verbose is set.
func setupCLI() (*config.Config, *api.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	level := "warn"
	if flagVerbose {
		level = "debug"
	}
	logging.SetOutput(os.Stderr, level)
	return cfg, newClient(cfg), nil
}

func newClient(cfg *config.Config) *api.Client {
	return api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout(), cfg.RateLimitPerSec)
}

// openLedger opens the seen ledger under the data directory.
func openLedger(cfg *config.Config) (*store.Store, error) {
	if err := os.MkdirAll(cfg.DataPath(), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return store.Open(cfg.LedgerPath())
}

// resolveChat picks --chat, then the configured default chat.
func resolveChat(cfg *config.Config, chat int64) (int64, error) {
	if chat != 0 {
		return chat, nil
	}
	if cfg.DefaultChatID != 0 {
		return cfg.DefaultChatID, nil
	}
	return 0, errors.New("no chat given: pass --chat or set default_chat_id / PAPERRADAR_CHAT_ID")
}

// configSource is the part of the API resolveSubject needs.
type configSource interface {
	Config(ctx context.Context, chatID int64) (api.UserConfig, error)
}

// resolveSubject pairs chat with its active profile, the same subject the
// user picker opens, so both paths share one seen-ledger key. Without a
// config the subject carries no profile.
func resolveSubject(ctx context.Context, src configSource, chat int64) coord.Subject {
	subj := coord.Subject{ChatID: chat}
	cfg, err := src.Config(ctx, chat)
	if err != nil {
		logging.Warn("could not resolve active profile", "chat", chat, "err", err)
		return subj
	}
	subj.Profile = cfg.ActiveProfile
	return subj
}

// settle runs a session command to completion outside Bubble Tea: every
// resulting message is fed back through Update until nothing is pending.
func settle(sess *coord.Session, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if _, next := sess.Update(msg); next != nil {
			queue = append(queue, next)
		}
	}
}

// clip shortens s to width terminal cells.
func clip(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

// pad left-aligns s in width terminal cells.
func pad(s string, width int) string {
	return runewidth.FillRight(clip(s, width), width)
}
