package ui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/jpreyes/paperradar/internal/api"
)

// renderConfig shows the subject's profile and tuning settings.
func renderConfig(cfg *api.UserConfig, errMsg string, width int) string {
	if cfg == nil {
		if errMsg != "" {
			return ErrorStyle.Render("Config unavailable: " + errMsg)
		}
		return HelpStyle.Render("Config not loaded.")
	}

	inner := max(10, width-4)
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(MutedText.Render(fmt.Sprintf("%-22s", label)))
		b.WriteString(truncate(value, inner-22))
		b.WriteString("\n")
	}

	row("chat", strconv.FormatInt(cfg.ChatID, 10))
	row("active profile", cfg.ActiveProfile)
	row("profiles", strings.Join(cfg.Profiles, ", "))
	if cfg.ProfileSummary != "" {
		row("summary", cfg.ProfileSummary)
	}
	if len(cfg.ProfileTopics) > 0 {
		row("topics", strings.Join(cfg.ProfileTopics, ", "))
	}
	if len(cfg.ProfileTopicWeights) > 0 {
		row("topic weights", topicWeights(cfg.ProfileTopicWeights))
	}
	row("similarity threshold", optFloat(cfg.SimThreshold))
	row("top n", optFloat(cfg.TopN))
	row("max age (hours)", optFloat(cfg.MaxAgeHours))
	row("poll every (min)", optFloat(cfg.PollMin))
	if cfg.PollDailyTime != "" {
		row("daily poll", cfg.PollDailyTime)
	}
	row("llm", optBool(cfg.LLMEnabled))
	row("llm threshold", optFloat(cfg.LLMThreshold))
	row("llm per tick", optFloat(cfg.LLMMaxPerTick))
	row("llm on demand / hour", optFloat(cfg.LLMOnDemandMaxPerHour))
	row("likes", humanize.Comma(int64(cfg.LikesTotal)))
	row("dislikes", humanize.Comma(int64(cfg.DislikesTotal)))
	return b.String()
}

// topicWeights lists weights heaviest first.
func topicWeights(w map[string]float64) string {
	topics := make([]string, 0, len(w))
	for t := range w {
		topics = append(topics, t)
	}
	slices.SortFunc(topics, func(a, b string) int {
		if w[a] != w[b] {
			if w[a] > w[b] {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b)
	})
	parts := make([]string, len(topics))
	for i, t := range topics {
		parts[i] = fmt.Sprintf("%s %.2f", t, w[t])
	}
	return strings.Join(parts, ", ")
}

func optFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func optBool(v *bool) string {
	switch {
	case v == nil:
		return "-"
	case *v:
		return "on"
	}
	return "off"
}
